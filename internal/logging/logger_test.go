package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"submux/internal/logging"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("muxed episode", logging.Int("episode", 3), logging.String("output", "ep 03.mkv"))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Errorf("missing level label: %q", line)
	}
	if !strings.Contains(line, "muxed episode") {
		t.Errorf("missing message: %q", line)
	}
	if !strings.Contains(line, "episode=3") {
		t.Errorf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `output="ep 03.mkv"`) {
		t.Errorf("expected quoted attr value: %q", line)
	}
}

func TestConsoleComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "muxer").Info("starting batch")

	line := buf.String()
	if !strings.Contains(line, "muxer: starting batch") {
		t.Errorf("expected component prefix, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should not render as attr: %q", line)
	}
}

func TestConsoleValueFormats(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("resolved",
		logging.Float64("ratio", 95.65),
		logging.Bool("matched", true),
		logging.Duration("elapsed", 1500*time.Millisecond),
		logging.Any("lines", []int{4, 7}),
	)

	line := buf.String()
	for _, want := range []string{"ratio=95.65", "matched=true", "elapsed=1.5s", `lines="[4 7]"`} {
		if !strings.Contains(line, want) {
			t.Errorf("missing %q in %q", want, line)
		}
	}
}

func TestConsoleGroupPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.WithGroup("mux").Info("done", logging.Int("episodes", 2))

	if !strings.Contains(buf.String(), "mux.episodes=2") {
		t.Errorf("expected group-prefixed key, got %q", buf.String())
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("planned", logging.Int("episodes", 12))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "planned" {
		t.Errorf("msg = %v, want planned", record["msg"])
	}
	if record["level"] != "debug" {
		t.Errorf("level = %v, want debug", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("missing ts field")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "chatty", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug line visible at default level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("info line missing: %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should vanish", logging.Error(nil))
}
