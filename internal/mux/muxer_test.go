package mux

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"

	"submux/internal/logging"
)

func TestBuildMkvmergeArgs(t *testing.T) {
	req := Request{
		VideoPath:        "/work/episode_01.mkv",
		AudioLanguage:    "ja",
		SubtitlePath:     "/work/01.ass",
		SubtitleLanguage: "en",
		SubtitleName:     "English",
		Fonts:            []string{"/fonts/gandhi.ttf", "/fonts/museo.otf"},
		ChaptersPath:     "/work/chapters.txt",
		Title:            "Example Show - 01",
	}

	got := buildMkvmergeArgs(req, "/out/.mux-tmp.mkv")
	want := []string{
		"-o", "/out/.mux-tmp.mkv",
		"--title", "Example Show - 01",
		"--no-global-tags", "--no-chapters",
		"--language", "1:jpn",
		"/work/episode_01.mkv",
		"--language", "0:eng",
		"--track-name", "0:English",
		"--default-track", "0:yes",
		"/work/01.ass",
		"--attachment-mime-type", "font/ttf",
		"--attach-file", "/fonts/gandhi.ttf",
		"--attachment-mime-type", "font/otf",
		"--attach-file", "/fonts/museo.otf",
		"--chapters", "/work/chapters.txt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", got, want)
	}
}

func TestFontMIME(t *testing.T) {
	cases := map[string]string{
		"a.ttf":     "font/ttf",
		"B.OTF":     "font/otf",
		"fonts.ttc": "font/collection",
		"weird.bin": "application/octet-stream",
	}
	for path, want := range cases {
		if got := fontMIME(path); got != want {
			t.Fatalf("fontMIME(%q): expected %s, got %s", path, want, got)
		}
	}
}

func TestMuxStampsChecksumIntoName(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "episode_01.mkv")
	if err := os.WriteFile(video, []byte("premux"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	payload := []byte("muxed container payload")
	muxer := NewMuxer(logging.NewNop())
	muxer.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		if name != "mkvmerge" {
			t.Fatalf("expected mkvmerge invocation, got %s", name)
		}
		return os.WriteFile(args[1], payload, 0o644)
	})

	result, err := muxer.Mux(context.Background(), Request{
		VideoPath:    video,
		SubtitlePath: filepath.Join(dir, "01.ass"),
		OutputDir:    dir,
		OutputName:   "[Subs] Show - 01 [$crc32$].mkv",
	})
	if err != nil {
		t.Fatalf("Mux failed: %v", err)
	}

	wantCRC := fmt.Sprintf("%08X", crc32.ChecksumIEEE(payload))
	if result.CRC32 != wantCRC {
		t.Fatalf("expected checksum %s, got %s", wantCRC, result.CRC32)
	}
	wantPath := filepath.Join(dir, "[Subs] Show - 01 ["+wantCRC+"].mkv")
	if result.OutputPath != wantPath {
		t.Fatalf("expected output %s, got %s", wantPath, result.OutputPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("expected final file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".mux-[Subs] Show - 01 [$crc32$].mkv.tmp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file removed, got %v", err)
	}
}

func TestMuxToleratesWarningExit(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "episode_01.mkv")
	if err := os.WriteFile(video, []byte("premux"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	warnErr := exec.Command("false").Run()
	var exitErr *exec.ExitError
	if !errors.As(warnErr, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1 from false, got %v", warnErr)
	}

	muxer := NewMuxer(logging.NewNop())
	muxer.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		if err := os.WriteFile(args[1], []byte("output"), 0o644); err != nil {
			return err
		}
		return fmt.Errorf("%w: track has no duration", warnErr)
	})

	result, err := muxer.Mux(context.Background(), Request{
		VideoPath:    video,
		SubtitlePath: filepath.Join(dir, "01.ass"),
		OutputDir:    dir,
		OutputName:   "out.mkv",
	})
	if err != nil {
		t.Fatalf("expected warnings tolerated, got %v", err)
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Fatalf("expected output despite warnings: %v", err)
	}
}

func TestMuxFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "episode_01.mkv")
	if err := os.WriteFile(video, []byte("premux"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	muxer := NewMuxer(logging.NewNop())
	muxer.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		if err := os.WriteFile(args[1], []byte("partial"), 0o644); err != nil {
			return err
		}
		return errors.New("mkvmerge exploded")
	})

	_, err := muxer.Mux(context.Background(), Request{
		VideoPath:    video,
		SubtitlePath: filepath.Join(dir, "01.ass"),
		OutputDir:    dir,
		OutputName:   "out.mkv",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	for _, entry := range entries {
		if entry.Name() != "episode_01.mkv" {
			t.Fatalf("expected temp output removed, found %s", entry.Name())
		}
	}
}
