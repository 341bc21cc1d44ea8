package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"submux/internal/testsupport"
)

const cliProjectConfig = `
show_name    = "Cli Show"
fansub_group = "CliSubs"
video_source = "BD"

audio_language  = "Japanese"
audio_lang_code = "ja"
sub_language    = "English"
sub_lang_code   = "en"

resolution = [1280, 720]
episodes   = 1
`

const cliEpisodeScript = `[Script Info]
Title: episode

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Gandhi Sans,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,1,2,30,30,40,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Hello there.
`

// runCLI executes the root command with args, capturing stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// writeProject lays out a single-episode project ready to plan.
func writeProject(t *testing.T) string {
	t.Helper()
	_, dir := testsupport.WriteProject(t, cliProjectConfig)
	testsupport.WriteFile(t, filepath.Join(dir, "episodes", "01", "episode_01.mkv"), "premux")
	testsupport.WriteFile(t, filepath.Join(dir, "episodes", "01", "dialogue.ass"), cliEpisodeScript)
	return dir
}
