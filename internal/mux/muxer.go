package mux

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"submux/internal/language"
	"submux/internal/logging"
	"submux/internal/mergeplan"
)

const mkvmergeCommand = "mkvmerge"

// fontMIMETypes maps attachment extensions to the RFC 8081 media types
// mkvmerge records for them.
var fontMIMETypes = map[string]string{
	".ttf": "font/ttf",
	".otf": "font/otf",
	".ttc": "font/collection",
}

// Request describes one mkvmerge invocation: a premux video, the prepared
// subtitle script, fonts, and optional chapters, written to OutputName
// inside OutputDir.
type Request struct {
	VideoPath        string
	AudioLanguage    string // ISO 639-1 code of the premux audio track
	SubtitlePath     string
	SubtitleLanguage string // ISO 639-1 code for the subtitle track
	SubtitleName     string // track name shown by players
	Fonts            []string
	ChaptersPath     string
	Title            string
	OutputDir        string
	OutputName       string // may contain the checksum token
}

// Result reports the finished container.
type Result struct {
	OutputPath string
	CRC32      string
}

type commandRunner func(ctx context.Context, name string, args ...string) error

// Muxer assembles episode containers using mkvmerge.
type Muxer struct {
	logger *slog.Logger
	run    commandRunner
}

// NewMuxer constructs a muxer.
func NewMuxer(logger *slog.Logger) *Muxer {
	return &Muxer{
		logger: logging.NewComponentLogger(logger, "muxer"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (m *Muxer) WithCommandRunner(r commandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// Mux runs mkvmerge into a temporary file, stamps the file's CRC32 into the
// output name, and renames into place. An exit code of 1 means mkvmerge
// produced output with warnings; only higher codes fail the episode.
func (m *Muxer) Mux(ctx context.Context, req Request) (Result, error) {
	if m == nil {
		return Result{}, errors.New("muxer not initialized")
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		return Result{}, errors.New("video path is required")
	}
	if strings.TrimSpace(req.SubtitlePath) == "" {
		return Result{}, errors.New("subtitle path is required")
	}
	if _, err := os.Stat(req.VideoPath); err != nil {
		return Result{}, fmt.Errorf("video not found: %w", err)
	}

	tmpPath := filepath.Join(req.OutputDir, ".mux-"+req.OutputName+".tmp")
	args := buildMkvmergeArgs(req, tmpPath)

	if m.logger != nil {
		m.logger.Debug("executing mkvmerge",
			logging.String("video", req.VideoPath),
			logging.String("subtitle", req.SubtitlePath),
			logging.Int("fonts", len(req.Fonts)),
			logging.Bool("chapters", req.ChaptersPath != ""),
		)
	}

	if err := m.run(ctx, mkvmergeCommand, args...); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			if m.logger != nil {
				m.logger.Warn("mkvmerge finished with warnings", logging.Error(err))
			}
		} else {
			_ = os.Remove(tmpPath)
			return Result{}, fmt.Errorf("mkvmerge failed: %w", err)
		}
	}

	if _, err := os.Stat(tmpPath); err != nil {
		return Result{}, fmt.Errorf("mkvmerge did not produce output file: %w", err)
	}

	checksum, err := fileCRC32(tmpPath)
	if err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, fmt.Errorf("checksum output: %w", err)
	}

	finalPath := filepath.Join(req.OutputDir, strings.ReplaceAll(req.OutputName, mergeplan.CRCToken, checksum))
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, fmt.Errorf("move output into place: %w", err)
	}

	return Result{OutputPath: finalPath, CRC32: checksum}, nil
}

// buildMkvmergeArgs constructs the mkvmerge command arguments. The premux
// video keeps only its audio metadata; tags and chapters are replaced by
// ours.
func buildMkvmergeArgs(req Request, outputPath string) []string {
	args := []string{"-o", outputPath}

	if req.Title != "" {
		args = append(args, "--title", req.Title)
	}

	args = append(args,
		"--no-global-tags",
		"--no-chapters",
		"--language", "1:"+language.ToISO3(req.AudioLanguage),
		req.VideoPath,
	)

	args = append(args,
		"--language", "0:"+language.ToISO3(req.SubtitleLanguage),
		"--track-name", "0:"+req.SubtitleName,
		"--default-track", "0:yes",
		req.SubtitlePath,
	)

	for _, font := range req.Fonts {
		args = append(args,
			"--attachment-mime-type", fontMIME(font),
			"--attach-file", font,
		)
	}

	if req.ChaptersPath != "" {
		args = append(args, "--chapters", req.ChaptersPath)
	}

	return args
}

func fontMIME(path string) string {
	if mime, ok := fontMIMETypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// fileCRC32 returns the file's IEEE CRC32 as eight uppercase hex digits,
// the form release names carry.
func fileCRC32(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := crc32.NewIEEE()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08X", hash.Sum32()), nil
}

// defaultCommandRunner executes external commands, folding their combined
// output into the returned error.
func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
