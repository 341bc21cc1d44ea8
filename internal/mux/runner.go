// Package mux drives the release batch: it prepares each episode's subtitle
// script, gathers chapters and fonts, assembles the container with mkvmerge,
// and records the run in history.
package mux

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"submux/internal/config"
	"submux/internal/fileutil"
	"submux/internal/history"
	"submux/internal/logging"
	"submux/internal/mergeplan"
	"submux/internal/preflight"
	"submux/internal/services"
	"submux/internal/subtitle"
	"submux/internal/textutil"
)

// Options controls a mux run.
type Options struct {
	DryRun      bool
	KeepWorkdir bool
	Episodes    []int // subset override; empty selects every configured episode
}

// EpisodeResult is the outcome of one episode in the batch.
type EpisodeResult struct {
	Episode    int
	Key        string
	OutputName string
	OutputPath string
	CRC32      string
	Duration   time.Duration
	Err        error
}

// Summary is the outcome of the whole batch.
type Summary struct {
	RunID    string
	DryRun   bool
	Episodes []EpisodeResult
}

// Failed counts episodes that did not mux.
func (s *Summary) Failed() int {
	failed := 0
	for _, episode := range s.Episodes {
		if episode.Err != nil {
			failed++
		}
	}
	return failed
}

// OK reports whether every episode muxed.
func (s *Summary) OK() bool {
	return s.Failed() == 0
}

// Runner executes the batch for one project.
type Runner struct {
	cfg    *config.Project
	logger *slog.Logger
	store  *history.Store
	muxer  *Muxer
	opts   Options
}

// NewRunner constructs a batch runner. store may be nil to skip history
// recording.
func NewRunner(cfg *config.Project, logger *slog.Logger, store *history.Store, opts Options) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "mux"),
		store:  store,
		muxer:  NewMuxer(logger),
		opts:   opts,
	}
}

// WithCommandRunner routes mkvmerge invocations through r, for tests.
func (r *Runner) WithCommandRunner(run commandRunner) {
	r.muxer.WithCommandRunner(run)
}

// Run processes every selected episode in order. Per-episode failures are
// recorded and the batch continues; the summary reports them. Cancellation
// stops the batch between episodes and leaves the history run unfinished.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	plans, err := mergeplan.Plan(r.cfg)
	if err != nil {
		return nil, err
	}
	plans = selectEpisodes(plans, r.opts.Episodes)
	if len(plans) == 0 {
		return nil, services.Wrap(services.ErrValidation, "mux", "select", "no episodes selected", nil)
	}

	if !r.opts.DryRun {
		if err := r.cfg.EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := preflight.Verify(r.cfg); err != nil {
			return nil, err
		}

		lock := flock.New(r.cfg.LockPath())
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire project lock: %w", err)
		}
		if !locked {
			return nil, services.Wrap(services.ErrValidation, "mux", "lock", "another mux run is active for this project", nil)
		}
		defer func() { _ = lock.Unlock() }()
	}

	r.logger.Info("starting batch",
		logging.String("show", r.cfg.ShowName),
		logging.Int("episodes", len(plans)),
		logging.String("mode", textutil.Ternary(r.opts.DryRun, "dry-run", "mux")),
	)

	summary := &Summary{DryRun: r.opts.DryRun}
	if r.store != nil {
		run, err := r.store.BeginRun(ctx, r.cfg.ShowName, len(plans), r.opts.DryRun)
		if err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		summary.RunID = run.ID
	}

	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := r.processEpisode(ctx, plan)
		summary.Episodes = append(summary.Episodes, result)
		r.recordEpisode(ctx, summary.RunID, result)

		if result.Err != nil {
			r.logger.Error("episode failed",
				logging.Int("episode", plan.Episode),
				logging.Error(result.Err),
			)
		} else if !r.opts.DryRun {
			r.logger.Info("episode muxed",
				logging.Int("episode", plan.Episode),
				logging.String("output", result.OutputName),
				logging.String("crc32", result.CRC32),
				logging.Duration("duration", result.Duration),
			)
		}
	}

	if r.store != nil && summary.RunID != "" {
		if err := r.store.FinishRun(ctx, summary.RunID); err != nil {
			r.logger.Warn("finish history run", logging.Error(err))
		}
	}
	return summary, nil
}

func (r *Runner) processEpisode(ctx context.Context, plan mergeplan.EpisodePlan) EpisodeResult {
	start := time.Now()
	result := EpisodeResult{Episode: plan.Episode, Key: plan.Key, OutputName: plan.OutputName}

	fail := func(err error) EpisodeResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if !plan.Viable() {
		return fail(fmt.Errorf("episode %s: %s", plan.Key, strings.Join(plan.Problems, "; ")))
	}

	if r.opts.DryRun {
		r.logger.Info("dry run: would mux",
			logging.Int("episode", plan.Episode),
			logging.String("video", filepath.Base(plan.Video)),
			logging.Int("subtitles", len(plan.Subtitles)),
			logging.Int("extras", len(plan.Extras)),
			logging.Int("fonts", len(plan.Fonts)),
			logging.String("output", plan.OutputName),
		)
		result.Duration = time.Since(start)
		return result
	}

	workdir := filepath.Join(r.cfg.WorkDir(), plan.Key)
	if err := os.RemoveAll(workdir); err != nil {
		return fail(fmt.Errorf("clean workdir: %w", err))
	}
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return fail(fmt.Errorf("create workdir: %w", err))
	}
	if !r.opts.KeepWorkdir {
		defer func() { _ = os.RemoveAll(workdir) }()
	}

	doc, err := r.prepareScript(plan)
	if err != nil {
		return fail(err)
	}

	scriptPath := filepath.Join(workdir, plan.Key+".ass")
	if err := doc.WriteFile(scriptPath); err != nil {
		return fail(err)
	}

	var chaptersPath string
	if chapters := subtitle.Chapters(doc); len(chapters) > 0 {
		chaptersPath = filepath.Join(workdir, "chapters.txt")
		if err := subtitle.WriteOGM(chaptersPath, chapters); err != nil {
			return fail(err)
		}
	}

	fonts, err := r.collectFonts(workdir, plan.Fonts)
	if err != nil {
		return fail(err)
	}

	muxed, err := r.muxer.Mux(ctx, Request{
		VideoPath:        plan.Video,
		AudioLanguage:    r.cfg.AudioLangCode,
		SubtitlePath:     scriptPath,
		SubtitleLanguage: r.cfg.SubLangCode,
		SubtitleName:     r.cfg.SubLanguage,
		Fonts:            fonts,
		ChaptersPath:     chaptersPath,
		Title:            plan.Title,
		OutputDir:        r.cfg.OutputPath,
		OutputName:       plan.OutputName,
	})
	if err != nil {
		return fail(err)
	}

	result.OutputPath = muxed.OutputPath
	result.OutputName = filepath.Base(muxed.OutputPath)
	result.CRC32 = muxed.CRC32
	result.Duration = time.Since(start)
	return result
}

// collectFonts stages the episode's fonts under the workdir; mkvmerge
// attaches the staged copies.
func (r *Runner) collectFonts(workdir string, fonts []string) ([]string, error) {
	if len(fonts) == 0 {
		return nil, nil
	}
	dir := filepath.Join(workdir, "fonts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create fonts dir: %w", err)
	}
	staged := make([]string, 0, len(fonts))
	for _, font := range fonts {
		dst := filepath.Join(dir, filepath.Base(font))
		if err := fileutil.CopyFile(font, dst); err != nil {
			return nil, fmt.Errorf("collect font %s: %w", filepath.Base(font), err)
		}
		staged = append(staged, dst)
	}
	return staged, nil
}

// prepareScript concatenates the episode's scripts in filename order, merges
// the bucket extras, and stamps the release headers. An extra whose sync
// label is missing is skipped with a warning; the episode still muxes.
func (r *Runner) prepareScript(plan mergeplan.EpisodePlan) (*subtitle.Document, error) {
	doc, err := subtitle.ReadFile(plan.Subtitles[0])
	if err != nil {
		return nil, err
	}
	for _, path := range plan.Subtitles[1:] {
		next, err := subtitle.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if _, err := subtitle.Merge(doc, next, "", ""); err != nil {
			return nil, fmt.Errorf("concatenate %s: %w", filepath.Base(path), err)
		}
	}

	for _, extra := range plan.Extras {
		extraDoc, err := subtitle.ReadFile(extra.Path)
		if err != nil {
			return nil, err
		}
		stats, err := subtitle.Merge(doc, extraDoc, extra.From, extra.To)
		if errors.Is(err, subtitle.ErrSyncLabelNotFound) {
			r.logger.Warn("sync label not found, skipping extra",
				logging.String("extra", extra.File),
				logging.Error(err),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("merge %s: %w", extra.File, err)
		}
		for _, name := range stats.SkippedStyles {
			r.logger.Warn("style collision, episode style kept",
				logging.String("style", name),
				logging.String("extra", extra.File),
			)
		}
		r.logger.Debug("merged extra",
			logging.String("extra", extra.File),
			logging.Int("events", stats.Events),
			logging.Duration("shift", stats.Shift),
		)
	}

	r.applyHeaders(doc)
	return doc, nil
}

// applyHeaders stamps the release's Script Info headers over whatever the
// editors left in the episode scripts.
func (r *Runner) applyHeaders(doc *subtitle.Document) {
	width := strconv.Itoa(r.cfg.Width())
	height := strconv.Itoa(r.cfg.Height())
	doc.SetHeader("PlayResX", width)
	doc.SetHeader("PlayResY", height)
	doc.SetHeader("LayoutResX", width)
	doc.SetHeader("LayoutResY", height)
	doc.SetHeader("YCbCr Matrix", r.cfg.YCbCrMatrix)
	doc.SetHeader("ScaledBorderAndShadow", "yes")
	doc.SetHeader("WrapStyle", "0")
	doc.SetHeader("Title", r.cfg.FansubGroup)

	credits := []struct {
		key    string
		header string
	}{
		{"translation", "Original Translation"},
		{"editing", "Original Editing"},
		{"timing", "Original Timing"},
		{"typesetting", "Original Typesetting"},
	}
	for _, credit := range credits {
		if value := strings.TrimSpace(r.cfg.Staff[credit.key]); value != "" {
			doc.SetHeader(credit.header, value)
		}
	}
}

func (r *Runner) recordEpisode(ctx context.Context, runID string, result EpisodeResult) {
	if r.store == nil || runID == "" {
		return
	}
	record := history.Episode{
		Episode:    result.Episode,
		OutputName: result.OutputName,
		CRC32:      result.CRC32,
		Status:     history.StatusOK,
		DurationMS: result.Duration.Milliseconds(),
	}
	if result.Err != nil {
		record.Status = history.StatusFailed
		record.Error = result.Err.Error()
	}
	if err := r.store.RecordEpisode(ctx, runID, record); err != nil {
		r.logger.Warn("record episode history",
			logging.Int("episode", result.Episode),
			logging.Error(err),
		)
	}
}

func selectEpisodes(plans []mergeplan.EpisodePlan, episodes []int) []mergeplan.EpisodePlan {
	if len(episodes) == 0 {
		return plans
	}
	want := make(map[int]bool, len(episodes))
	for _, episode := range episodes {
		want[episode] = true
	}
	selected := make([]mergeplan.EpisodePlan, 0, len(plans))
	for _, plan := range plans {
		if want[plan.Episode] {
			selected = append(selected, plan)
		}
	}
	return selected
}
