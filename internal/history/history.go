// Package history records mux runs in a per-project SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Episode status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one invocation of the mux command.
type Run struct {
	ID             string     `json:"id"`
	Show           string     `json:"show"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	DryRun         bool       `json:"dry_run"`
	EpisodesTotal  int        `json:"episodes_total"`
	EpisodesFailed int        `json:"episodes_failed"`
}

// Episode is the outcome of a single episode within a run.
type Episode struct {
	RunID      string `json:"run_id"`
	Episode    int    `json:"episode"`
	OutputName string `json:"output_name,omitempty"`
	CRC32      string `json:"crc32,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path, creating the
// parent directory as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	// A single connection keeps the pragmas in force for every query.
	db.SetMaxOpenConns(1)
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun inserts a new run and returns it.
func (s *Store) BeginRun(ctx context.Context, show string, episodesTotal int, dryRun bool) (*Run, error) {
	run := &Run{
		ID:            uuid.NewString(),
		Show:          show,
		StartedAt:     time.Now().UTC(),
		DryRun:        dryRun,
		EpisodesTotal: episodesTotal,
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, show, started_at, dry_run, episodes_total, episodes_failed)
         VALUES (?, ?, ?, ?, ?, 0)`,
		run.ID,
		run.Show,
		run.StartedAt.Format(time.RFC3339Nano),
		boolToInt(run.DryRun),
		run.EpisodesTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordEpisode appends one episode outcome to a run.
func (s *Store) RecordEpisode(ctx context.Context, runID string, episode Episode) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO episodes (run_id, episode, output_name, crc32, status, error_message, duration_ms)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		episode.Episode,
		nullableString(episode.OutputName),
		nullableString(episode.CRC32),
		episode.Status,
		nullableString(episode.Error),
		episode.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", err)
	}
	return nil
}

// FinishRun stamps the end time and tallies failures from the recorded
// episodes.
func (s *Store) FinishRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET finished_at = ?,
             episodes_failed = (SELECT COUNT(1) FROM episodes WHERE run_id = ? AND status = ?)
         WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		runID,
		StatusFailed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Runs returns recorded runs, newest first. A limit of zero or less returns
// every run. History is append-only, so insertion order is chronological.
func (s *Store) Runs(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunEpisodes returns the episode outcomes of one run in episode order.
func (s *Store) RunEpisodes(ctx context.Context, runID string) ([]Episode, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, episode, output_name, crc32, status, error_message, duration_ms
         FROM episodes WHERE run_id = ? ORDER BY episode, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var (
			episode    Episode
			outputName sql.NullString
			crc        sql.NullString
			message    sql.NullString
		)
		if err := rows.Scan(&episode.RunID, &episode.Episode, &outputName, &crc, &episode.Status, &message, &episode.DurationMS); err != nil {
			return nil, err
		}
		episode.OutputName = outputName.String
		episode.CRC32 = crc.String
		episode.Error = message.String
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}

// Clear removes all recorded runs and their episodes. It returns the number
// of runs removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM episodes`); err != nil {
		return 0, fmt.Errorf("clear episodes: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

const runColumns = "id, show, started_at, finished_at, dry_run, episodes_total, episodes_failed"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
		dryRun      int
	)
	if err := scanner.Scan(&run.ID, &run.Show, &startedRaw, &finishedRaw, &dryRun, &run.EpisodesTotal, &run.EpisodesFailed); err != nil {
		return nil, err
	}
	run.DryRun = dryRun != 0
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
