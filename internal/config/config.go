package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"submux/internal/episode"
	"submux/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// ConfigFileName is the project configuration file looked up inside a
// project directory.
const ConfigFileName = "config.toml"

// SyncPair names the timing anchors used when merging an extra into an
// episode script: the event labelled From in the episode script is aligned
// with the event labelled To in the extra.
type SyncPair struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Extras configures shared subtitle assets merged into episode scripts.
// Merge maps an episode bucket key ("1-5") to the extras files that apply
// inside that bucket.
type Extras struct {
	Merge map[string]map[string]SyncPair `toml:"merge"`
}

// Logging configures log output for all commands run against the project.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Project is a fansub project configuration loaded from config.toml in the
// project directory.
//
// Sections:
//   - release metadata: show name, group, source, languages, resolution
//   - layout: episodes_path, extras_path, output_path (project-relative)
//   - episodes: the episode selection muxed by default
//   - [staff]: credit fields written into merged script headers
//   - [extras.merge]: per-bucket extras with timing sync labels
//   - [logging]: log level and format
type Project struct {
	ShowName      string `toml:"show_name"`
	FansubGroup   string `toml:"fansub_group"`
	VideoSource   string `toml:"video_source"`
	AudioLanguage string `toml:"audio_language"`
	AudioLangCode string `toml:"audio_lang_code"`
	SubLanguage   string `toml:"sub_language"`
	SubLangCode   string `toml:"sub_lang_code"`
	TMDBID        int64  `toml:"tmdb_id"`
	YCbCrMatrix   string `toml:"ycbcr_matrix"`
	Resolution    []int  `toml:"resolution"`

	EpisodesPath string `toml:"episodes_path"`
	ExtrasPath   string `toml:"extras_path"`
	OutputPath   string `toml:"output_path"`

	Episodes any `toml:"episodes"`

	Staff   map[string]string `toml:"staff"`
	Extras  Extras            `toml:"extras"`
	Logging Logging           `toml:"logging"`

	projectDir   string
	episodeRange episode.Range
}

// Load reads, normalizes, and validates the configuration of the project at
// projectDir. The returned config has all path fields resolved to absolute
// paths. A missing config file reports services.ErrNotFound; a file that
// cannot be parsed or validated reports services.ErrConfiguration.
func Load(projectDir string) (*Project, string, error) {
	dir, err := expandPath(projectDir)
	if err != nil {
		return nil, "", services.Wrap(services.ErrConfiguration, "config", "resolve", projectDir, err)
	}

	configPath := filepath.Join(dir, ConfigFileName)
	file, err := os.Open(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, configPath, services.Wrap(services.ErrNotFound, "config", "load",
				fmt.Sprintf("no %s in %s (create one with 'submux config init')", ConfigFileName, dir), nil)
		}
		return nil, configPath, services.Wrap(services.ErrConfiguration, "config", "open", configPath, err)
	}
	defer file.Close()

	cfg := Default()
	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, configPath, services.Wrap(services.ErrConfiguration, "config", "parse", configPath, err)
	}

	if err := cfg.normalize(dir); err != nil {
		return nil, configPath, services.Wrap(services.ErrConfiguration, "config", "normalize", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, configPath, services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
	}

	return &cfg, configPath, nil
}

// ProjectDir returns the absolute project directory the config was loaded
// from.
func (p *Project) ProjectDir() string {
	return p.projectDir
}

// EpisodeRange returns the episode selection resolved during load.
func (p *Project) EpisodeRange() episode.Range {
	return p.episodeRange
}

// Width returns the horizontal video resolution.
func (p *Project) Width() int {
	if len(p.Resolution) == 2 {
		return p.Resolution[0]
	}
	return 0
}

// Height returns the vertical video resolution.
func (p *Project) Height() int {
	if len(p.Resolution) == 2 {
		return p.Resolution[1]
	}
	return 0
}

// ResolutionLabel renders the resolution the way release names spell it
// ("1080p").
func (p *Project) ResolutionLabel() string {
	return fmt.Sprintf("%dp", p.Height())
}

// MkvmergeBinary returns the mkvmerge executable name.
func (p *Project) MkvmergeBinary() string {
	return "mkvmerge"
}

// WorkDir returns the batch working directory under the project root.
func (p *Project) WorkDir() string {
	return filepath.Join(p.projectDir, "_workdir")
}

// LockPath returns the lock file guarding concurrent mux runs on the
// project.
func (p *Project) LockPath() string {
	return filepath.Join(p.projectDir, ".submux.lock")
}

// HistoryPath returns the location of the project's run history database.
func (p *Project) HistoryPath() string {
	return filepath.Join(p.projectDir, ".submux", "history.db")
}

// EnsureDirectories creates the directories the mux pipeline writes to.
func (p *Project) EnsureDirectories() error {
	for _, dir := range []string{p.OutputPath, p.WorkDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// resolveProjectPath expands a config path value relative to the project
// directory unless it is already absolute (or home-anchored).
func resolveProjectPath(projectDir, pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, "~") || filepath.IsAbs(trimmed) {
		return expandPath(trimmed)
	}
	return filepath.Clean(filepath.Join(projectDir, trimmed)), nil
}

// CreateSample writes a sample project configuration into dir. It refuses to
// overwrite an existing config.
func CreateSample(dir string) (string, error) {
	resolved, err := expandPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", fmt.Errorf("create project directory: %w", err)
	}
	path := filepath.Join(resolved, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return path, nil
}
