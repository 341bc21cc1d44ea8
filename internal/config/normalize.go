package config

import (
	"fmt"
	"os"
	"strings"

	"submux/internal/episode"
	"submux/internal/language"
)

func (p *Project) normalize(projectDir string) error {
	p.projectDir = projectDir
	p.normalizeMetadata()
	if err := p.normalizePaths(); err != nil {
		return err
	}
	if err := p.normalizeEpisodes(); err != nil {
		return err
	}
	p.normalizeStaff()
	p.normalizeLogging()
	return nil
}

func (p *Project) normalizeMetadata() {
	p.ShowName = strings.TrimSpace(p.ShowName)
	p.FansubGroup = strings.TrimSpace(p.FansubGroup)
	p.VideoSource = strings.TrimSpace(p.VideoSource)
	p.AudioLangCode = strings.ToLower(strings.TrimSpace(p.AudioLangCode))
	p.SubLangCode = strings.ToLower(strings.TrimSpace(p.SubLangCode))

	p.AudioLanguage = strings.TrimSpace(p.AudioLanguage)
	if p.AudioLanguage == "" && p.AudioLangCode != "" {
		p.AudioLanguage = language.DisplayName(p.AudioLangCode)
	}
	p.SubLanguage = strings.TrimSpace(p.SubLanguage)
	if p.SubLanguage == "" && p.SubLangCode != "" {
		p.SubLanguage = language.DisplayName(p.SubLangCode)
	}

	p.YCbCrMatrix = canonicalMatrix(p.YCbCrMatrix)
}

// canonicalMatrix maps a case-insensitive matrix name to the spelling the
// ASS "YCbCr Matrix" header uses. Unknown values pass through for
// validation to reject.
func canonicalMatrix(value string) string {
	trimmed := strings.TrimSpace(value)
	lowered := strings.ToLower(trimmed)
	for _, known := range knownMatrices {
		if lowered == strings.ToLower(known) {
			return known
		}
	}
	return trimmed
}

func (p *Project) normalizePaths() error {
	var err error
	if strings.TrimSpace(p.EpisodesPath) == "" {
		p.EpisodesPath = defaultEpisodesPath
	}
	if p.EpisodesPath, err = resolveProjectPath(p.projectDir, p.EpisodesPath); err != nil {
		return fmt.Errorf("episodes_path: %w", err)
	}
	if strings.TrimSpace(p.ExtrasPath) == "" {
		p.ExtrasPath = defaultExtrasPath
	}
	if p.ExtrasPath, err = resolveProjectPath(p.projectDir, p.ExtrasPath); err != nil {
		return fmt.Errorf("extras_path: %w", err)
	}
	if strings.TrimSpace(p.OutputPath) == "" {
		p.OutputPath = defaultOutputPath
	}
	if p.OutputPath, err = resolveProjectPath(p.projectDir, p.OutputPath); err != nil {
		return fmt.Errorf("output_path: %w", err)
	}
	return nil
}

func (p *Project) normalizeEpisodes() error {
	resolved, err := episode.ParseRange(p.Episodes)
	if err != nil {
		return fmt.Errorf("episodes: %w", err)
	}
	p.episodeRange = resolved
	return nil
}

func (p *Project) normalizeStaff() {
	if len(p.Staff) == 0 {
		return
	}
	cleaned := make(map[string]string, len(p.Staff))
	for key, value := range p.Staff {
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		cleaned[key] = value
	}
	p.Staff = cleaned
}

func (p *Project) normalizeLogging() {
	p.Logging.Format = strings.ToLower(strings.TrimSpace(p.Logging.Format))
	if p.Logging.Format == "" {
		if value, ok := os.LookupEnv("SUBMUX_LOG_FORMAT"); ok {
			p.Logging.Format = strings.ToLower(strings.TrimSpace(value))
		}
	}
	switch p.Logging.Format {
	case "json":
	default:
		p.Logging.Format = defaultLogFormat
	}

	p.Logging.Level = strings.ToLower(strings.TrimSpace(p.Logging.Level))
	if p.Logging.Level == "" {
		if value, ok := os.LookupEnv("SUBMUX_LOG_LEVEL"); ok {
			p.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if p.Logging.Level == "" {
		p.Logging.Level = defaultLogLevel
	}
}
