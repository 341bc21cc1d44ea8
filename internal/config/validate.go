package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"submux/internal/episode"
	"submux/internal/language"
)

// knownMatrices are the color matrix values the ASS "YCbCr Matrix" header
// accepts.
var knownMatrices = []string{
	"None",
	"TV.601", "PC.601",
	"TV.709", "PC.709",
	"TV.240M", "PC.240M",
	"TV.FCC", "PC.FCC",
}

// Validate ensures the project configuration is usable.
func (p *Project) Validate() error {
	if err := p.validateRelease(); err != nil {
		return err
	}
	if err := p.validateLanguages(); err != nil {
		return err
	}
	if err := p.validateVideo(); err != nil {
		return err
	}
	if err := p.validateExtras(); err != nil {
		return err
	}
	return nil
}

func (p *Project) validateRelease() error {
	if p.ShowName == "" {
		return errors.New("show_name must be set")
	}
	if p.FansubGroup == "" {
		return errors.New("fansub_group must be set")
	}
	if p.VideoSource == "" {
		return errors.New("video_source must be set (e.g. \"WEB\" or \"BD\")")
	}
	if p.TMDBID < 0 {
		return errors.New("tmdb_id must not be negative")
	}
	return nil
}

func (p *Project) validateLanguages() error {
	if p.AudioLangCode == "" {
		return errors.New("audio_lang_code must be set")
	}
	if p.SubLangCode == "" {
		return errors.New("sub_lang_code must be set")
	}
	if !language.Matches(p.AudioLanguage, p.AudioLangCode) {
		return fmt.Errorf("audio_language %q does not match audio_lang_code %q", p.AudioLanguage, p.AudioLangCode)
	}
	if !language.Matches(p.SubLanguage, p.SubLangCode) {
		return fmt.Errorf("sub_language %q does not match sub_lang_code %q", p.SubLanguage, p.SubLangCode)
	}
	return nil
}

func (p *Project) validateVideo() error {
	if len(p.Resolution) != 2 {
		return fmt.Errorf("resolution must be [width, height], got %d values", len(p.Resolution))
	}
	if p.Resolution[0] < 1 || p.Resolution[1] < 1 {
		return errors.New("resolution values must be positive")
	}
	for _, known := range knownMatrices {
		if p.YCbCrMatrix == known {
			return nil
		}
	}
	return fmt.Errorf("ycbcr_matrix %q is not a recognized matrix (e.g. %q)", p.YCbCrMatrix, defaultYCbCrMatrix)
}

func (p *Project) validateExtras() error {
	buckets := make(map[string]episode.Bucket, len(p.Extras.Merge))
	for key, rules := range p.Extras.Merge {
		bucket, err := episode.ParseBucket(key)
		if err != nil {
			return fmt.Errorf("extras.merge.%q: %w", key, err)
		}
		for seenKey, seen := range buckets {
			if bucket.Overlaps(seen) {
				return fmt.Errorf("extras.merge.%q overlaps extras.merge.%q", key, seenKey)
			}
		}
		buckets[key] = bucket

		if len(rules) == 0 {
			return fmt.Errorf("extras.merge.%q has no files", key)
		}
		for name, sync := range rules {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("extras.merge.%q has an empty file name", key)
			}
			if !strings.EqualFold(filepath.Ext(name), ".ass") {
				return fmt.Errorf("extras.merge.%q: %q is not an .ass file", key, name)
			}
			if strings.TrimSpace(sync.From) == "" || strings.TrimSpace(sync.To) == "" {
				return fmt.Errorf("extras.merge.%q: %q needs both from and to sync labels", key, name)
			}
		}
	}
	return nil
}
