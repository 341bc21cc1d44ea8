package mergeplan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"submux/internal/config"
	"submux/internal/episode"
	"submux/internal/fileutil"
	"submux/internal/textutil"
)

// CRCToken marks where the finished file's checksum lands in a release name.
const CRCToken = "$crc32$"

// Font extensions mkvmerge accepts as attachments.
var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
}

// Extra is one extras file resolved for an episode.
type Extra struct {
	File string `json:"file"`
	Path string `json:"path"`
	From string `json:"from"`
	To   string `json:"to"`
}

// EpisodePlan is everything the muxer needs for one episode. Problems lists
// what stops the episode from muxing; a plan without problems is viable.
type EpisodePlan struct {
	Episode    int      `json:"episode"`
	Key        string   `json:"key"`
	Dir        string   `json:"dir"`
	Video      string   `json:"video,omitempty"`
	Subtitles  []string `json:"subtitles,omitempty"`
	Extras     []Extra  `json:"extras,omitempty"`
	Fonts      []string `json:"fonts,omitempty"`
	OutputName string   `json:"output_name"`
	Title      string   `json:"title"`
	Problems   []string `json:"problems,omitempty"`
}

// Viable reports whether the episode can be muxed.
func (p EpisodePlan) Viable() bool { return len(p.Problems) == 0 }

// Plan resolves the full batch: one EpisodePlan per configured episode.
// Per-episode lookup failures land in Problems rather than aborting the
// whole plan.
func Plan(cfg *config.Project) ([]EpisodePlan, error) {
	rules, err := Compile(cfg)
	if err != nil {
		return nil, err
	}
	projectFonts := collectFonts(filepath.Join(cfg.ProjectDir(), "fonts"))

	episodes := cfg.EpisodeRange().Episodes()
	plans := make([]EpisodePlan, 0, len(episodes))
	for _, ep := range episodes {
		plans = append(plans, planEpisode(cfg, rules, projectFonts, ep))
	}
	return plans, nil
}

func planEpisode(cfg *config.Project, rules *RuleSet, projectFonts []string, ep int) EpisodePlan {
	key := episode.Key(ep)
	dir := filepath.Join(cfg.EpisodesPath, key)
	plan := EpisodePlan{
		Episode:    ep,
		Key:        key,
		Dir:        dir,
		OutputName: ReleaseName(cfg, key),
		Title:      fmt.Sprintf("%s - %s", cfg.ShowName, key),
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		plan.Problems = append(plan.Problems, fmt.Sprintf("episode directory %s not found", dir))
		return plan
	}

	video, err := fileutil.FindOne(dir, "*.mkv")
	if err != nil {
		plan.Problems = append(plan.Problems, err.Error())
	} else {
		plan.Video = video
	}

	subs, err := fileutil.FindAll(dir, "*.ass")
	if err != nil {
		plan.Problems = append(plan.Problems, err.Error())
	} else if len(subs) == 0 {
		plan.Problems = append(plan.Problems, fmt.Sprintf("no .ass files in %s", dir))
	} else {
		plan.Subtitles = subs
	}

	for _, rule := range rules.ForEpisode(ep) {
		path := filepath.Join(cfg.ExtrasPath, rule.File)
		if _, err := os.Stat(path); err != nil {
			plan.Problems = append(plan.Problems, fmt.Sprintf("extras file %s not found", path))
			continue
		}
		plan.Extras = append(plan.Extras, Extra{
			File: rule.File,
			Path: path,
			From: rule.From,
			To:   rule.To,
		})
	}

	plan.Fonts = append(plan.Fonts, projectFonts...)
	plan.Fonts = append(plan.Fonts, collectFonts(filepath.Join(dir, "fonts"))...)
	return plan
}

// ReleaseName renders the release filename for an episode key, with the
// checksum token still in place.
func ReleaseName(cfg *config.Project, key string) string {
	name := fmt.Sprintf("[%s] %s - %s [%s] [%s] [%s]",
		cfg.FansubGroup, cfg.ShowName, key, cfg.ResolutionLabel(), cfg.VideoSource, CRCToken)
	return textutil.SanitizeFileName(name) + ".mkv"
}

// collectFonts lists attachable font files under dir in sorted order.
// A missing fonts directory is simply no fonts.
func collectFonts(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var fonts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if fontExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			fonts = append(fonts, filepath.Join(dir, entry.Name()))
		}
	}
	return fonts
}
