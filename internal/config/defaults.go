package config

const (
	defaultEpisodesPath = "episodes"
	defaultExtrasPath   = "extras"
	defaultOutputPath   = "muxed"
	defaultYCbCrMatrix  = "TV.709"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	defaultWidth  = 1920
	defaultHeight = 1080
)

// Default returns a Project populated with repository defaults. Release
// metadata stays empty on purpose: validation forces each project to state
// its own show name, group, source, and language codes. Logging defaults are
// applied during normalization so environment fallbacks can run first.
func Default() Project {
	return Project{
		YCbCrMatrix:  defaultYCbCrMatrix,
		Resolution:   []int{defaultWidth, defaultHeight},
		EpisodesPath: defaultEpisodesPath,
		ExtrasPath:   defaultExtrasPath,
		OutputPath:   defaultOutputPath,
	}
}
