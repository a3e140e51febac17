package config

const (
	defaultDataDir               = "."
	defaultOutputDir             = "safe_data"
	defaultReportDir             = "."
	defaultLogDir                = "~/.local/share/streamsift/logs"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLargeNumberThreshold  = 1_000_000_000_000
	defaultMaxMatchesPerDetector = 3
	defaultTopArtists            = 20
	defaultTopTracks             = 20
	defaultTopPlaylists          = 10
	defaultDescriptionLimit      = 100
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
			ReportDir: defaultReportDir,
			LogDir:    defaultLogDir,
		},
		Scanner: Scanner{
			LargeNumberThreshold:  defaultLargeNumberThreshold,
			MaxMatchesPerDetector: defaultMaxMatchesPerDetector,
		},
		Report: Report{
			TopArtists:       defaultTopArtists,
			TopTracks:        defaultTopTracks,
			TopPlaylists:     defaultTopPlaylists,
			DescriptionLimit: defaultDescriptionLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
