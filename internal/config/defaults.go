package config

const (
	defaultBaseURL        = "https://gdcvault.com"
	defaultConcurrency    = 10
	defaultTimeoutSeconds = 30
	defaultDataDir        = "."
	defaultYear           = 23
	defaultLogLevel       = "info"
)

var defaultTracks = []string{
	"Programming",
	"Design",
	"Visual Arts",
	"Advanced Graphics Summit",
	"Tools Summit",
	"Animation Summit",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scrape: Scrape{
			BaseURL:        defaultBaseURL,
			Concurrency:    defaultConcurrency,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Analysis: Analysis{
			Year:   defaultYear,
			Tracks: append([]string(nil), defaultTracks...),
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
