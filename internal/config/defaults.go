package config

const (
	defaultSessionPath     = "~/.cache/reelvault/session"
	defaultDebridBaseURL   = "https://api.real-debrid.com/rest/1.0"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	defaultBuildOutputPath = "~/.local/share/reelvault/library.enc"
	defaultBuildCachePath  = "~/.local/share/reelvault/cache.enc"
	defaultRefreshHours    = 23
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			SessionPath: defaultSessionPath,
		},
		Debrid: Debrid{
			BaseURL: defaultDebridBaseURL,
		},
		TMDB: TMDB{
			BaseURL: defaultTMDBBaseURL,
		},
		Build: Build{
			OutputPath:   defaultBuildOutputPath,
			CachePath:    defaultBuildCachePath,
			RefreshHours: defaultRefreshHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
