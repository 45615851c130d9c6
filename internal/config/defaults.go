package config

const (
	defaultExtensions       = "avi,mkv,mp4"
	defaultSize             = "100M"
	defaultDiscoveryTimeout = 300
	defaultFindBinary       = "find"
	defaultHistoryPath      = "~/.local/share/mvvideos/history.db"
	defaultLogColor         = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Extensions: defaultExtensions,
			Size:       defaultSize,
			Confirm:    true,
		},
		Discovery: Discovery{
			TimeoutSeconds: defaultDiscoveryTimeout,
			FindBinary:     defaultFindBinary,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Color: defaultLogColor,
		},
	}
}
