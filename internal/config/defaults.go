package config

const (
	defaultDataDir        = "~/.local/share/bandplanner"
	defaultStorageBackend = BackendSQLite
	defaultOrdering       = OrderingAlphabetical
	defaultLocale         = "en"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Storage backends understood by the kvstore package.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Ordering policies applied to roster collections after every insert.
const (
	OrderingAlphabetical = "alphabetical"
	OrderingInsertion    = "insertion"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Storage: Storage{
			Backend: defaultStorageBackend,
		},
		Roster: Roster{
			Ordering: defaultOrdering,
			Locale:   defaultLocale,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
