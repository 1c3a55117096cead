package config

const (
	defaultDatabase   = "~/.local/share/progdoc/events.db"
	defaultOutputDir  = "~/.local/share/progdoc/output"
	defaultTimezone   = "Europe/Moscow"
	defaultLocale     = "ru"
	defaultRoomSuffix = "БМ."
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:  defaultDatabase,
			OutputDir: defaultOutputDir,
		},
		Extract: Extract{
			Timezone:   defaultTimezone,
			Locale:     defaultLocale,
			RoomSuffix: defaultRoomSuffix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
