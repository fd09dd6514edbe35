package config

const (
	defaultOutputDir = "~/books"
	defaultLogDir    = "~/.local/share/bookvert/logs"
	defaultJournalDB = "~/.local/share/bookvert/journal.db"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultImageExtensions() []string {
	return []string{"jpg", "png", "gif", "bmp", "tif", "webp", "avif"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			JournalDB: defaultJournalDB,
		},
		Scan: Scan{
			ImageExtensions: defaultImageExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
