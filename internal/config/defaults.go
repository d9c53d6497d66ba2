package config

const (
	defaultDataDir         = "~/.local/share/eventsort"
	defaultLogDir          = "~/.local/share/eventsort/logs"
	defaultSourceDir       = "~/Pictures/inbox"
	defaultTargetDir       = "~/Pictures/library"
	defaultInSignature     = InSignatureName
	defaultOutSignature    = "dashed"
	defaultCollision       = CollisionSkip
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultRetentionDays   = 30
	defaultPollIntervalMs  = 250
	defaultCatalogFileName = "catalog.db"
)

var defaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".heic", ".gif", ".tif", ".tiff", ".dng", ".cr2", ".nef", ".arw",
	".mp4", ".mov", ".avi", ".mts", ".m4v", ".3gp",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	exts := make([]string, len(defaultExtensions))
	copy(exts, defaultExtensions)
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			SourceDir: defaultSourceDir,
			TargetDir: defaultTargetDir,
		},
		Sorting: Sorting{
			InSignature:     defaultInSignature,
			OutSignature:    defaultOutSignature,
			Recursive:       true,
			Extensions:      exts,
			CollisionPolicy: defaultCollision,
			PollIntervalMs:  defaultPollIntervalMs,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
	}
}
