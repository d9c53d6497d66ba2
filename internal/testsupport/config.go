package testsupport

import (
	"path/filepath"
	"testing"

	"eventsort/internal/config"
)

// ConfigOption adjusts a generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig returns the default configuration rooted in a fresh temp
// directory: data/, logs/, inbox/ (source) and library/ (target). Only the
// paths are set; tests create the trees they need. Logs are JSON at debug
// level so assertions can decode them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(root, "data")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.SourceDir = filepath.Join(root, "inbox")
	cfg.Paths.TargetDir = filepath.Join(root, "library")
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSorting edits the sorting section.
func WithSorting(fn func(*config.Sorting)) ConfigOption {
	return func(cfg *config.Config) { fn(&cfg.Sorting) }
}

// WithOutSignature selects the output filename signature.
func WithOutSignature(name string) ConfigOption {
	return func(cfg *config.Config) { cfg.Sorting.OutSignature = name }
}

// BaseDir returns the temp root NewConfig placed the directories under.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
