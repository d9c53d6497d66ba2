package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Input signature priorities.
const (
	InSignatureName     = "name"
	InSignatureEXIF     = "exif"
	InSignatureNameEXIF = "name_exif"
)

// Collision policies applied when a destination name is taken.
const (
	CollisionSkip   = "skip"
	CollisionSuffix = "suffix"
)

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	SourceDir string `toml:"source_dir"`
	TargetDir string `toml:"target_dir"`
}

// Sorting contains the router policy switches.
type Sorting struct {
	// InSignature selects which timestamp source wins: name, exif, or
	// name_exif (name first, EXIF as fallback).
	InSignature string `toml:"in_signature"`
	// OutSignature names the canonical filename form written to the library.
	OutSignature     string `toml:"out_signature"`
	ProcessUnmatched bool   `toml:"process_unmatched"`
	// ProcessSameName overwrites an existing destination file instead of
	// applying the collision policy.
	ProcessSameName bool     `toml:"process_samename"`
	RequireArtist   bool     `toml:"require_artist"`
	Recursive       bool     `toml:"recursive"`
	Copy            bool     `toml:"copy"`
	Extensions      []string `toml:"extensions"`
	CollisionPolicy string   `toml:"collision_policy"`
	PollIntervalMs  int      `toml:"poll_interval_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// RetentionDays prunes log files older than this many days. Zero keeps
	// every file.
	RetentionDays int `toml:"retention_days"`
}

// Config encapsulates all configuration values for eventsort.
//
// Configuration sections by subsystem:
//   - Paths: catalog/log locations and the default source/target trees
//   - Sorting: router policy (signatures, unmatched files, artists, copy/move)
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Sorting Sorting `toml:"sorting"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns ~/.config/eventsort/config.toml, expanded.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/eventsort/config.toml")
}

// Load reads the configuration at path, or searches the default locations
// when path is empty. It returns the normalized and validated config, the
// file it came from, and whether that file exists. A missing file yields
// the defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	resolved, exists, err := locateConfig(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// decodeFile strictly decodes TOML into cfg; unknown keys are errors so a
// misspelt setting is not silently ignored.
func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// locateConfig resolves an explicit path as given. Without one it tries the
// user config file, then eventsort.toml in the working directory, and
// falls back to the user path when neither exists.
func locateConfig(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		return expanded, exists, err
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	localPath, err := filepath.Abs("eventsort.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, localPath} {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	}
	return !info.IsDir(), nil
}

// CatalogPath returns the SQLite catalog location.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Paths.DataDir, defaultCatalogFileName)
}

// EnsureDirectories creates the data and log directories. The target tree is
// created lazily by the router so an offline library disk does not break
// catalog editing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// expandPath resolves a leading ~ to the home directory and returns an
// absolute, cleaned path. Empty input stays empty.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimLeft(value[1:], `/\`))
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath applies the same ~ and absolute-path rules as configuration
// loading.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
