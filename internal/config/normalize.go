package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSorting()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if value, ok := os.LookupEnv("EVENTSORT_SOURCE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.SourceDir = strings.TrimSpace(value)
	}
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if value, ok := os.LookupEnv("EVENTSORT_TARGET_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.TargetDir = strings.TrimSpace(value)
	}
	if c.Paths.TargetDir, err = expandPath(strings.TrimSpace(c.Paths.TargetDir)); err != nil {
		return fmt.Errorf("paths.target_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSorting() {
	c.Sorting.InSignature = strings.ToLower(strings.TrimSpace(c.Sorting.InSignature))
	if c.Sorting.InSignature == "" {
		c.Sorting.InSignature = defaultInSignature
	}
	c.Sorting.OutSignature = strings.ToLower(strings.TrimSpace(c.Sorting.OutSignature))
	if c.Sorting.OutSignature == "" {
		c.Sorting.OutSignature = defaultOutSignature
	}
	c.Sorting.CollisionPolicy = strings.ToLower(strings.TrimSpace(c.Sorting.CollisionPolicy))
	if c.Sorting.CollisionPolicy == "" {
		c.Sorting.CollisionPolicy = defaultCollision
	}
	if c.Sorting.PollIntervalMs <= 0 {
		c.Sorting.PollIntervalMs = defaultPollIntervalMs
	}

	if len(c.Sorting.Extensions) == 0 {
		c.Sorting.Extensions = append([]string(nil), defaultExtensions...)
		return
	}
	exts := make([]string, 0, len(c.Sorting.Extensions))
	seen := make(map[string]struct{}, len(c.Sorting.Extensions))
	for _, ext := range c.Sorting.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Sorting.Extensions = exts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
