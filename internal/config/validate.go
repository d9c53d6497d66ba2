package config

import (
	"errors"
	"fmt"
	"strings"

	"eventsort/internal/signature"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSorting(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	source := strings.TrimSpace(c.Paths.SourceDir)
	target := strings.TrimSpace(c.Paths.TargetDir)
	if source != "" && source == target {
		return errors.New("paths.source_dir and paths.target_dir must differ")
	}
	return nil
}

func (c *Config) validateSorting() error {
	switch c.Sorting.InSignature {
	case InSignatureName, InSignatureEXIF, InSignatureNameEXIF:
	default:
		return fmt.Errorf("sorting.in_signature must be one of %s, %s, %s (got %q)",
			InSignatureName, InSignatureEXIF, InSignatureNameEXIF, c.Sorting.InSignature)
	}
	if _, ok := signature.LookupOutput(c.Sorting.OutSignature); !ok {
		return fmt.Errorf("sorting.out_signature must be one of %s (got %q)",
			strings.Join(signature.OutputNames(), ", "), c.Sorting.OutSignature)
	}
	switch c.Sorting.CollisionPolicy {
	case CollisionSkip, CollisionSuffix:
	default:
		return fmt.Errorf("sorting.collision_policy must be %s or %s (got %q)",
			CollisionSkip, CollisionSuffix, c.Sorting.CollisionPolicy)
	}
	if len(c.Sorting.Extensions) == 0 {
		return errors.New("sorting.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
}
