package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eventsort/internal/services"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "config", "validate")
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "in_signature")

	target := filepath.Join(t.TempDir(), "config.toml")
	out = env.run(t, "config", "init", "--path", target)
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse an existing file without --overwrite")
	}

	// The shipped sample must load cleanly.
	out = env.run(t, "--config", target, "config", "validate")
	requireContains(t, out, "Configuration valid")
}

func TestBrokenConfigIsConfigurationError(t *testing.T) {
	setupCLITestEnv(t)
	broken := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(broken, []byte("[paths\ndata_dir = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	for _, args := range [][]string{{"person", "list"}, {"config", "validate"}} {
		_, _, err := runCLI(t, args, broken)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("%v: err = %v, want configuration error", args, err)
		}
		if kind := services.Kind(err); kind != services.KindConfiguration {
			t.Fatalf("%v: kind = %q", args, kind)
		}
	}
}
