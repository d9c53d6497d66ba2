package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"eventsort/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "eventsort")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.CatalogPath() != filepath.Join(wantData, "catalog.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.CatalogPath())
	}
	if cfg.Paths.TargetDir != filepath.Join(tempHome, "Pictures", "library") {
		t.Fatalf("unexpected target dir: %q", cfg.Paths.TargetDir)
	}
	if cfg.Sorting.InSignature != config.InSignatureName {
		t.Fatalf("unexpected in signature: %q", cfg.Sorting.InSignature)
	}
	if cfg.Sorting.OutSignature != "dashed" {
		t.Fatalf("unexpected out signature: %q", cfg.Sorting.OutSignature)
	}
	if cfg.Sorting.ProcessUnmatched || cfg.Sorting.RequireArtist || cfg.Sorting.Copy {
		t.Fatalf("expected conservative defaults, got %+v", cfg.Sorting)
	}
	if !cfg.Sorting.Recursive {
		t.Fatal("expected recursive enumeration by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "eventsort.toml")

	type payload struct {
		Paths struct {
			DataDir   string `toml:"data_dir"`
			SourceDir string `toml:"source_dir"`
			TargetDir string `toml:"target_dir"`
		} `toml:"paths"`
		Sorting struct {
			InSignature     string   `toml:"in_signature"`
			OutSignature    string   `toml:"out_signature"`
			RequireArtist   bool     `toml:"require_artist"`
			Extensions      []string `toml:"extensions"`
			CollisionPolicy string   `toml:"collision_policy"`
		} `toml:"sorting"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Paths.SourceDir = filepath.Join(tempDir, "in")
	custom.Paths.TargetDir = filepath.Join(tempDir, "out")
	custom.Sorting.InSignature = " EXIF "
	custom.Sorting.OutSignature = "Compact"
	custom.Sorting.RequireArtist = true
	custom.Sorting.Extensions = []string{"JPG", ".jpg", " mp4 ", ""}
	custom.Sorting.CollisionPolicy = "suffix"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Sorting.InSignature != config.InSignatureEXIF {
		t.Fatalf("expected normalized in signature, got %q", cfg.Sorting.InSignature)
	}
	if cfg.Sorting.OutSignature != "compact" {
		t.Fatalf("expected normalized out signature, got %q", cfg.Sorting.OutSignature)
	}
	if !cfg.Sorting.RequireArtist {
		t.Fatal("expected require_artist from file")
	}
	if got := strings.Join(cfg.Sorting.Extensions, ","); got != ".jpg,.mp4" {
		t.Fatalf("unexpected extensions: %q", got)
	}
	if cfg.Sorting.CollisionPolicy != config.CollisionSuffix {
		t.Fatalf("unexpected collision policy: %q", cfg.Sorting.CollisionPolicy)
	}
}

func TestEnvOverridesSortDirectories(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("EVENTSORT_SOURCE_DIR", filepath.Join(tempDir, "env-in"))
	t.Setenv("EVENTSORT_TARGET_DIR", filepath.Join(tempDir, "env-out"))

	cfg, _, _, err := config.Load(filepath.Join(tempDir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.SourceDir != filepath.Join(tempDir, "env-in") {
		t.Errorf("expected source dir from env, got %q", cfg.Paths.SourceDir)
	}
	if cfg.Paths.TargetDir != filepath.Join(tempDir, "env-out") {
		t.Errorf("expected target dir from env, got %q", cfg.Paths.TargetDir)
	}
}

func TestValidateRejectsUnknownSignatures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"in signature", func(c *config.Config) { c.Sorting.InSignature = "mtime" }, "sorting.in_signature"},
		{"out signature", func(c *config.Config) { c.Sorting.OutSignature = "roman" }, "sorting.out_signature"},
		{"collision", func(c *config.Config) { c.Sorting.CollisionPolicy = "overwrite" }, "sorting.collision_policy"},
		{"level", func(c *config.Config) { c.Logging.Level = "chatty" }, "logging.level"},
		{"same dirs", func(c *config.Config) { c.Paths.SourceDir = "/x"; c.Paths.TargetDir = "/x" }, "must differ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[sorting]") {
		t.Fatalf("sample config missing sorting section: %s", contents)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Sorting.CollisionPolicy != config.CollisionSkip {
		t.Fatalf("unexpected collision policy in sample: %q", cfg.Sorting.CollisionPolicy)
	}
}
