package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventsort/internal/logging"
)

func TestPruneLogsUsesFileNameDate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC)
	names := map[string]bool{
		"eventsort-2026-03-31.log": true,  // today
		"eventsort-2026-03-01.log": true,  // exactly at the cutoff
		"eventsort-2026-02-28.log": false, // expired
		"eventsort-2025-12-24.log": false, // expired
		"eventsort-notadate.log":   true,
		"notes-2020-01-01.log":     true,
		"eventsort-2020-01-01.txt": true,
	}
	for name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if removed := logging.PruneLogs(logging.NewNop(), dir, 30, now); removed != 2 {
		t.Fatalf("PruneLogs removed %d files, want 2", removed)
	}
	for name, kept := range names {
		_, err := os.Stat(filepath.Join(dir, name))
		if kept && err != nil {
			t.Fatalf("expected %s kept: %v", name, err)
		}
		if !kept && !os.IsNotExist(err) {
			t.Fatalf("expected %s removed, stat err = %v", name, err)
		}
	}
}

func TestPruneLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "eventsort-2000-01-01.log")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if removed := logging.PruneLogs(logging.NewNop(), dir, 0, time.Now()); removed != 0 {
		t.Fatalf("retention 0 removed %d files", removed)
	}
	if _, err := os.Stat(old); err != nil {
		t.Fatalf("expected file kept: %v", err)
	}
}
