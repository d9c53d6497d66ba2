package testsupport

import (
	"context"
	"testing"
	"time"

	"eventsort/internal/catalog"
	"eventsort/internal/config"
	"eventsort/internal/interval"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustInterval parses an operator-style range or fails the test.
func MustInterval(t testing.TB, start, end string) interval.Interval {
	t.Helper()

	iv, err := interval.ParseRange(start, end)
	if err != nil {
		t.Fatalf("ParseRange(%q, %q): %v", start, end, err)
	}
	return iv
}

// MustTime parses a naive instant or fails the test.
func MustTime(t testing.TB, value string) time.Time {
	t.Helper()

	ts, err := interval.Parse(value)
	if err != nil {
		t.Fatalf("Parse(%q): %v", value, err)
	}
	return ts
}

// NewEvent inserts an event for tests using the provided store.
func NewEvent(t testing.TB, store *catalog.Store, title, start, end string) catalog.Event {
	t.Helper()

	event, err := store.InsertEvent(context.Background(), title, MustInterval(t, start, end))
	if err != nil {
		t.Fatalf("store.InsertEvent: %v", err)
	}
	return event
}
