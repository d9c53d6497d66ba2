package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"eventsort/internal/logging"
	"eventsort/internal/services"
	"eventsort/internal/testsupport"
)

func decodeRecord(t *testing.T, raw string) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", raw, err)
	}
	return record
}

func TestNewFromConfigWritesDailyLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("file message", logging.String("k", "v"))

	path := logging.LogPath(cfg, time.Now())
	if !strings.HasSuffix(path, "eventsort-"+time.Now().Format("2006-01-02")+".log") {
		t.Fatalf("unexpected log path %q", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	record := decodeRecord(t, string(content))
	if record["msg"] != "file message" || record["k"] != "v" || record["level"] != "info" {
		t.Fatalf("unexpected record: %#v", record)
	}
	if _, ok := record["ts"].(string); !ok {
		t.Fatalf("record time missing: %#v", record)
	}
}

func TestJSONAttributeFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Outputs: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	zone := time.FixedZone("UTC+3", 3*60*60)
	logger.Info("file routed",
		logging.Time(logging.FieldTaken, time.Date(2021, 8, 2, 10, 0, 0, 0, zone)),
		logging.Duration("elapsed", 1500*time.Millisecond),
		logging.Error(nil),
	)

	record := decodeRecord(t, buf.String())
	if record[logging.FieldTaken] != "2021-08-02 10:00:00.000" {
		t.Fatalf("taken should keep its wall-clock reading: %#v", record)
	}
	if record["elapsed_ms"] != float64(1500) {
		t.Fatalf("duration should be milliseconds: %#v", record)
	}
	if _, ok := record[logging.FieldError]; ok {
		t.Fatalf("nil error should be dropped: %#v", record)
	}
	if _, ok := record["source"]; ok {
		t.Fatalf("info level should not add source: %#v", record)
	}
}

func TestConsoleLineLayout(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Outputs: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	routerLogger := logging.NewComponentLogger(logger, "router").With(logging.String(logging.FieldStage, "routing"))
	routerLogger.Info("file routed",
		logging.String(logging.FieldFile, "a b.jpg"),
		slog.Group("shift", logging.Int("hours", 1)),
	)

	line := buf.String()
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
	if !strings.Contains(line, " INFO router: file routed stage=routing ") {
		t.Fatalf("expected component prefix before bound attrs, got %q", line)
	}
	if !strings.Contains(line, `file="a b.jpg"`) {
		t.Fatalf("expected quoted value, got %q", line)
	}
	if !strings.Contains(line, "shift.hours=1") {
		t.Fatalf("expected dotted group key, got %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no colour codes without Color, got %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", line)
	}
}

func TestConsoleIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Outputs: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := logging.New(logging.Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithBatchID(ctx, "batch-xyz")
	ctx = services.WithStage(ctx, "routing")

	var buf strings.Builder
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WithContext(ctx, base).Info("contextual log")

	record := decodeRecord(t, buf.String())
	if record[logging.FieldBatchID] != "batch-xyz" {
		t.Fatalf("batch id missing: %#v", record)
	}
	if record[logging.FieldStage] != "routing" {
		t.Fatalf("stage missing: %#v", record)
	}
}

func TestTaggedRecordsInjectDefaults(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "overlapping events", "event_overlap",
		logging.String(logging.FieldImpact, "first event used"))
	record := decodeRecord(t, buf.String())
	if record["level"] != "WARN" || record[logging.FieldEventType] != "event_overlap" {
		t.Fatalf("unexpected warning: %#v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("error_hint default missing: %#v", record)
	}
	if record[logging.FieldImpact] != "first event used" {
		t.Fatalf("impact overridden: %#v", record)
	}

	buf.Reset()
	logging.ErrorWithContext(logger, "batch not started", "batch_rejected", logging.Error(errors.New("empty source")))
	record = decodeRecord(t, buf.String())
	if record["level"] != "ERROR" || record[logging.FieldEventType] != "batch_rejected" || record[logging.FieldError] != "empty source" {
		t.Fatalf("unexpected error record: %#v", record)
	}
	if _, ok := record[logging.FieldImpact]; ok {
		t.Fatalf("error records carry no default impact: %#v", record)
	}

	logging.WarnWithContext(nil, "ignored", "noop")
}
