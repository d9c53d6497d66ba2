package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"eventsort/internal/config"
)

const (
	logFilePrefix = "eventsort-"
	logFileSuffix = ".log"
	logFileDay    = "2006-01-02"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Outputs receive every record. None means stderr.
	Outputs []io.Writer
	// Color enables ANSI level colours in console output.
	Color bool
	// Source appends file:line to records. Debug level always does.
	Source bool
}

// New constructs a console or JSON slog logger.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	hopts := handlerOptions{
		level:  level,
		source: opts.Source || level <= slog.LevelDebug,
		color:  opts.Color,
	}

	var w io.Writer
	switch len(opts.Outputs) {
	case 0:
		w = os.Stderr
	case 1:
		w = opts.Outputs[0]
	default:
		w = io.MultiWriter(opts.Outputs...)
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, hopts)), nil
	case "json":
		return slog.New(newJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig logs to stderr and, when a log directory is configured, to
// that day's log file. Command output on stdout stays machine-readable.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info"})
	}
	outputs := []io.Writer{os.Stderr}
	color := isatty.IsTerminal(os.Stderr.Fd())
	if cfg.Paths.LogDir != "" {
		file, err := openLogFile(LogPath(cfg, time.Now()))
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, file)
		color = false
	}
	return New(Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Outputs: outputs,
		Color:   color,
	})
}

// LogPath returns the daily log file for day inside the configured log
// directory.
func LogPath(cfg *config.Config, day time.Time) string {
	return filepath.Join(cfg.Paths.LogDir, logFilePrefix+day.Format(logFileDay)+logFileSuffix)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log level: unsupported value %q", level)
	}
}
