package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Time records a naive catalog instant. Handlers print it as written.
func Time(key string, value time.Time) Attr { return slog.Time(key, value) }

// Error records err under FieldError. A nil error yields an empty attribute,
// which handlers drop.
func Error(err error) Attr {
	if err == nil {
		return Attr{}
	}
	return slog.String(FieldError, err.Error())
}

// Args adapts attrs to the variadic ...any parameters of slog.Logger.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// DecisionAttrs explains a routing choice: what was decided, the result, and
// the input that drove it.
func DecisionAttrs(decision, result, reason string) []Attr {
	return []Attr{
		String(fieldDecisionType, decision),
		String(fieldDecisionResult, result),
		String(fieldDecisionReason, reason),
	}
}

const (
	defaultErrorHint = "see the eventsort log file for details"
	defaultImpact    = "operation continued with warnings"
)

// WarnWithContext logs a warning tagged with eventType. Hint and impact
// fields get generic defaults when attrs omit them.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logTagged(logger, slog.LevelWarn, msg, eventType, attrs)
}

// ErrorWithContext logs an error tagged with eventType. A hint is added when
// attrs carry none.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logTagged(logger, slog.LevelError, msg, eventType, attrs)
}

func logTagged(logger *slog.Logger, level slog.Level, msg, eventType string, attrs []Attr) {
	if logger == nil {
		return
	}
	present := make(map[string]bool, len(attrs))
	for _, attr := range attrs {
		present[attr.Key] = true
	}
	if !present[FieldEventType] {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !present[FieldErrorHint] {
		attrs = append(attrs, String(FieldErrorHint, defaultErrorHint))
	}
	if level == slog.LevelWarn && !present[FieldImpact] {
		attrs = append(attrs, String(FieldImpact, defaultImpact))
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}
