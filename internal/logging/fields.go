package logging

import (
	"context"
	"log/slog"

	"eventsort/internal/services"
)

// Structured field keys shared by every package that logs.
const (
	FieldComponent   = "component"
	FieldBatchID     = "batch_id"
	FieldStage       = "stage"
	FieldFile        = "file"
	FieldDestination = "destination"
	FieldOutcome     = "outcome"
	// FieldTaken is the resolved capture time of a media file.
	FieldTaken = "taken"
	// FieldEventType classifies a record for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldErrorKind is the services.Kind of a failure.
	FieldErrorKind = "error_kind"
	// FieldImpact states the user-facing consequence of a warning.
	FieldImpact = "impact"
	FieldError  = "error"
)

const (
	fieldDecisionType   = "decision_type"
	fieldDecisionResult = "decision_result"
	fieldDecisionReason = "decision_reason"
)

// WithContext returns logger annotated with the batch id and stage carried
// by ctx. A nil logger becomes a no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if id, ok := services.BatchIDFromContext(ctx); ok {
		args = append(args, String(FieldBatchID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		args = append(args, String(FieldStage, stage))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}

// NewComponentLogger tags logger with a component name. The console handler
// prints it ahead of the message.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
