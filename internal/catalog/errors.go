package catalog

import (
	"errors"
	"fmt"
	"strings"

	"eventsort/internal/interval"
)

var (
	ErrDuplicateName   = errors.New("duplicate name")
	ErrMissingTitle    = errors.New("missing title")
	ErrMissingData     = errors.New("missing data")
	ErrSwapConflict    = errors.New("start after end")
	ErrOverlapConflict = errors.New("overlapping interval")
	ErrOutsideParent   = errors.New("outside parent event")
	ErrNotFound        = errors.New("not found")
	ErrPersonInUse     = errors.New("person still referenced")
	ErrCatalogLocked   = errors.New("catalog locked by another process")
)

// Reason names the invariant a rejected mutation violated.
type Reason string

const (
	ReasonDuplicateName Reason = "duplicate_name"
	ReasonMissingTitle  Reason = "missing_title"
	ReasonMissingData   Reason = "missing_data"
	ReasonSwap          Reason = "swap"
	ReasonOverlap       Reason = "overlap"
	ReasonOutside       Reason = "outside_parent"
)

var reasonSentinels = map[Reason]error{
	ReasonDuplicateName: ErrDuplicateName,
	ReasonMissingTitle:  ErrMissingTitle,
	ReasonMissingData:   ErrMissingData,
	ReasonSwap:          ErrSwapConflict,
	ReasonOverlap:       ErrOverlapConflict,
	ReasonOutside:       ErrOutsideParent,
}

// ValidationError describes a rejected mutation. Overlap and Outside carry
// the interval classification for overlap and containment failures.
type ValidationError struct {
	Reason  Reason
	Entity  string
	Overlap interval.OverlapKind
	Outside interval.OutsideKind
	// ConflictID is the row the candidate collided with, when there is one.
	ConflictID int64
	Detail     string
}

func (e *ValidationError) Error() string {
	parts := []string{e.Entity, e.Unwrap().Error()}
	switch e.Reason {
	case ReasonOverlap:
		parts = append(parts, string(e.Overlap))
	case ReasonOutside:
		parts = append(parts, string(e.Outside))
	}
	msg := strings.Join(parts, ": ")
	if e.ConflictID != 0 {
		msg += fmt.Sprintf(" (conflicts with #%d)", e.ConflictID)
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Unwrap exposes the sentinel for errors.Is matching.
func (e *ValidationError) Unwrap() error {
	if sentinel, ok := reasonSentinels[e.Reason]; ok {
		return sentinel
	}
	return ErrMissingData
}

// ErrorKind classifies the error for callers that route on error kinds.
func (e *ValidationError) ErrorKind() string {
	return "validation"
}

// AsValidation extracts a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func invalid(entity string, reason Reason, detail string) *ValidationError {
	return &ValidationError{Entity: entity, Reason: reason, Detail: detail}
}

func overlapError(entity string, kind interval.OverlapKind, conflictID int64) *ValidationError {
	return &ValidationError{Entity: entity, Reason: ReasonOverlap, Overlap: kind, ConflictID: conflictID}
}

func outsideError(entity string, kind interval.OutsideKind, eventID int64) *ValidationError {
	return &ValidationError{Entity: entity, Reason: ReasonOutside, Outside: kind, ConflictID: eventID}
}

func swapError(entity string, iv interval.Interval) *ValidationError {
	return &ValidationError{Entity: entity, Reason: ReasonSwap, Overlap: interval.Swapped, Detail: iv.String()}
}
