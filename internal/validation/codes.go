package validation

import (
	"errors"

	"eventsort/internal/catalog"
	"eventsort/internal/interval"
)

// Code is the warning shown for a draft.
type Code string

const (
	NoWarning     Code = "NO_WARNING"
	MissingData   Code = "MISSING_DATA"
	DateSwap      Code = "DATE_SWAP"
	DuplicateName Code = "DUPLICATE_NAME"
	OverlapStart  Code = "OVERLAP_START"
	OverlapEnd    Code = "OVERLAP_END"
	OverlapBoth   Code = "OVERLAP_BOTH"
	OutsideStart  Code = "OUTSIDE_START"
	OutsideEnd    Code = "OUTSIDE_END"
	OutsideBoth   Code = "OUTSIDE_BOTH"
)

var messages = map[Code]string{
	NoWarning:     "",
	MissingData:   "Fill in all required fields.",
	DateSwap:      "The end is before the start.",
	DuplicateName: "This name already exists.",
	OverlapStart:  "The start falls inside an existing entry.",
	OverlapEnd:    "The end falls inside an existing entry.",
	OverlapBoth:   "The interval covers an existing entry.",
	OutsideStart:  "The start is before the event begins.",
	OutsideEnd:    "The end is after the event ends.",
	OutsideBoth:   "The interval lies outside the event.",
}

// Message returns the operator-facing text for code.
func Message(code Code) string {
	return messages[code]
}

// Blocking reports whether code must prevent a commit.
func (c Code) Blocking() bool {
	return c != NoWarning
}

// CodeFor maps a catalog validation error to its warning code. Errors that
// are not validation failures report false.
func CodeFor(err error) (Code, bool) {
	if err == nil {
		return NoWarning, true
	}
	verr, ok := catalog.AsValidation(err)
	if !ok {
		return "", false
	}
	switch {
	case errors.Is(verr, catalog.ErrMissingData), errors.Is(verr, catalog.ErrMissingTitle):
		return MissingData, true
	case errors.Is(verr, catalog.ErrSwapConflict):
		return DateSwap, true
	case errors.Is(verr, catalog.ErrDuplicateName):
		return DuplicateName, true
	case errors.Is(verr, catalog.ErrOverlapConflict):
		return overlapCode(verr.Overlap), true
	case errors.Is(verr, catalog.ErrOutsideParent):
		return outsideCode(verr.Outside), true
	}
	return "", false
}

func overlapCode(kind interval.OverlapKind) Code {
	switch kind {
	case interval.OverlapStart:
		return OverlapStart
	case interval.OverlapEnd:
		return OverlapEnd
	case interval.Swapped:
		return DateSwap
	default:
		return OverlapBoth
	}
}

func outsideCode(kind interval.OutsideKind) Code {
	switch kind {
	case interval.OutsideStart:
		return OutsideStart
	case interval.OutsideEnd:
		return OutsideEnd
	default:
		return OutsideBoth
	}
}
