package services

import (
	"errors"
	"fmt"
	"strings"

	"eventsort/internal/catalog"
)

// Markers tag wrapped errors for Kind.
var (
	ErrIO            = errors.New("i/o failure")
	ErrPrecondition  = errors.New("precondition failed")
	ErrConfiguration = errors.New("configuration error")
)

// Error kinds reported by Kind.
const (
	KindIO            = "io"
	KindValidation    = "validation"
	KindNotFound      = "not_found"
	KindPrecondition  = "precondition"
	KindConfiguration = "configuration"
)

// Wrap tags err with marker and prefixes it with the component, operation,
// and subject it concerns. A nil marker means ErrIO; a nil err yields a
// marker-only error.
func Wrap(marker error, component, operation, subject string, err error) error {
	if marker == nil {
		marker = ErrIO
	}
	where := joinNonEmpty(component, operation, subject)
	if err == nil {
		return fmt.Errorf("%w: %s", marker, where)
	}
	return fmt.Errorf("%w: %s: %w", marker, where, err)
}

// Kind classifies err for reports and the error_kind log field. Unmarked
// errors count as I/O failures.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var classified interface{ ErrorKind() string }
	if errors.As(err, &classified) && classified.ErrorKind() == KindValidation {
		return KindValidation
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPrecondition):
		return KindPrecondition
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	default:
		return KindIO
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return "operation failed"
	}
	return strings.Join(kept, ": ")
}
