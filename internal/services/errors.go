package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the product service can report.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not originate in this package.
	KindUnknown ErrorKind = iota
	// KindValidation means the input was rejected before touching the store.
	KindValidation
	// KindNotFound means no product exists for the requested ID.
	KindNotFound
	// KindPersistence means the store failed for any other reason.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by ProductService.
type Error struct {
	Kind ErrorKind
	Op   string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, or KindUnknown if it is not a service error.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnknown
}

// ValidationFields returns the per-field messages carried by a validation error.
func ValidationFields(err error) map[string]string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Kind == KindValidation {
		return svcErr.Fields
	}
	return nil
}
