package crm

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrReferenceInvalid    = errors.New("reference invalid")
	ErrReferenceMismatch   = errors.New("reference mismatch")
	ErrConstraintViolation = errors.New("constraint violation")
)

// ReferenceError names a referenced row that is missing or owned by another
// agency. It unwraps to ErrReferenceInvalid or ErrReferenceMismatch.
type ReferenceError struct {
	Entity   string
	ID       uint
	AgencyID uint
	Mismatch bool
}

func (e *ReferenceError) Error() string {
	if e.Mismatch {
		return fmt.Sprintf("%s %d does not belong to agency %d", e.Entity, e.ID, e.AgencyID)
	}
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	if e.Mismatch {
		return ErrReferenceMismatch
	}
	return ErrReferenceInvalid
}

// ValidationError carries per-field messages for an input that failed its
// shape rules. It unwraps to ErrConstraintViolation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrConstraintViolation
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s with id %d: %w", entity, id, ErrNotFound)
}

// IsClientError reports whether err was caused by the request rather than
// by the service or the store being unavailable.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrReferenceInvalid) ||
		errors.Is(err, ErrReferenceMismatch) ||
		errors.Is(err, ErrConstraintViolation)
}
