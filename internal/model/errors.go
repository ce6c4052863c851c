package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds.  Every error returned by the ledger and the
// reservation service matches exactly one of them through errors.Is, which
// is how handlers pick the HTTP status code.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("seats unavailable")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports a malformed request.  Field names the offending
// input when it is known.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports references that do not exist.  SeatIDs is filled
// when the missing references are seats; Resource is set otherwise.
type NotFoundError struct {
	Resource string
	SeatIDs  []uint64
}

func (e *NotFoundError) Error() string {
	if len(e.SeatIDs) > 0 {
		return "seats not found: " + joinIDs(e.SeatIDs)
	}
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError lists the requested seats that were not available.
type ConflictError struct {
	SeatIDs []uint64
}

func (e *ConflictError) Error() string {
	return "seats unavailable: " + joinIDs(e.SeatIDs)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StorageError wraps an underlying database or transport failure for op.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func joinIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
