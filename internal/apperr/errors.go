// Package apperr defines the error taxonomy shared by the ledger core and
// its collaborators. Callers classify failures with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed caller input, such as a month outside 1..12.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageFailure marks an I/O error from the Ledger Store.
	// The underlying error stays reachable through errors.Is and errors.As.
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a write that would break a uniqueness rule.
	ErrConflict = errors.New("already exists")
)

// InvalidArgument returns an ErrInvalidArgument with a formatted reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound naming the missing record.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Conflict returns an ErrConflict with a formatted reason.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Storage tags err as a storage failure for op. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}
