package apperr

import (
	"errors"
	"testing"
)

func TestStorage(t *testing.T) {
	if Storage("noop", nil) != nil {
		t.Fatal("Storage(nil) should stay nil")
	}

	cause := errors.New("disk full")
	err := Storage("insert notification", cause)

	if !errors.Is(err, ErrStorageFailure) {
		t.Errorf("expected ErrStorageFailure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected original cause to stay reachable, got %v", err)
	}

	// Wrapping twice must not stack the sentinel.
	again := Storage("outer", err)
	if again != err {
		t.Errorf("expected already-tagged error to pass through, got %v", again)
	}
}

func TestInvalidArgumentAndNotFound(t *testing.T) {
	err := InvalidArgument("month %d out of range", 13)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err.Error() != "invalid argument: month 13 out of range" {
		t.Errorf("unexpected message %q", err.Error())
	}

	nf := NotFound("expense", "abc")
	if !errors.Is(nf, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", nf)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("email %s", "a@example.com")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if errors.Is(err, ErrStorageFailure) {
		t.Error("a conflict is not a storage failure")
	}
	if err.Error() != "email a@example.com: already exists" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
