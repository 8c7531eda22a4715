package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidf(t *testing.T) {
	err := Invalidf("invalid status: %q", "paused")

	if err.Error() != `invalid status: "paused"` {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalid) {
		t.Error("expected error to match ErrInvalid")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("invalid error should not match ErrNotFound")
	}

	wrapped := fmt.Errorf("creating coupon: %w", err)
	if !errors.Is(wrapped, ErrInvalid) {
		t.Error("expected wrapped error to match ErrInvalid")
	}
}
