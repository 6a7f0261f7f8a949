package status

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, want := range []Status{StatusPending, StatusPaid, StatusFailed, StatusRefunded} {
		got, err := ParseStatus(want.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q): unexpected error: %v", want, err)
		}
		if got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", want, got, want)
		}
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := ParseStatus("shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := ParseStatus(""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for empty status, got %v", err)
	}
}
