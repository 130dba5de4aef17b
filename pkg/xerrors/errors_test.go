package xerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidRequest, "photo count must be >= 1, got %d", 0)
	want := "INVALID_REQUEST: photo count must be >= 1, got 0"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeNetwork, "fetch %s", "http://example.com/a.jpg")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if got := err.Error(); got != "NETWORK_ERROR: fetch http://example.com/a.jpg: connection refused" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidRequest, "bad request")

	if !Is(err, ErrCodeInvalidRequest) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeInvalidRequest) {
		t.Error("Is should not match plain errors")
	}

	// Code matching must survive wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeInvalidRequest) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidOptions, "fill ratio target must be in (0, 1]")
	if got := UserMessage(err); got != "fill ratio target must be in (0, 1]" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
