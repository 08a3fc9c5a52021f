package errors

import (
	"errors"
	"testing"
)

func TestWrapErrorPreservesSentinel(t *testing.T) {
	err := WrapError(ErrInvalidInput, "decode request")
	if !IsInvalidInput(err) {
		t.Errorf("IsInvalidInput(%v) = false, want true", err)
	}
	if err.Error() != "decode request: invalid input" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = WrapErrorf(ErrPayloadTooLarge, "body over %d bytes", 10)
	if !IsPayloadTooLarge(err) || IsInvalidInput(err) {
		t.Errorf("unexpected classification for %v", err)
	}

	if !IsRateLimited(WrapError(ErrRateLimited, "client 10.0.0.1")) {
		t.Error("IsRateLimited() = false, want true")
	}
}

func TestWrapNil(t *testing.T) {
	if WrapError(nil, "x") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	if WrapErrorf(nil, "x %d", 1) != nil {
		t.Error("WrapErrorf(nil) should be nil")
	}
	if IsInvalidInput(errors.New("other")) {
		t.Error("IsInvalidInput matched an unrelated error")
	}
}
