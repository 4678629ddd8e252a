package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewError(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format: %s", "gif")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "unknown format: gif") {
		t.Errorf("Error() = %s", err.Error())
	}
	if !strings.Contains(err.Error(), string(ErrCodeInvalidFormat)) {
		t.Error("Error() should include the code")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeInternal, cause, "write artifact")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() should include the cause: %s", err.Error())
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeFileNotFound, "missing")

	if !Is(err, ErrCodeFileNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeCycle) {
		t.Error("Is should not match a different code")
	}
	if GetCode(err) != ErrCodeFileNotFound {
		t.Errorf("GetCode = %s", GetCode(err))
	}

	plain := fmt.Errorf("plain")
	if Is(plain, ErrCodeInternal) || GetCode(plain) != "" {
		t.Error("plain errors carry no code")
	}

	// Codes survive wrapping in plain errors.
	wrapped := fmt.Errorf("context: %w", err)
	if GetCode(wrapped) != ErrCodeFileNotFound {
		t.Error("GetCode should unwrap")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidName, "name too long")
	if UserMessage(err) != "name too long" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}

	plain := fmt.Errorf("boom")
	if UserMessage(plain) != "boom" {
		t.Errorf("UserMessage for plain error = %q", UserMessage(plain))
	}
}

func TestValidationErrorAggregation(t *testing.T) {
	verr := &ValidationError{Violations: []Violation{
		NewViolation(ErrCodeUnknownParent, "kid", `mother "ghost" does not exist`),
		NewViolation(ErrCodeInvalidSex, "x", "unknown sex value"),
	}}

	msg := verr.Error()
	if !strings.Contains(msg, "kid") || !strings.Contains(msg, "ghost") {
		t.Errorf("first violation missing from message: %s", msg)
	}
	if !strings.Contains(msg, "unknown sex value") {
		t.Errorf("second violation missing from message: %s", msg)
	}
	if len(strings.Split(msg, "\n")) != 3 {
		t.Errorf("expected header plus one line per violation: %q", msg)
	}
}

func TestValidateIndividualName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "III-2", false},
		{"unicode", "Å", false},
		{"empty", "", true},
		{"control char", "a\x00b", true},
		{"too long", strings.Repeat("x", 257), true},
		{"max length", strings.Repeat("x", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndividualName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIndividualName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
