package errors

import (
	"strings"
	"unicode"
)

// Violation describes a single integrity problem found in a pedigree dataset.
// The Name field identifies the individual whose record triggered the check.
type Violation struct {
	Code    Code   // Which check failed
	Name    string // Individual the violation was found on
	Message string // Human-readable description
}

// Error implements the error interface for a single violation.
func (v Violation) Error() string {
	return string(v.Code) + ": " + v.Name + ": " + v.Message
}

// ValidationError aggregates every violation found in one validation pass.
// Validation is exhaustive: the caller receives all problems at once rather
// than fixing them one re-run at a time.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface, one line per violation.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "pedigree validation failed"
	}
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.Error()
	}
	return "pedigree validation failed:\n  " + strings.Join(lines, "\n  ")
}

// NewViolation creates a Violation for the named individual.
func NewViolation(code Code, name, message string) Violation {
	return Violation{Code: code, Name: name, Message: message}
}

// ValidateIndividualName validates an individual identifier for safety and
// correctness. Identifiers end up in SVG ids, cache keys, and file names, so
// the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateIndividualName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "individual name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "individual name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "individual name contains control characters")
		}
	}

	return nil
}
