package pedigree

import (
	stderrors "errors"
	"testing"

	"github.com/pedikit/pedikit/pkg/errors"
)

// trio builds the smallest complete family: two founders and their child.
func trio() *Pedigree {
	return New([]*Individual{
		{Name: "dad", Sex: SexMale},
		{Name: "mom", Sex: SexFemale},
		{Name: "kid", Sex: SexFemale, Mother: "mom", Father: "dad"},
	})
}

func violationsOf(t *testing.T, err error) []errors.Violation {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var verr *errors.ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatalf("expected *errors.ValidationError, got %T", err)
	}
	return verr.Violations
}

func hasViolation(violations []errors.Violation, code errors.Code, name string) bool {
	for _, v := range violations {
		if v.Code == code && v.Name == name {
			return true
		}
	}
	return false
}

func TestValidateValid(t *testing.T) {
	if err := Validate(trio()); err != nil {
		t.Errorf("valid trio should pass: %v", err)
	}
}

func TestValidateUnknownParent(t *testing.T) {
	p := New([]*Individual{
		{Name: "kid", Sex: SexMale, Mother: "ghost", Father: "dad"},
		{Name: "dad", Sex: SexMale},
	})

	violations := violationsOf(t, Validate(p))
	if !hasViolation(violations, errors.ErrCodeUnknownParent, "kid") {
		t.Errorf("missing unknown-parent violation: %v", violations)
	}
}

func TestValidateParentSex(t *testing.T) {
	p := New([]*Individual{
		{Name: "a", Sex: SexMale},
		{Name: "b", Sex: SexMale},
		{Name: "kid", Sex: SexFemale, Mother: "a", Father: "b"},
	})

	violations := violationsOf(t, Validate(p))
	if !hasViolation(violations, errors.ErrCodeParentSex, "kid") {
		t.Errorf("mother with sex male should be a violation: %v", violations)
	}
	// Father "b" is male, so only the mother reference is wrong.
	if len(violations) != 1 {
		t.Errorf("expected exactly 1 violation, got %d: %v", len(violations), violations)
	}
}

func TestValidateDuplicateName(t *testing.T) {
	p := New([]*Individual{
		{Name: "x", Sex: SexMale},
		{Name: "x", Sex: SexFemale},
	})

	violations := violationsOf(t, Validate(p))
	if !hasViolation(violations, errors.ErrCodeInvalidName, "x") {
		t.Errorf("duplicate name should be a violation: %v", violations)
	}
}

func TestValidateFounderFlagWithParents(t *testing.T) {
	p := New([]*Individual{
		{Name: "dad", Sex: SexMale},
		{Name: "mom", Sex: SexFemale},
		{Name: "kid", Sex: SexMale, Mother: "mom", Father: "dad", Founder: true},
	})

	violations := violationsOf(t, Validate(p))
	if !hasViolation(violations, errors.ErrCodeFounderParents, "kid") {
		t.Errorf("founder flag with parents should be a violation: %v", violations)
	}
}

func TestValidateInvalidSexValue(t *testing.T) {
	p := New([]*Individual{{Name: "x", Sex: "hermaphrodite"}})

	violations := violationsOf(t, Validate(p))
	if !hasViolation(violations, errors.ErrCodeInvalidSex, "x") {
		t.Errorf("unrecognized sex value should be a violation: %v", violations)
	}
}

func TestValidateCycle(t *testing.T) {
	// a is recorded as its own grandmother: a -> b -> a.
	p := New([]*Individual{
		{Name: "a", Sex: SexFemale, Mother: "b"},
		{Name: "b", Sex: SexFemale, Mother: "a"},
	})

	violations := violationsOf(t, Validate(p))
	found := false
	for _, v := range violations {
		if v.Code == errors.ErrCodeCycle {
			found = true
		}
	}
	if !found {
		t.Errorf("parent cycle should be a violation: %v", violations)
	}
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	// Three independent problems in one dataset must all be reported.
	p := New([]*Individual{
		{Name: "", Sex: SexMale},
		{Name: "y", Sex: "invalid"},
		{Name: "z", Sex: SexMale, Mother: "nobody"},
	})

	violations := violationsOf(t, Validate(p))
	if len(violations) != 3 {
		t.Errorf("expected 3 violations, got %d: %v", len(violations), violations)
	}
}

func TestChildrenOf(t *testing.T) {
	p := trio()

	kids := p.ChildrenOf("mom")
	if len(kids) != 1 || kids[0].Name != "kid" {
		t.Errorf("ChildrenOf(mom) = %v, want [kid]", kids)
	}
	if kids := p.ChildrenOf("kid"); kids != nil {
		t.Errorf("ChildrenOf(kid) = %v, want nil", kids)
	}
}
