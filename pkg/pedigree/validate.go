package pedigree

import (
	"fmt"

	"github.com/pedikit/pedikit/pkg/errors"
)

// Validate checks referential and sex-role integrity of the pedigree and
// returns nil if valid. It is exhaustive: every violation in the dataset is
// collected before returning, so the caller can report them all at once.
//
// Checks, per individual:
//  1. Names are unique and well-formed.
//  2. A recorded mother must exist and have sex female.
//  3. A recorded father must exist and have sex male.
//  4. The founder flag is only legal when neither parent is recorded.
//  5. The parent graph is acyclic (no individual is its own ancestor).
//
// On failure the returned error is a *errors.ValidationError carrying one
// Violation per problem. Layout components assume a validated pedigree as a
// precondition; they do not re-check these invariants, but they are written
// to terminate (not crash) if handed an invalid graph directly.
func Validate(p *Pedigree) error {
	var violations []errors.Violation

	seen := make(map[string]bool, p.Len())
	for _, ind := range p.Individuals() {
		if err := errors.ValidateIndividualName(ind.Name); err != nil {
			violations = append(violations, errors.NewViolation(
				errors.ErrCodeInvalidName, ind.Name, errors.UserMessage(err)))
			continue
		}
		if seen[ind.Name] {
			violations = append(violations, errors.NewViolation(
				errors.ErrCodeInvalidName, ind.Name, "duplicate individual name"))
		}
		seen[ind.Name] = true

		if ind.Sex != "" && !ind.Sex.Valid() {
			violations = append(violations, errors.NewViolation(
				errors.ErrCodeInvalidSex, ind.Name,
				fmt.Sprintf("unknown sex value %q", ind.Sex)))
		}

		violations = append(violations, checkParentRole(p, ind, ind.Mother, SexFemale, "mother")...)
		violations = append(violations, checkParentRole(p, ind, ind.Father, SexMale, "father")...)

		if ind.Founder && !ind.IsFounder() {
			violations = append(violations, errors.NewViolation(
				errors.ErrCodeFounderParents, ind.Name,
				"founder flag set but parent references are present"))
		}
	}

	violations = append(violations, checkAcyclic(p)...)

	if len(violations) > 0 {
		return &errors.ValidationError{Violations: violations}
	}
	return nil
}

// checkParentRole verifies one parent reference: the referenced individual
// must exist and carry the expected sex for the role.
func checkParentRole(p *Pedigree, child *Individual, ref string, want Sex, role string) []errors.Violation {
	if ref == "" {
		return nil
	}
	parent, ok := p.Individual(ref)
	if !ok {
		return []errors.Violation{errors.NewViolation(
			errors.ErrCodeUnknownParent, child.Name,
			fmt.Sprintf("%s %q does not exist", role, ref))}
	}
	if parent.Sex != want {
		return []errors.Violation{errors.NewViolation(
			errors.ErrCodeParentSex, child.Name,
			fmt.Sprintf("%s %q has sex %q, want %q", role, ref, parent.Sex, want))}
	}
	return nil
}

// checkAcyclic detects cycles in the parent graph (child → mother/father
// edges) using iterative depth-first search with white/gray/black coloring.
// A cycle means some individual is recorded as its own ancestor, which would
// make ancestry walks and generation assignment meaningless.
func checkAcyclic(p *Pedigree) []errors.Violation {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, p.Len())
	var violations []errors.Violation

	parents := func(name string) []string {
		ind, ok := p.Individual(name)
		if !ok {
			return nil
		}
		var out []string
		if ind.Mother != "" {
			out = append(out, ind.Mother)
		}
		if ind.Father != "" {
			out = append(out, ind.Father)
		}
		return out
	}

	type frame struct {
		name string
		next int
	}

	for _, ind := range p.Individuals() {
		if color[ind.Name] != white {
			continue
		}

		stack := []frame{{name: ind.Name}}
		color[ind.Name] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			ps := parents(top.name)

			if top.next >= len(ps) {
				color[top.name] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := ps[top.next]
			top.next++

			switch color[next] {
			case white:
				color[next] = gray
				stack = append(stack, frame{name: next})
			case gray:
				violations = append(violations, errors.NewViolation(
					errors.ErrCodeCycle, next,
					"individual is recorded as its own ancestor"))
				color[next] = black
			}
		}
	}

	return violations
}
