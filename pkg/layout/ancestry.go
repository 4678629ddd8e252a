package layout

import (
	"github.com/pedikit/pedikit/pkg/pedigree"
)

// Ancestors returns the set of names reachable by walking mother/father
// links upward from name, including name itself.
//
// The walk stops at any individual whose NoBioParents marker is set: that
// individual belongs to the set, but its recorded mother/father fields (if
// any) are not followed. This is how adoption truncates ancestry.
//
// The walk is iterative with an explicit stack and a visited set, so a
// malformed cyclic parent graph terminates instead of recursing without
// bound. Parent references to individuals missing from the dataset are
// included in the set (they are named ancestors) but contribute no further
// links.
func Ancestors(p *pedigree.Pedigree, name string) map[string]bool {
	visited := make(map[string]bool)
	stack := []string{name}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[curr] {
			continue
		}
		visited[curr] = true

		ind, ok := p.Individual(curr)
		if !ok || ind.NoBioParents {
			continue
		}
		if ind.Mother != "" {
			stack = append(stack, ind.Mother)
		}
		if ind.Father != "" {
			stack = append(stack, ind.Father)
		}
	}

	return visited
}

// IsConsanguineous reports whether two partners share at least one common
// ancestor (ancestors-and-self of each, truncated at adopted individuals).
//
// Note this is literal shared ancestry: it is also true when one partner is
// a direct ancestor of the other, or when siblings are modeled as partners.
// Callers must not read "consanguineous" as "distant cousin".
func IsConsanguineous(p *pedigree.Pedigree, partnerA, partnerB string) bool {
	a := Ancestors(p, partnerA)
	b := Ancestors(p, partnerB)

	// Intersect the smaller set against the larger.
	if len(b) < len(a) {
		a, b = b, a
	}
	for name := range a {
		if b[name] {
			return true
		}
	}
	return false
}

// CoTwins returns every other individual in the same twin group as name for
// the given kind, in dataset order.
//
// Co-twin membership requires the same non-empty marker value AND the same
// mother AND the same father: marker equality alone is insufficient, so two
// unrelated sibling groups cannot collide by reusing a marker string.
// Returns nil if name is unknown or carries no marker of that kind.
func CoTwins(p *pedigree.Pedigree, name string, kind pedigree.TwinKind) []*pedigree.Individual {
	ind, ok := p.Individual(name)
	if !ok {
		return nil
	}
	marker := ind.TwinMarker(kind)
	if marker == "" {
		return nil
	}

	var twins []*pedigree.Individual
	for _, other := range p.Individuals() {
		if other.Name == name {
			continue
		}
		if other.TwinMarker(kind) == marker && other.Mother == ind.Mother && other.Father == ind.Father {
			twins = append(twins, other)
		}
	}
	return twins
}
