package layout

import (
	"github.com/pedikit/pedikit/pkg/pedigree"
)

// AssignGenerations computes an integer generation (depth) for every
// individual from the parent/child links. Generation 0 is the topmost row;
// founders (no recorded parents) seed it.
//
// The result is total: every individual in the pedigree appears exactly
// once, with individuals the traversal never reaches defaulting to 0.
//
// # Algorithm
//
// AssignGenerations performs a breadth-first expansion from founders:
//  1. Seed a work queue with every individual lacking both parent
//     references, at generation 0.
//  2. For the individual at the queue head, visit each of its children. A
//     child is assigned once all of its recorded parents have generations,
//     at max(motherGen, fatherGen)+1. A missing parent is treated as sitting
//     at the known parent's own depth, so a single-parent link behaves like
//     having an absent partner at the same generation.
//  3. Unreached individuals default to generation 0.
//  4. A bounded fix-point correction pass raises any parent sitting above
//     childGen-1 down to exactly childGen-1.
//
// The correction pass exists because pure BFS from founders is
// order-sensitive when an individual is simultaneously a partner (reachable
// shallow) and a child of a deeper lineage (reachable late): the structural
// invariant generation(child) = max(parents)+1 must hold regardless of
// dataset order. Raising parents can cascade upward through their own
// parents, so the pass repeats until stable, bounded by the individual count.
func AssignGenerations(p *pedigree.Pedigree) map[string]int {
	gens := make(map[string]int, p.Len())
	assigned := make(map[string]bool, p.Len())

	children := childIndex(p)

	var queue []string
	for _, ind := range p.Individuals() {
		if ind.IsFounder() {
			gens[ind.Name] = 0
			assigned[ind.Name] = true
			queue = append(queue, ind.Name)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if assigned[child.Name] {
				continue
			}
			gen, ok := parentDerivedGen(child, gens, assigned)
			if !ok {
				continue
			}
			gens[child.Name] = gen
			assigned[child.Name] = true
			queue = append(queue, child.Name)
		}
	}

	// Unreached individuals (unresolved upstream links) default to 0.
	for _, ind := range p.Individuals() {
		if !assigned[ind.Name] {
			gens[ind.Name] = 0
		}
	}

	correctParentGenerations(p, gens)

	return gens
}

// childIndex maps each parent name to its children in dataset order.
func childIndex(p *pedigree.Pedigree) map[string][]*pedigree.Individual {
	idx := make(map[string][]*pedigree.Individual)
	for _, ind := range p.Individuals() {
		if ind.Mother != "" {
			idx[ind.Mother] = append(idx[ind.Mother], ind)
		}
		if ind.Father != "" && ind.Father != ind.Mother {
			idx[ind.Father] = append(idx[ind.Father], ind)
		}
	}
	return idx
}

// parentDerivedGen returns the generation a child would get from its
// recorded parents, or false if some recorded parent has no generation yet.
func parentDerivedGen(child *pedigree.Individual, gens map[string]int, assigned map[string]bool) (int, bool) {
	gen := -1
	for _, parent := range []string{child.Mother, child.Father} {
		if parent == "" {
			continue
		}
		if !assigned[parent] {
			return 0, false
		}
		if g := gens[parent]; g > gen {
			gen = g
		}
	}
	if gen < 0 {
		return 0, false
	}
	return gen + 1, true
}

// correctParentGenerations repairs parents that were reached early (for
// example as someone's partner) before their own deeper lineage was
// discovered: for every individual with both parents known, each parent is
// raised to at least generation(child)-1. Raising a parent can invalidate
// that parent's own parents, so the pass repeats to a fix point, bounded by
// the number of individuals (each iteration raises at least one node and
// generations never exceed the individual count).
func correctParentGenerations(p *pedigree.Pedigree, gens map[string]int) {
	for range p.Individuals() {
		changed := false
		for _, ind := range p.Individuals() {
			if !ind.HasBothParents() {
				continue
			}
			parentGen := gens[ind.Name] - 1
			for _, parent := range []string{ind.Mother, ind.Father} {
				if _, exists := p.Individual(parent); !exists {
					continue
				}
				if gens[parent] < parentGen {
					gens[parent] = parentGen
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
