package pedigree

// Partnership is a co-parenting pair inferred from shared children. It is
// derived data: rebuilt fully on every layout pass, never stored in the
// input, and meaningful only while both referenced individuals exist.
//
// PartnerA is always the father and PartnerB the mother of the children that
// formed the pair, giving a stable canonical orientation independent of
// which individual appears as mother vs. father first in the dataset.
type Partnership struct {
	PartnerA string   // father
	PartnerB string   // mother
	Children []string // child names in dataset order
}

// Involves reports whether name is one of the two partners.
func (p *Partnership) Involves(name string) bool {
	return p.PartnerA == name || p.PartnerB == name
}

// Other returns the partner opposite to name, or empty if name is not a
// partner.
func (p *Partnership) Other(name string) string {
	switch name {
	case p.PartnerA:
		return p.PartnerB
	case p.PartnerB:
		return p.PartnerA
	}
	return ""
}

// pairKey is the identity key of a partnership: the two partner names in
// deterministic order, so the same pair is recognized regardless of role.
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// BuildPartnerships groups individuals who co-parent children into
// partnership records.
//
// For every individual with both mother and father recorded, the sorted pair
// of parent names identifies a partnership. The first child encountered for
// a pair creates the record; later children append in dataset order.
// Individuals with one or no recorded parents contribute no partnership.
//
// The result order follows first appearance in the dataset, which keeps
// output deterministic for identical inputs.
func BuildPartnerships(p *Pedigree) []*Partnership {
	var partnerships []*Partnership
	index := make(map[pairKey]*Partnership)

	for _, ind := range p.Individuals() {
		if !ind.HasBothParents() {
			continue
		}
		key := newPairKey(ind.Mother, ind.Father)
		part, ok := index[key]
		if !ok {
			part = &Partnership{PartnerA: ind.Father, PartnerB: ind.Mother}
			index[key] = part
			partnerships = append(partnerships, part)
		}
		part.Children = append(part.Children, ind.Name)
	}

	return partnerships
}

// PartnershipsOf returns every partnership in parts that involves name.
func PartnershipsOf(parts []*Partnership, name string) []*Partnership {
	var result []*Partnership
	for _, p := range parts {
		if p.Involves(name) {
			result = append(result, p)
		}
	}
	return result
}
