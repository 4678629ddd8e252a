// Package pedigree defines the pedigree data model and the operations that
// derive structure from it: partnership grouping and integrity validation.
//
// A pedigree is an ordered list of individual records linked by mother/father
// references. Everything else the renderer needs (generations, partnerships,
// coordinates, consanguinity) is derived from those links; none of it is
// stored in the input.
//
// The zero value of Individual is not usable - Name must be set. Use New to
// build a Pedigree from decoded records.
package pedigree

// Sex is the recorded sex of an individual, which selects the symbol shape
// in genetics-counseling nomenclature (square, circle, diamond).
type Sex string

// Recognized sex values.
const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Valid reports whether s is one of the recognized sex values.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale || s == SexUnknown
}

// TwinKind selects which twin-group marker field a query refers to.
type TwinKind string

// Twin group kinds. Monozygotic (identical) twins are drawn with a joining
// bar; dizygotic (fraternal) twins share only the fan-out point.
const (
	TwinMonozygotic TwinKind = "monozygotic"
	TwinDizygotic   TwinKind = "dizygotic"
)

// Individual is a single person or pregnancy-loss record in the dataset.
//
// Mother and Father are identifiers of other individuals, or empty when not
// recorded. Founder status is inferred from missing parent links; the Founder
// flag is informational and only legal when neither parent is recorded.
type Individual struct {
	Name   string `json:"name" toml:"name"`
	Sex    Sex    `json:"sex,omitempty" toml:"sex,omitempty"`
	Mother string `json:"mother,omitempty" toml:"mother,omitempty"`
	Father string `json:"father,omitempty" toml:"father,omitempty"`

	// Twin-group markers. Equal non-empty values among full siblings denote
	// co-twins; the value itself is opaque.
	MZTwin string `json:"mz_twin,omitempty" toml:"mz_twin,omitempty"`
	DZTwin string `json:"dz_twin,omitempty" toml:"dz_twin,omitempty"`

	// NoBioParents marks an adopted individual: ancestry traversal stops at
	// this node even if mother/father fields are recorded.
	NoBioParents bool `json:"no_bio_parents,omitempty" toml:"no_bio_parents,omitempty"`

	// Founder marks a dataset-declared founder. Only legal when neither
	// parent reference is present.
	Founder bool `json:"founder,omitempty" toml:"founder,omitempty"`

	// Drawing-facing annotations. The layout engine ignores these; they are
	// carried through the codec for the render layer.
	Affected bool   `json:"affected,omitempty" toml:"affected,omitempty"`
	Deceased bool   `json:"deceased,omitempty" toml:"deceased,omitempty"`
	Proband  bool   `json:"proband,omitempty" toml:"proband,omitempty"`
	Note     string `json:"note,omitempty" toml:"note,omitempty"`
}

// IsFounder reports whether the individual has no recorded parents.
// Founder status is inferred from missing links, not from the Founder flag:
// an individual with neither parent recorded is a founder even when the flag
// is false.
func (i *Individual) IsFounder() bool {
	return i.Mother == "" && i.Father == ""
}

// HasBothParents reports whether both mother and father are recorded.
func (i *Individual) HasBothParents() bool {
	return i.Mother != "" && i.Father != ""
}

// TwinMarker returns the twin-group marker for the given kind, or empty if
// the individual is not in a twin group of that kind.
func (i *Individual) TwinMarker(kind TwinKind) string {
	if kind == TwinMonozygotic {
		return i.MZTwin
	}
	return i.DZTwin
}

// Pedigree is an ordered collection of individuals with a name index.
// Dataset order is preserved: it drives partnership child order and the
// in-row layout order.
//
// Pedigree is not safe for concurrent mutation, but all derivation functions
// in this module treat it as read-only, so two renders of the same Pedigree
// may run in parallel.
type Pedigree struct {
	individuals []*Individual
	byName      map[string]*Individual
}

// New builds a Pedigree from individual records, preserving order.
// Records with duplicate names are all kept in the ordered list; the index
// keeps the first occurrence. Validate reports duplicates as violations.
func New(individuals []*Individual) *Pedigree {
	p := &Pedigree{
		individuals: individuals,
		byName:      make(map[string]*Individual, len(individuals)),
	}
	for _, ind := range individuals {
		if _, exists := p.byName[ind.Name]; !exists {
			p.byName[ind.Name] = ind
		}
	}
	return p
}

// Individuals returns all individuals in dataset order.
// The returned slice is the Pedigree's backing storage; treat it as read-only.
func (p *Pedigree) Individuals() []*Individual { return p.individuals }

// Individual returns the individual with the given name and true, or nil and
// false if not found.
func (p *Pedigree) Individual(name string) (*Individual, bool) {
	ind, ok := p.byName[name]
	return ind, ok
}

// Len returns the number of individuals.
func (p *Pedigree) Len() int { return len(p.individuals) }

// ChildrenOf returns every individual that records name as mother or father,
// in dataset order. Returns nil if name has no recorded children.
func (p *Pedigree) ChildrenOf(name string) []*Individual {
	var children []*Individual
	for _, ind := range p.individuals {
		if ind.Mother == name || ind.Father == name {
			children = append(children, ind)
		}
	}
	return children
}

// Names returns all individual names in dataset order.
func (p *Pedigree) Names() []string {
	names := make([]string, len(p.individuals))
	for i, ind := range p.individuals {
		names[i] = ind.Name
	}
	return names
}
