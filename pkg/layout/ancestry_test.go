package layout

import (
	"testing"

	"github.com/pedikit/pedikit/pkg/pedigree"
)

func TestAncestorsIncludesSelf(t *testing.T) {
	p := ped(&pedigree.Individual{Name: "only", Sex: pedigree.SexMale})

	got := Ancestors(p, "only")
	if !got["only"] {
		t.Error("Ancestors should include the individual itself")
	}
	if len(got) != 1 {
		t.Errorf("founder ancestors = %v, want just self", got)
	}
}

func TestAncestorsWalksBothLines(t *testing.T) {
	p := ped(
		&pedigree.Individual{Name: "gm", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "gf", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "mom", Sex: pedigree.SexFemale, Mother: "gm", Father: "gf"},
		&pedigree.Individual{Name: "dad", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "kid", Sex: pedigree.SexFemale, Mother: "mom", Father: "dad"},
	)

	got := Ancestors(p, "kid")
	for _, name := range []string{"kid", "mom", "dad", "gm", "gf"} {
		if !got[name] {
			t.Errorf("Ancestors(kid) missing %s", name)
		}
	}
}

func TestAncestorsStopAtAdoption(t *testing.T) {
	// kid is adopted: the recorded parent links must not be followed.
	p := ped(
		&pedigree.Individual{Name: "mom", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "kid", Sex: pedigree.SexMale, Mother: "mom", NoBioParents: true},
	)

	got := Ancestors(p, "kid")
	if got["mom"] {
		t.Error("adoption marker should truncate the ancestry walk")
	}
	if !got["kid"] {
		t.Error("adopted individual itself belongs to its ancestor set")
	}
}

func TestAncestorsTerminatesOnCycle(t *testing.T) {
	// Malformed cyclic graph: the walk must terminate.
	p := ped(
		&pedigree.Individual{Name: "a", Sex: pedigree.SexFemale, Mother: "b"},
		&pedigree.Individual{Name: "b", Sex: pedigree.SexFemale, Mother: "a"},
	)

	got := Ancestors(p, "a")
	if !got["a"] || !got["b"] {
		t.Errorf("cycle walk should still visit both: %v", got)
	}
}

func TestIsConsanguineous(t *testing.T) {
	p := ped(
		&pedigree.Individual{Name: "gm", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "gf", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "sis", Sex: pedigree.SexFemale, Mother: "gm", Father: "gf"},
		&pedigree.Individual{Name: "bro", Sex: pedigree.SexMale, Mother: "gm", Father: "gf"},
		&pedigree.Individual{Name: "outsider", Sex: pedigree.SexMale},
	)

	if !IsConsanguineous(p, "sis", "bro") {
		t.Error("full siblings share ancestors")
	}
	if IsConsanguineous(p, "sis", "outsider") {
		t.Error("unrelated individuals share no ancestors")
	}
}

func TestIsConsanguineousBrokenByAdoption(t *testing.T) {
	// Adopted sibling shares no biological ancestry with a birth sibling.
	p := ped(
		&pedigree.Individual{Name: "gm", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "gf", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "birth", Sex: pedigree.SexFemale, Mother: "gm", Father: "gf"},
		&pedigree.Individual{Name: "adopted", Sex: pedigree.SexMale, Mother: "gm", Father: "gf", NoBioParents: true},
	)

	if IsConsanguineous(p, "birth", "adopted") {
		t.Error("adoption should break the shared-ancestor link")
	}
}

func TestCoTwinsGroupOfThree(t *testing.T) {
	p := ped(
		&pedigree.Individual{Name: "mom", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "dad", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "t1", Sex: pedigree.SexMale, Mother: "mom", Father: "dad", MZTwin: "g1"},
		&pedigree.Individual{Name: "t2", Sex: pedigree.SexMale, Mother: "mom", Father: "dad", MZTwin: "g1"},
		&pedigree.Individual{Name: "t3", Sex: pedigree.SexMale, Mother: "mom", Father: "dad", MZTwin: "g1"},
	)

	twins := CoTwins(p, "t1", pedigree.TwinMonozygotic)
	if len(twins) != 2 {
		t.Fatalf("CoTwins(t1) returned %d, want 2", len(twins))
	}
	if twins[0].Name != "t2" || twins[1].Name != "t3" {
		t.Errorf("co-twins should follow dataset order: %s, %s", twins[0].Name, twins[1].Name)
	}
}

func TestCoTwinsRequiresSameParents(t *testing.T) {
	// Same marker value but different mothers: not co-twins.
	p := ped(
		&pedigree.Individual{Name: "mom1", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "mom2", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "dad", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "a", Sex: pedigree.SexMale, Mother: "mom1", Father: "dad", MZTwin: "g1"},
		&pedigree.Individual{Name: "b", Sex: pedigree.SexMale, Mother: "mom2", Father: "dad", MZTwin: "g1"},
	)

	if twins := CoTwins(p, "a", pedigree.TwinMonozygotic); len(twins) != 0 {
		t.Errorf("marker collision across sibships should not pair: %v", twins)
	}
}

func TestCoTwinsKindIsolation(t *testing.T) {
	p := ped(
		&pedigree.Individual{Name: "mom", Sex: pedigree.SexFemale},
		&pedigree.Individual{Name: "dad", Sex: pedigree.SexMale},
		&pedigree.Individual{Name: "a", Sex: pedigree.SexMale, Mother: "mom", Father: "dad", DZTwin: "g1"},
		&pedigree.Individual{Name: "b", Sex: pedigree.SexFemale, Mother: "mom", Father: "dad", DZTwin: "g1"},
	)

	if twins := CoTwins(p, "a", pedigree.TwinMonozygotic); twins != nil {
		t.Errorf("dizygotic marker should not answer a monozygotic query: %v", twins)
	}
	if twins := CoTwins(p, "a", pedigree.TwinDizygotic); len(twins) != 1 || twins[0].Name != "b" {
		t.Errorf("CoTwins(a, dizygotic) = %v, want [b]", twins)
	}
}

func TestCoTwinsUnknownName(t *testing.T) {
	p := ped(&pedigree.Individual{Name: "x", Sex: pedigree.SexMale})
	if twins := CoTwins(p, "nobody", pedigree.TwinMonozygotic); twins != nil {
		t.Errorf("unknown name should return nil, got %v", twins)
	}
}
