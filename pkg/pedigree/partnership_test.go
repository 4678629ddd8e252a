package pedigree

import (
	"reflect"
	"testing"
)

func TestBuildPartnershipsTrio(t *testing.T) {
	parts := BuildPartnerships(trio())

	if len(parts) != 1 {
		t.Fatalf("expected 1 partnership, got %d", len(parts))
	}
	if parts[0].PartnerA != "dad" || parts[0].PartnerB != "mom" {
		t.Errorf("partner orientation = (%s, %s), want (dad, mom)", parts[0].PartnerA, parts[0].PartnerB)
	}
	if !reflect.DeepEqual(parts[0].Children, []string{"kid"}) {
		t.Errorf("children = %v, want [kid]", parts[0].Children)
	}
}

func TestBuildPartnershipsSharedPair(t *testing.T) {
	// Two children of the same pair collapse into one partnership with both
	// children in dataset order.
	p := New([]*Individual{
		{Name: "dad", Sex: SexMale},
		{Name: "mom", Sex: SexFemale},
		{Name: "first", Sex: SexMale, Mother: "mom", Father: "dad"},
		{Name: "second", Sex: SexFemale, Mother: "mom", Father: "dad"},
	})

	parts := BuildPartnerships(p)
	if len(parts) != 1 {
		t.Fatalf("expected 1 partnership, got %d", len(parts))
	}
	if !reflect.DeepEqual(parts[0].Children, []string{"first", "second"}) {
		t.Errorf("children = %v, want [first second]", parts[0].Children)
	}
}

func TestBuildPartnershipsHalfSiblings(t *testing.T) {
	// One father with children by two mothers yields two partnerships, in
	// first-child order.
	p := New([]*Individual{
		{Name: "dad", Sex: SexMale},
		{Name: "mom1", Sex: SexFemale},
		{Name: "mom2", Sex: SexFemale},
		{Name: "a", Sex: SexMale, Mother: "mom1", Father: "dad"},
		{Name: "b", Sex: SexMale, Mother: "mom2", Father: "dad"},
	})

	parts := BuildPartnerships(p)
	if len(parts) != 2 {
		t.Fatalf("expected 2 partnerships, got %d", len(parts))
	}
	if parts[0].PartnerB != "mom1" || parts[1].PartnerB != "mom2" {
		t.Errorf("partnership order = (%s, %s), want (mom1, mom2)", parts[0].PartnerB, parts[1].PartnerB)
	}
}

func TestBuildPartnershipsIgnoresSingleParents(t *testing.T) {
	p := New([]*Individual{
		{Name: "mom", Sex: SexFemale},
		{Name: "kid", Sex: SexMale, Mother: "mom"},
	})

	if parts := BuildPartnerships(p); len(parts) != 0 {
		t.Errorf("single-parent link should form no partnership, got %v", parts)
	}
}

func TestPartnershipInvolvesOther(t *testing.T) {
	part := &Partnership{PartnerA: "dad", PartnerB: "mom"}

	if !part.Involves("dad") || !part.Involves("mom") {
		t.Error("Involves should be true for both partners")
	}
	if part.Involves("kid") {
		t.Error("Involves should be false for non-partners")
	}
	if got := part.Other("dad"); got != "mom" {
		t.Errorf("Other(dad) = %s, want mom", got)
	}
	if got := part.Other("kid"); got != "" {
		t.Errorf("Other(kid) = %s, want empty", got)
	}
}

func TestPartnershipsOf(t *testing.T) {
	parts := []*Partnership{
		{PartnerA: "dad", PartnerB: "mom1"},
		{PartnerA: "dad", PartnerB: "mom2"},
		{PartnerA: "other", PartnerB: "mom3"},
	}

	got := PartnershipsOf(parts, "dad")
	if len(got) != 2 {
		t.Errorf("PartnershipsOf(dad) returned %d partnerships, want 2", len(got))
	}
	if got := PartnershipsOf(parts, "stranger"); got != nil {
		t.Errorf("PartnershipsOf(stranger) = %v, want nil", got)
	}
}
