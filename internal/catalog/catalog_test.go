package catalog

import (
	"strings"
	"testing"
)

func TestRarityValid(t *testing.T) {
	for _, r := range Rarities() {
		if !r.Valid() {
			t.Fatalf("Rarity(%q).Valid() = false, want true", r)
		}
	}
	if Rarity("epic").Valid() {
		t.Fatalf("Rarity(epic).Valid() = true, want false")
	}
}

func TestItem_CloneDoesNotShareAbilities(t *testing.T) {
	orig := Item{ID: "a", Abilities: []string{"Fire", "Flight"}}
	dup := orig.Clone()
	dup.Abilities[0] = "Ice"
	if orig.Abilities[0] != "Fire" {
		t.Fatalf("Clone shared abilities: orig = %v", orig.Abilities)
	}
}

func TestItem_HasAbility(t *testing.T) {
	it := Item{Abilities: []string{"Fire", "Fire", "Flight"}}
	if !it.HasAbility("Flight") {
		t.Fatalf("HasAbility(Flight) = false, want true")
	}
	if it.HasAbility("fire") {
		t.Fatalf("HasAbility is case-sensitive; got true for fire")
	}
}

func TestCloneAll_EmptyIsNil(t *testing.T) {
	if got := CloneAll(nil); got != nil {
		t.Fatalf("CloneAll(nil) = %#v, want nil", got)
	}
	if got := CloneAll([]Item{}); got != nil {
		t.Fatalf("CloneAll(empty) = %#v, want nil", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		items   []Item
		wantErr string
	}{
		{"ok", []Item{{ID: "a", Rarity: RarityCommon}, {ID: "b", Rarity: RarityLegendary}}, ""},
		{"empty", nil, ""},
		{"missing id", []Item{{ID: "a"}, {ID: "  ", Name: "Ghost"}}, "missing id"},
		{"duplicate", []Item{{ID: "a", Rarity: RarityRare}, {ID: "b"}, {ID: "a"}}, "duplicate id"},
		{"unknown rarity", []Item{{ID: "a", Rarity: RarityRare}, {ID: "b", Rarity: "epic"}}, `unknown rarity "epic"`},
		{"blank rarity", []Item{{ID: "a"}}, "unknown rarity"},
		{"rarity is case sensitive", []Item{{ID: "a", Rarity: "Rare"}}, "unknown rarity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.items)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}
