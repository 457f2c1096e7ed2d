package filter

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lair/internal/catalog"
)

func fixture() []catalog.Item {
	return []catalog.Item{
		{ID: "nadder", Name: "Deadly Nadder", Type: "Sharp", Rarity: catalog.RarityCommon,
			Abilities: []string{"Spine Shot", "Flight"}, Description: "Vain and beautiful."},
		{ID: "stormcutter", Name: "Stormcutter", Type: "Sharp", Rarity: catalog.RarityRare,
			Abilities: []string{"Flight", "Four Wings"}, Description: "Owl-like dragon."},
		{ID: "skrill", Name: "Skrill", Type: "Strike", Rarity: catalog.RarityLegendary,
			Abilities: []string{"Lightning"}, Description: "Rides the STORM clouds."},
		{ID: "toothless-1", Name: "Toothless", Type: "Strike", Rarity: catalog.RarityLegendary,
			Abilities: []string{"Plasma Blast", "Flight", "Echolocation"}, Description: "Night Fury."},
		{ID: "gronckle", Name: "Gronckle", Type: "Boulder", Rarity: catalog.RarityCommon,
			Abilities: []string{"Lava Blast"}, Description: "Eats rocks."},
	}
}

func ids(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestApply_Rarity(t *testing.T) {
	c := Empty().Merge(Patch{Rarity: String("legendary")})
	got := Apply(fixture(), c)
	assert.Equal(t, []string{"skrill", "toothless-1"}, ids(got))
}

func TestApply_TermMatchesNameOrDescriptionCaseInsensitively(t *testing.T) {
	items := []catalog.Item{
		{ID: "stormcutter", Name: "Stormcutter", Description: "Four wings."},
		{ID: "skrill", Name: "Skrill", Description: "Lightning dragon."},
	}
	got := Apply(items, Empty().Merge(Patch{Term: String("storm")}))
	assert.Equal(t, []string{"stormcutter"}, ids(got))

	// Description hits count too.
	got = Apply(fixture(), Empty().Merge(Patch{Term: String("storm")}))
	assert.Equal(t, []string{"stormcutter", "skrill"}, ids(got))
}

func TestApply_CategoryExact(t *testing.T) {
	got := Apply(fixture(), Empty().Merge(Patch{Category: String("Strike")}))
	assert.Equal(t, []string{"skrill", "toothless-1"}, ids(got))

	got = Apply(fixture(), Empty().Merge(Patch{Category: String("strike")}))
	assert.Empty(t, got)
}

func TestApply_AbilitiesAreORed(t *testing.T) {
	c := Empty().Merge(Patch{Abilities: Strings("Lightning", "Lava Blast")})
	got := Apply(fixture(), c)
	assert.Equal(t, []string{"skrill", "gronckle"}, ids(got))
}

func TestApply_CriteriaAreANDed(t *testing.T) {
	c := Empty().Merge(Patch{
		Category:  String("Sharp"),
		Abilities: Strings("Flight"),
		Rarity:    String("rare"),
	})
	got := Apply(fixture(), c)
	assert.Equal(t, []string{"stormcutter"}, ids(got))
}

func TestApply_EmptyCatalog(t *testing.T) {
	assert.Empty(t, Apply(nil, Empty()))
	assert.Empty(t, Apply(nil, Empty().Merge(Patch{Term: String("x")})))
}

func TestApply_DoesNotAliasInput(t *testing.T) {
	items := fixture()
	got := Apply(items, Empty())
	got[0].Abilities[0] = "changed"
	assert.Equal(t, "Spine Shot", items[0].Abilities[0])
}

func TestMerge_LeavesUnspecifiedFields(t *testing.T) {
	c := Empty().Merge(Patch{Term: String("storm"), Rarity: String("rare")})
	c = c.Merge(Patch{Category: String("Sharp")})
	assert.Equal(t, "storm", c.Term)
	assert.Equal(t, "rare", c.Rarity)
	assert.Equal(t, "Sharp", c.Category)

	c = c.Merge(Patch{Category: String("")})
	assert.Equal(t, All, c.Category, "blank category normalises to all")
}

func TestMerge_AbilitiesDeduplicated(t *testing.T) {
	c := Empty().Merge(Patch{Abilities: Strings("Flight", "Flight", "Fire")})
	assert.Equal(t, []string{"Flight", "Fire"}, c.Abilities)

	c = c.Merge(Patch{Abilities: Strings()})
	assert.Empty(t, c.Abilities)
	assert.False(t, c.Active())
}

func TestCriteria_ToggleAbility(t *testing.T) {
	c := Empty()
	c = c.Merge(Patch{Abilities: Strings(c.ToggleAbility("Flight")...)})
	assert.True(t, c.HasAbility("Flight"))
	c = c.Merge(Patch{Abilities: Strings(c.ToggleAbility("Flight")...)})
	assert.False(t, c.HasAbility("Flight"))
}

func TestCriteria_EqualTreatsAbilitiesAsSet(t *testing.T) {
	a := Empty().Merge(Patch{Abilities: Strings("Fire", "Ice")})
	b := Empty().Merge(Patch{Abilities: Strings("Ice", "Fire")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Empty()))
}

func TestFacets(t *testing.T) {
	items := fixture()
	assert.Equal(t, []string{"Sharp", "Strike", "Boulder"}, Types(items))
	assert.Equal(t, []string{"Spine Shot", "Flight", "Four Wings", "Lightning", "Plasma Blast", "Echolocation", "Lava Blast"}, Abilities(items))
}

func TestNext(t *testing.T) {
	values := []string{"a", "b"}
	assert.Equal(t, "a", Next(All, values))
	assert.Equal(t, "b", Next("a", values))
	assert.Equal(t, All, Next("b", values))
	assert.Equal(t, All, Next("zzz", values))
	assert.Equal(t, All, Next(All, nil))
}

// randomCriteria draws criteria from the vocabulary of the fixture so that
// matches are not vanishingly rare.
func randomCriteria(r *rand.Rand) Criteria {
	terms := []string{"", "", "storm", "a", "NIGHT", "rock", "zzz"}
	types := []string{All, All, "Sharp", "Strike", "Boulder", "Mystery"}
	rarities := []string{All, All, "common", "rare", "legendary"}
	abilities := Abilities(fixture())

	p := Patch{
		Term:     String(terms[r.IntN(len(terms))]),
		Category: String(types[r.IntN(len(types))]),
		Rarity:   String(rarities[r.IntN(len(rarities))]),
	}
	var picked []string
	for _, a := range abilities {
		if r.IntN(4) == 0 {
			picked = append(picked, a)
		}
	}
	p.Abilities = Strings(picked...)
	return Empty().Merge(p)
}

func randomCatalog(r *rand.Rand) []catalog.Item {
	base := fixture()
	n := r.IntN(len(base) + 1)
	out := make([]catalog.Item, 0, n)
	for _, i := range r.Perm(len(base))[:n] {
		out = append(out, base[i])
	}
	return out
}

func isSubsequence(sub, full []catalog.Item) bool {
	j := 0
	for _, it := range full {
		if j < len(sub) && sub[j].ID == it.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestApply_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))
	for i := 0; i < 500; i++ {
		items := randomCatalog(r)
		c := randomCriteria(r)
		name := fmt.Sprintf("case_%d", i)

		got := Apply(items, c)
		require.True(t, isSubsequence(got, items), "%s: result is not a subsequence", name)
		require.Equal(t, got, Apply(got, c), "%s: filtering is not idempotent", name)
		require.Equal(t, got, Apply(items, c), "%s: filtering is not deterministic", name)
		for _, it := range got {
			require.True(t, Matches(it, c), "%s: %s in result but does not match", name, it.ID)
		}

		if len(items) > 0 {
			require.Equal(t, items, Apply(items, Empty()), "%s: empty criteria must be identity", name)
		}
	}
}
