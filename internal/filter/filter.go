// Package filter is the single implementation of the catalog search
// predicate. The store calls Apply whenever the catalog or the criteria
// change; presentation code reads the result instead of filtering itself.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/lair/internal/catalog"
)

// All is the wildcard value for the category and rarity criteria.
const All = "all"

// Criteria is the complete set of active constraints. It is always total:
// the zero value is not valid, use Empty.
type Criteria struct {
	Term      string
	Category  string
	Rarity    string
	Abilities []string // unique, selection order; empty means no constraint
}

// Empty returns the canonical cleared criteria.
func Empty() Criteria {
	return Criteria{Category: All, Rarity: All}
}

// Normalized returns c with blank category and rarity read as All, so a
// zero Criteria behaves like Empty.
func (c Criteria) Normalized() Criteria {
	c.Category = normaliseWildcard(c.Category)
	c.Rarity = normaliseWildcard(c.Rarity)
	return c
}

// Active reports whether any criterion narrows the catalog.
func (c Criteria) Active() bool {
	return c.Term != "" || c.Category != All || c.Rarity != All || len(c.Abilities) > 0
}

// Clone returns a copy that shares no backing array with c.
func (c Criteria) Clone() Criteria {
	dup := c
	if c.Abilities != nil {
		dup.Abilities = append([]string(nil), c.Abilities...)
	}
	return dup
}

// Equal compares criteria by value. Abilities compare as sets.
func (c Criteria) Equal(o Criteria) bool {
	if c.Term != o.Term || c.Category != o.Category || c.Rarity != o.Rarity {
		return false
	}
	if len(c.Abilities) != len(o.Abilities) {
		return false
	}
	set := make(map[string]struct{}, len(c.Abilities))
	for _, a := range c.Abilities {
		set[a] = struct{}{}
	}
	for _, a := range o.Abilities {
		if _, ok := set[a]; !ok {
			return false
		}
	}
	return true
}

// HasAbility reports whether ability is part of the selection.
func (c Criteria) HasAbility(ability string) bool {
	for _, a := range c.Abilities {
		if a == ability {
			return true
		}
	}
	return false
}

// Patch is a partial update. Nil fields leave the current value unchanged.
type Patch struct {
	Term      *string
	Category  *string
	Rarity    *string
	Abilities *[]string
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Strings returns a pointer to a slice of values, for building patches.
// Strings() with no arguments clears the ability selection.
func Strings(values ...string) *[]string {
	if values == nil {
		values = []string{}
	}
	return &values
}

// Merge applies p on top of c and returns the result. Empty category or
// rarity values normalise to All so the result stays total.
func (c Criteria) Merge(p Patch) Criteria {
	out := c.Clone()
	if p.Term != nil {
		out.Term = *p.Term
	}
	if p.Category != nil {
		out.Category = normaliseWildcard(*p.Category)
	}
	if p.Rarity != nil {
		out.Rarity = normaliseWildcard(*p.Rarity)
	}
	if p.Abilities != nil {
		out.Abilities = uniqueStrings(*p.Abilities)
	}
	return out
}

// ToggleAbility returns the ability list with ability added or removed,
// suitable for a Patch.
func (c Criteria) ToggleAbility(ability string) []string {
	out := make([]string, 0, len(c.Abilities)+1)
	found := false
	for _, a := range c.Abilities {
		if a == ability {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		out = append(out, ability)
	}
	return out
}

// Apply returns the items matching every criterion, in catalog order. The
// input is not modified and the result never aliases it.
func Apply(items []catalog.Item, c Criteria) []catalog.Item {
	if len(items) == 0 {
		return nil
	}
	m := newMatcher(c)
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if m.match(it) {
			out = append(out, it.Clone())
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Matches reports whether a single item satisfies c.
func Matches(it catalog.Item, c Criteria) bool {
	return newMatcher(c).match(it)
}

type matcher struct {
	c      Criteria
	folder cases.Caser
	term   string
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, folder: cases.Fold()}
	if c.Term != "" {
		m.term = m.folder.String(c.Term)
	}
	return m
}

func (m *matcher) match(it catalog.Item) bool {
	return m.matchTerm(it) && m.matchCategory(it) && m.matchRarity(it) && m.matchAbilities(it)
}

func (m *matcher) matchTerm(it catalog.Item) bool {
	if m.c.Term == "" {
		return true
	}
	return strings.Contains(m.folder.String(it.Name), m.term) ||
		strings.Contains(m.folder.String(it.Description), m.term)
}

func (m *matcher) matchCategory(it catalog.Item) bool {
	return m.c.Category == All || m.c.Category == it.Type
}

func (m *matcher) matchRarity(it catalog.Item) bool {
	return m.c.Rarity == All || m.c.Rarity == string(it.Rarity)
}

func (m *matcher) matchAbilities(it catalog.Item) bool {
	if len(m.c.Abilities) == 0 {
		return true
	}
	for _, want := range m.c.Abilities {
		if it.HasAbility(want) {
			return true
		}
	}
	return false
}

func normaliseWildcard(v string) string {
	if strings.TrimSpace(v) == "" {
		return All
	}
	return v
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
