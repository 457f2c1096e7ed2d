// Package catalog defines the dragon records held by the store.
package catalog

import (
	"fmt"
	"strings"
)

// Rarity classifies how uncommon a dragon is.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every rarity in ascending order.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityLegendary}
}

// Valid reports whether r is one of the known rarities.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityLegendary:
		return true
	}
	return false
}

// Stats holds the named numeric attributes of a dragon. Values are
// conventionally 0-100 but nothing enforces that.
type Stats struct {
	Speed        int `json:"speed" toml:"speed"`
	Strength     int `json:"strength" toml:"strength"`
	Intelligence int `json:"intelligence" toml:"intelligence"`
	Stealth      int `json:"stealth" toml:"stealth"`
}

// Item is one creature record. Items are treated as immutable once loaded.
type Item struct {
	ID          string   `json:"id" toml:"id"`
	Name        string   `json:"name" toml:"name"`
	Type        string   `json:"type" toml:"type"`
	Rarity      Rarity   `json:"rarity" toml:"rarity"`
	Abilities   []string `json:"abilities" toml:"abilities"`
	Stats       Stats    `json:"stats" toml:"stats"`
	Image       string   `json:"image" toml:"image"`
	Description string   `json:"description" toml:"description"`
}

// HasAbility reports whether the item lists ability.
func (it Item) HasAbility(ability string) bool {
	for _, a := range it.Abilities {
		if a == ability {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing arrays with it.
func (it Item) Clone() Item {
	dup := it
	if it.Abilities != nil {
		dup.Abilities = append([]string(nil), it.Abilities...)
	}
	return dup
}

// CloneAll copies a slice of items. A nil or empty input yields nil.
func CloneAll(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	for i, it := range items {
		dup[i] = it.Clone()
	}
	return dup
}

// Validate checks that every item has an ID, that IDs are unique and that
// each rarity is one of Rarities.
func Validate(items []Item) error {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return fmt.Errorf("item %d (%q): missing id", i, it.Name)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("item %d: duplicate id %q (first seen at %d)", i, id, prev)
		}
		seen[id] = i
		if !it.Rarity.Valid() {
			return fmt.Errorf("item %d (%q): unknown rarity %q", i, id, it.Rarity)
		}
	}
	return nil
}
