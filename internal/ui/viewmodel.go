package ui

import (
	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/filter"
	"github.com/five82/lair/internal/state"
)

// viewModel is the slice of store state one frame renders. It is built in a
// single Select so every panel sees the same version.
type viewModel struct {
	items       []catalog.Item
	favorites   []catalog.Item
	favoriteIDs map[string]struct{}
	catalogSize int

	types     []string
	abilities []string
	rarities  map[catalog.Rarity]int

	criteria filter.Criteria
	prefs    state.Preferences
	stats    state.Stats
	session  state.Session
}

func buildView(s state.State) viewModel {
	v := viewModel{
		items:       state.FilteredView(s),
		favorites:   state.FavoriteItems(s),
		favoriteIDs: make(map[string]struct{}),
		catalogSize: len(s.Catalog),
		types:       filter.Types(s.Catalog),
		abilities:   filter.Abilities(s.Catalog),
		rarities:    make(map[catalog.Rarity]int),
		criteria:    state.CurrentCriteria(s),
		prefs:       state.CurrentPreferences(s),
		stats:       state.CurrentStats(s),
		session:     state.CurrentSession(s),
	}
	for _, id := range state.FavoriteIDs(s) {
		v.favoriteIDs[id] = struct{}{}
	}
	for _, it := range s.Catalog {
		v.rarities[it.Rarity]++
	}
	return v
}

func (v viewModel) isFavorite(id string) bool {
	_, ok := v.favoriteIDs[id]
	return ok
}

func (v viewModel) favoriteCount() int {
	return len(v.favoriteIDs)
}
