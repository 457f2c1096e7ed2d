package state

import (
	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/filter"
)

// Selectors are pure projections of a State. Each returns data the caller
// owns; none of them dispatch.

// FilteredView returns the catalog items matching the current criteria, in catalog order.
func FilteredView(s State) []catalog.Item { return catalog.CloneAll(s.Filtered) }

// Catalog returns every loaded item.
func Catalog(s State) []catalog.Item { return catalog.CloneAll(s.Catalog) }

// IsFavorite reports whether id is in the favorites set.
func IsFavorite(s State, id string) bool { return s.Favorites.Has(id) }

// FavoriteCount returns the size of the favorites set.
func FavoriteCount(s State) int { return s.Favorites.Len() }

// FavoriteIDs returns favorite IDs in the order they were added.
func FavoriteIDs(s State) []string { return s.Favorites.IDs() }

// FavoriteItems returns catalog entries whose IDs are favorites. Favorite
// IDs missing from the catalog are skipped.
func FavoriteItems(s State) []catalog.Item {
	var out []catalog.Item
	for _, it := range s.Catalog {
		if s.Favorites.Has(it.ID) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// CurrentTheme returns the theme preference.
func CurrentTheme(s State) Theme { return s.Preferences.Theme }

// CurrentSession returns the ephemeral session flags.
func CurrentSession(s State) Session { return s.Session.clone() }

// CurrentPreferences returns the durable user settings.
func CurrentPreferences(s State) Preferences { return s.Preferences }

// CurrentCriteria returns the active filter criteria.
func CurrentCriteria(s State) filter.Criteria { return s.Criteria.Clone() }

// CurrentStats returns the usage counters.
func CurrentStats(s State) Stats { return s.Stats }
