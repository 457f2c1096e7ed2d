package state

import (
	"slices"

	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/favorites"
	"github.com/five82/lair/internal/filter"
)

// Theme is the user's colour scheme choice.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeSystem:
		return true
	}
	return false
}

// Next returns the theme after t in the cycle dark, light, system.
func (t Theme) Next() Theme {
	switch t {
	case ThemeDark:
		return ThemeLight
	case ThemeLight:
		return ThemeSystem
	default:
		return ThemeDark
	}
}

// Preferences are the durable user settings.
type Preferences struct {
	Theme             Theme
	AnimationsEnabled bool
	ParticlesEnabled  bool
	SoundEnabled      bool
}

// DefaultPreferences returns the settings used when nothing was restored.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:             ThemeSystem,
		AnimationsEnabled: true,
		ParticlesEnabled:  true,
		SoundEnabled:      false,
	}
}

// PreferencesPatch is a partial preferences update; nil fields are left alone.
type PreferencesPatch struct {
	AnimationsEnabled *bool
	ParticlesEnabled  *bool
	SoundEnabled      *bool
}

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }

func (p Preferences) merge(patch PreferencesPatch) Preferences {
	if patch.AnimationsEnabled != nil {
		p.AnimationsEnabled = *patch.AnimationsEnabled
	}
	if patch.ParticlesEnabled != nil {
		p.ParticlesEnabled = *patch.ParticlesEnabled
	}
	if patch.SoundEnabled != nil {
		p.SoundEnabled = *patch.SoundEnabled
	}
	return p
}

// Stats are durable usage counters. The favorite count is not stored here;
// it is always the size of the favorites set.
type Stats struct {
	DragonsViewed int
	TimeSpent     int // seconds
}

// Session is ephemeral UI state. It is never persisted.
type Session struct {
	Loading        bool
	Error          *string
	CurrentSection string
	ScrollProgress float64
	SidebarOpen    bool
}

// DefaultSection is the section a fresh session starts on.
const DefaultSection = "catalog"

// DefaultSession returns the state of a freshly started session.
func DefaultSession() Session {
	return Session{CurrentSection: DefaultSection}
}

// ErrorText returns the current error message or "" when there is none.
func (s Session) ErrorText() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

func (s Session) clone() Session {
	if s.Error != nil {
		msg := *s.Error
		s.Error = &msg
	}
	return s
}

// Persisted is the whitelisted slice of state that survives restarts.
type Persisted struct {
	Theme       Theme
	Favorites   []string
	Preferences Preferences // Theme inside is ignored; use the top-level field
	Stats       Stats
}

// Equal compares two persisted slices by value. Favorites compare as sets.
func (p Persisted) Equal(o Persisted) bool {
	if p.Theme != o.Theme || p.Stats != o.Stats {
		return false
	}
	a, b := p.Preferences, o.Preferences
	a.Theme, b.Theme = "", ""
	if a != b {
		return false
	}
	return favorites.FromIDs(p.Favorites).Equal(favorites.FromIDs(o.Favorites))
}

// State is the complete store state. Values are treated as immutable:
// Transition builds a new State and never writes through shared slices.
type State struct {
	Catalog     []catalog.Item
	Filtered    []catalog.Item
	Criteria    filter.Criteria
	Favorites   favorites.Set
	Preferences Preferences
	Stats       Stats
	Session     Session

	index map[string]int // catalog position by ID
}

// Default returns the boot state before anything is restored or loaded.
func Default() State {
	return State{
		Criteria:    filter.Empty(),
		Preferences: DefaultPreferences(),
		Session:     DefaultSession(),
	}
}

// Persisted projects the durable slice out of s.
func (s State) Persisted() Persisted {
	return Persisted{
		Theme:       s.Preferences.Theme,
		Favorites:   s.Favorites.IDs(),
		Preferences: s.Preferences,
		Stats:       s.Stats,
	}
}

// FavoriteCount is the number of favorited IDs.
func (s State) FavoriteCount() int {
	return s.Favorites.Len()
}

func (s State) hasItem(id string) bool {
	if s.index != nil {
		_, ok := s.index[id]
		return ok
	}
	return slices.ContainsFunc(s.Catalog, func(it catalog.Item) bool { return it.ID == id })
}

func (s State) item(id string) (catalog.Item, bool) {
	if s.index != nil {
		if i, ok := s.index[id]; ok {
			return s.Catalog[i].Clone(), true
		}
		return catalog.Item{}, false
	}
	for _, it := range s.Catalog {
		if it.ID == id {
			return it.Clone(), true
		}
	}
	return catalog.Item{}, false
}

func buildIndex(items []catalog.Item) map[string]int {
	if len(items) == 0 {
		return nil
	}
	index := make(map[string]int, len(items))
	for i, it := range items {
		if _, dup := index[it.ID]; dup {
			continue
		}
		index[it.ID] = i
	}
	return index
}
