package state

import (
	"math"

	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/favorites"
	"github.com/five82/lair/internal/filter"
)

// Action is a request to move the store to a new state.
//
// The set of actions is closed: reduce is unexported, so only types in this
// package can satisfy the interface, and a new action type does not compile
// as an Action until its reduction is written.
type Action interface {
	// Name identifies the action in logs.
	Name() string
	reduce(State) State
}

// SetTheme replaces the theme preference. Unknown themes are ignored.
type SetTheme struct{ Theme Theme }

// ToggleSidebar flips the sidebar flag.
type ToggleSidebar struct{}

// LoadCatalog replaces the catalog and re-filters it with the current
// criteria. Filters survive catalog reloads.
type LoadCatalog struct{ Items []catalog.Item }

// UpdateFilter merges a partial criteria update and re-filters.
type UpdateFilter struct{ Patch filter.Patch }

// ClearFilters resets the criteria to filter.Empty and re-filters.
type ClearFilters struct{}

// ToggleFavorite adds or removes an ID from the favorites set. The ID does
// not have to be in the catalog.
type ToggleFavorite struct{ ID string }

// SetLoading sets the session loading flag.
type SetLoading struct{ Loading bool }

// SetError sets or, with a nil Message, clears the session error.
type SetError struct{ Message *string }

// SetCurrentSection records which section is visible.
type SetCurrentSection struct{ Section string }

// SetScrollProgress records the scroll ratio, clamped to [0, 1].
type SetScrollProgress struct{ Ratio float64 }

// UpdatePreferences merges a partial preferences update.
type UpdatePreferences struct{ Patch PreferencesPatch }

// RecordItemViewed bumps the viewed counter when ID is in the catalog.
type RecordItemViewed struct{ ID string }

// RecordTimeSpent adds Seconds to the time-spent counter. Non-positive
// values are ignored.
type RecordTimeSpent struct{ Seconds int }

// Restore applies a previously persisted slice. It is dispatched once at
// boot, before anything else touches the store.
type Restore struct{ Persisted Persisted }

func (SetTheme) Name() string          { return "set_theme" }
func (ToggleSidebar) Name() string     { return "toggle_sidebar" }
func (LoadCatalog) Name() string       { return "load_catalog" }
func (UpdateFilter) Name() string      { return "update_filter" }
func (ClearFilters) Name() string      { return "clear_filters" }
func (ToggleFavorite) Name() string    { return "toggle_favorite" }
func (SetLoading) Name() string        { return "set_loading" }
func (SetError) Name() string          { return "set_error" }
func (SetCurrentSection) Name() string { return "set_current_section" }
func (SetScrollProgress) Name() string { return "set_scroll_progress" }
func (UpdatePreferences) Name() string { return "update_preferences" }
func (RecordItemViewed) Name() string  { return "record_item_viewed" }
func (RecordTimeSpent) Name() string   { return "record_time_spent" }
func (Restore) Name() string           { return "restore" }

// ErrorMessage is a convenience for building SetError actions.
func ErrorMessage(msg string) SetError { return SetError{Message: &msg} }

// ClearError clears the session error.
func ClearError() SetError { return SetError{} }

func (a SetTheme) reduce(s State) State {
	if !a.Theme.Valid() {
		return s
	}
	s.Preferences.Theme = a.Theme
	return s
}

func (ToggleSidebar) reduce(s State) State {
	s.Session.SidebarOpen = !s.Session.SidebarOpen
	return s
}

func (a LoadCatalog) reduce(s State) State {
	s.Catalog = catalog.CloneAll(a.Items)
	s.index = buildIndex(s.Catalog)
	s.Filtered = filter.Apply(s.Catalog, s.Criteria)
	return s
}

func (a UpdateFilter) reduce(s State) State {
	s.Criteria = s.Criteria.Merge(a.Patch)
	s.Filtered = filter.Apply(s.Catalog, s.Criteria)
	return s
}

func (ClearFilters) reduce(s State) State {
	s.Criteria = filter.Empty()
	s.Filtered = filter.Apply(s.Catalog, s.Criteria)
	return s
}

func (a ToggleFavorite) reduce(s State) State {
	s.Favorites = s.Favorites.Toggle(a.ID)
	return s
}

func (a SetLoading) reduce(s State) State {
	s.Session.Loading = a.Loading
	return s
}

func (a SetError) reduce(s State) State {
	if a.Message == nil {
		s.Session.Error = nil
		return s
	}
	msg := *a.Message
	s.Session.Error = &msg
	return s
}

func (a SetCurrentSection) reduce(s State) State {
	s.Session.CurrentSection = a.Section
	return s
}

func (a SetScrollProgress) reduce(s State) State {
	s.Session.ScrollProgress = clampRatio(a.Ratio)
	return s
}

func (a UpdatePreferences) reduce(s State) State {
	s.Preferences = s.Preferences.merge(a.Patch)
	return s
}

func (a RecordItemViewed) reduce(s State) State {
	if !s.hasItem(a.ID) {
		return s
	}
	s.Stats.DragonsViewed++
	return s
}

func (a RecordTimeSpent) reduce(s State) State {
	if a.Seconds <= 0 {
		return s
	}
	s.Stats.TimeSpent += a.Seconds
	return s
}

func (a Restore) reduce(s State) State {
	p := a.Persisted
	if p.Theme.Valid() {
		s.Preferences.Theme = p.Theme
	}
	s.Preferences.AnimationsEnabled = p.Preferences.AnimationsEnabled
	s.Preferences.ParticlesEnabled = p.Preferences.ParticlesEnabled
	s.Preferences.SoundEnabled = p.Preferences.SoundEnabled
	s.Favorites = favorites.FromIDs(p.Favorites)
	s.Stats = Stats{
		DragonsViewed: max(p.Stats.DragonsViewed, 0),
		TimeSpent:     max(p.Stats.TimeSpent, 0),
	}
	return s
}

func clampRatio(r float64) float64 {
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// Transition computes the state that follows s after a. It is pure: s is
// not modified and the result shares no mutable data the action wrote.
// A nil action returns s unchanged.
func Transition(s State, a Action) State {
	if a == nil {
		return s
	}
	s.Session = s.Session.clone()
	s.Criteria = s.Criteria.Normalized()
	return a.reduce(s)
}
