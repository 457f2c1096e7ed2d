package state

import (
	"log/slog"
	"sync"

	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/filter"
)

// Listener observes committed transitions. Listeners run on the dispatching
// goroutine after the state lock is released and must not call Dispatch.
type Listener func(prev, next State)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for rejected dispatches.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the current State. All writes go through Dispatch; reads go
// through the selector methods.
type Store struct {
	dispatchMu sync.Mutex // serialises transition + notification
	mu         sync.RWMutex
	state      State
	version    uint64
	closed     bool

	listeners map[int]Listener
	order     []int
	nextID    int

	logger *slog.Logger
}

// New creates a store seeded with initial. Restored data should already be
// part of initial so no default ever overwrites it. Blank category and
// rarity criteria are read as "all", so a zero State is usable.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:     initial,
		listeners: make(map[int]Listener),
		logger:    slog.Default(),
	}
	s.state.Criteria = s.state.Criteria.Normalized()
	if len(s.state.Catalog) > 0 {
		if s.state.index == nil {
			s.state.index = buildIndex(s.state.Catalog)
		}
		s.state.Filtered = filter.Apply(s.state.Catalog, s.state.Criteria)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies a synchronously. Actions dispatched in sequence from one
// goroutine are applied in that order; nothing is reordered or coalesced.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		s.logger.Error("dispatch rejected: nil action")
		return
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("dispatch after close ignored", "action", a.Name())
		return
	}
	prev := s.state
	next := Transition(prev, a)
	s.state = next
	s.version++
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(prev, next)
	}
}

// Subscribe registers fn for every committed transition and returns a
// function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Close disposes the store: listeners are dropped and later dispatches are
// ignored. Selectors keep returning the final state.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[int]Listener)
	s.order = nil
}

func (s *Store) snapshotListeners() []Listener {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id])
	}
	return out
}

// Select runs sel against the current state under the read lock.
func Select[T any](s *Store, sel func(State) T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sel(s.state)
}

// Version increases by one on every committed dispatch.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// FilteredView returns the catalog items matching the current criteria.
func (s *Store) FilteredView() []catalog.Item { return Select(s, FilteredView) }

// Catalog returns the full loaded catalog.
func (s *Store) Catalog() []catalog.Item { return Select(s, Catalog) }

// Item looks up a catalog item by ID.
func (s *Store) Item(id string) (catalog.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.item(id)
}

// IsFavorite reports whether id is in the favorites set.
func (s *Store) IsFavorite(id string) bool {
	return Select(s, func(st State) bool { return IsFavorite(st, id) })
}

// FavoriteCount returns the size of the favorites set.
func (s *Store) FavoriteCount() int { return Select(s, FavoriteCount) }

// FavoriteIDs returns the favorites in the order they were added.
func (s *Store) FavoriteIDs() []string { return Select(s, FavoriteIDs) }

// Favorites returns the catalog items that are favorites, in catalog order.
func (s *Store) Favorites() []catalog.Item { return Select(s, FavoriteItems) }

// Theme returns the theme preference.
func (s *Store) Theme() Theme { return Select(s, CurrentTheme) }

// Session returns the ephemeral session flags.
func (s *Store) Session() Session { return Select(s, CurrentSession) }

// Preferences returns the user preferences.
func (s *Store) Preferences() Preferences { return Select(s, CurrentPreferences) }

// Criteria returns the active filter criteria.
func (s *Store) Criteria() filter.Criteria { return Select(s, CurrentCriteria) }

// Stats returns the usage counters.
func (s *Store) Stats() Stats { return Select(s, CurrentStats) }

// Persisted returns the durable slice of the current state.
func (s *Store) Persisted() Persisted { return Select(s, State.Persisted) }
