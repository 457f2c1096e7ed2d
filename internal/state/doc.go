// Package state is the single source of truth for the dragon catalog
// browser.
//
// # Overview
//
// The package holds the loaded catalog, the derived filtered view, the
// filter criteria, the favorites set, user preferences, usage stats and
// ephemeral session flags. It has two layers:
//
//   - Transition: a pure reducer, State × Action → State
//   - Store: the mutable holder that applies actions and exposes selectors
//
// # Data Flow
//
//	UI key press / loader / ticker
//	        │
//	        ▼
//	store.Dispatch(action)
//	        │   (dispatch lock)
//	        ├─> Transition(state, action)   pure, may call filter.Apply
//	        ├─> state = next, version++
//	        └─> listeners(prev, next)        e.g. persist.Adapter.Observe
//	                                          (enqueues an async write)
//	UI ──> store.FilteredView(), store.IsFavorite(id), store.Theme() ...
//
// # Actions
//
// Actions are small structs implementing the sealed Action interface.
// The interface carries an unexported reduce method, so the set is closed
// to this package and a new action type is a build error until its
// reduction exists. There is no string-tag switch and no default branch
// that could silently swallow an unknown action.
//
// Actions that name an ID (ToggleFavorite, RecordItemViewed) never fail
// because the ID is unknown: favorites are plain set membership and a
// view of a missing item is a no-op.
//
// # Derived State
//
// State.Filtered is recomputed inside the same transition whenever the
// catalog or the criteria change, so it is never stale. filter.Apply is
// the only implementation of the predicate; presentation code reads
// FilteredView instead of filtering on its own.
//
// The favorite count is never stored. It is always the favorites set's
// size.
//
// # Concurrency Model
//
// Dispatch holds a dispatch mutex for the transition and the listener
// calls, so concurrent dispatchers (UI goroutine, catalog loader, time
// ticker) are serialised and listeners observe transitions in commit
// order. The state itself sits behind a sync.RWMutex; selectors take the
// read lock and return copies.
//
// Listeners must not dispatch. Anything that needs to react with a new
// action has to hand off to another goroutine.
//
// # Lifecycle
//
//	st := state.New(initial, state.WithLogger(logger))
//	unsubscribe := st.Subscribe(adapter.Observe)
//	st.Dispatch(state.LoadCatalog{Items: items})
//	...
//	unsubscribe()
//	st.Close()
//
// Restored data belongs in initial (see Restore), so a default never
// overwrites it after the first dispatch.
package state
