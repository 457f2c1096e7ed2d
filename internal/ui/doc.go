// Package ui provides the terminal browser for the dragon catalog.
//
// # Architecture
//
// The UI is a Bubble Tea program over a *state.Store. It never keeps its
// own copy of catalog, filter or preference state: every key press that
// changes something dispatches an action, and each frame is rendered from
// a viewModel projected out of the store in one Select.
//
// Changes made elsewhere (the catalog loader, the time-spent ticker) reach
// the program through a store subscription. The listener does a
// non-blocking send on a one-slot channel so a dispatching goroutine never
// waits on the UI, and bursts collapse into a single redraw.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling and Run
//   - sync.go: store subscription bridge and timer commands
//   - viewmodel.go: per-frame projection of store state
//   - catalog.go: list, detail and sidebar panes
//   - header.go: title bar, command bar and status line
//   - stats.go: usage and catalog statistics section
//   - abilities.go: ability filter picker modal
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go: dark and light palettes
//
// # Sections
//
// Tab cycles Catalog, Favorites and Stats. The section is session state in
// the store, so it resets on restart while favorites and preferences do not.
//
// # Search
//
// Typing in the search box schedules a debounced term update; only the most
// recent keystroke's timer applies. Enter applies immediately and Esc
// restores the term the store already holds.
package ui
