// Package app is the composition root for lair.
//
// # Overview
//
// Open wires configuration, logging, the storage backend, the persistence
// adapter and the store into a Runtime that every command shares. Run adds
// the background workers and the terminal browser on top.
//
// # Startup order
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load()         file, then LAIR_* env
//	       ├─────> newLogger()           slog text handler on log_file
//	       ├─────> OpenBackend()         file | redis | sqlite | memory
//	       ├─────> adapter.Load()        snapshot or defaults
//	       ├─────> state.New(restored)   rehydrated before any dispatch
//	       └─────> store.Subscribe()     adapter observes durable changes
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> LoadCatalog()   goroutine: SetLoading, fetch, LoadCatalog or SetError
//	       ├─────> StartTicker()   goroutine: RecordTimeSpent every tick
//	       └─────> ui.Run()        blocks until quit
//
// Because the snapshot is folded into the initial state, nothing the
// browser or loader dispatches can be overwritten by a late rehydration.
//
// # Error Handling
//
// Fatal errors (returned from Open or Run):
//   - Malformed config file or environment
//   - Storage backend that cannot be opened (for example Redis unreachable)
//   - Log file that cannot be created
//
// Recoverable errors (logged, surfaced through the store):
//   - Catalog fetch failures, retried with backoff for remote catalogs and
//     then reported with SetError
//   - Snapshot write failures, logged by the adapter; the store stays
//     authoritative
//
// # Shutdown
//
// Run closes the Runtime on exit: the store stops accepting dispatches, the
// adapter drains its last pending write and the backend is released.
package app
