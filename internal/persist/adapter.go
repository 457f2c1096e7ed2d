package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/lair/internal/state"
)

const defaultWriteTimeout = 2 * time.Second

// Adapter reads the snapshot at startup and writes it back whenever the
// durable slice of state changes. Writes happen on a background goroutine;
// when several changes queue up only the latest is written.
type Adapter struct {
	backend Backend
	key     string
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending *Snapshot
	closed  bool

	wake  chan struct{}
	flush chan chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// AdapterOption customises an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for load and write diagnostics.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithWriteTimeout bounds each background write.
func WithWriteTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAdapter starts the background writer. Call Close to drain and stop it.
func NewAdapter(backend Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		backend: backend,
		key:     Key,
		logger:  slog.New(slog.DiscardHandler),
		timeout: defaultWriteTimeout,
		wake:    make(chan struct{}, 1),
		flush:   make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.run()
	return a
}

// Key returns the storage key in use.
func (a *Adapter) Key() string { return a.key }

// Load reads the stored snapshot. The boolean reports whether anything was
// stored. Read and decode problems are logged and yield defaults.
func (a *Adapter) Load(ctx context.Context) (Snapshot, bool) {
	raw, err := a.backend.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		a.logger.Debug("no stored snapshot", "key", a.key)
		return Default(), false
	}
	if err != nil {
		a.logger.Warn("read snapshot failed; using defaults", "key", a.key, "error", err)
		return Default(), false
	}
	snap, recovered := Decode(raw)
	if len(recovered) > 0 {
		a.logger.Debug("stored snapshot partially unusable", "key", a.key, "fields", recovered)
	}
	return snap, true
}

// Save writes snap synchronously.
func (a *Adapter) Save(ctx context.Context, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := a.backend.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("write snapshot %q: %w", a.key, err)
	}
	return nil
}

// Clear removes the stored snapshot.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.backend.Delete(ctx, a.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete snapshot %q: %w", a.key, err)
	}
	return nil
}

// Observe is a store listener. It queues a write only when the durable
// slice differs between prev and next.
func (a *Adapter) Observe(prev, next state.State) {
	p := next.Persisted()
	if prev.Persisted().Equal(p) {
		return
	}
	a.enqueue(FromState(p))
}

func (a *Adapter) enqueue(snap Snapshot) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.pending = &snap
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Adapter) take() (Snapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return Snapshot{}, false
	}
	snap := *a.pending
	a.pending = nil
	return snap, true
}

// Flush blocks until every queued write has been attempted.
func (a *Adapter) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case a.flush <- reply:
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes anything still queued and stops the writer. Later Observe
// calls are ignored.
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.stop)
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Adapter) run() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.writePending()
		case reply := <-a.flush:
			a.writePending()
			close(reply)
		case <-a.stop:
			a.writePending()
			return
		}
	}
}

func (a *Adapter) writePending() {
	snap, ok := a.take()
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	if err := a.Save(ctx, snap); err != nil {
		a.logger.Warn("persist snapshot failed", "key", a.key, "error", err)
		return
	}
	a.logger.Debug("snapshot persisted",
		"key", a.key,
		"favorites", len(snap.Favorites),
		"theme", snap.Theme,
	)
}
