package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/lair/internal/catalog"
	"github.com/five82/lair/internal/source"
	"github.com/five82/lair/internal/state"
)

const (
	defaultTickInterval = time.Second
	defaultRetryBase    = 2 * time.Second
	maxBackoff          = 30 * time.Second
	catalogAttempts     = 3
)

// calculateBackoff returns the delay before the next attempt after failures
// consecutive failures: base doubled per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// catalogLoader fetches the catalog into the store, retrying transient
// failures with backoff.
type catalogLoader struct {
	store     *state.Store
	loader    source.Loader
	logger    *slog.Logger
	retryBase time.Duration
	attempts  int
}

// LoadCatalog fetches the catalog from ref and dispatches it, bracketed by
// SetLoading. A final failure is surfaced through SetError. It blocks until
// done; callers that must not wait run it in a goroutine.
func LoadCatalog(ctx context.Context, store *state.Store, ref string, logger *slog.Logger) error {
	loader, err := source.Open(ref)
	if err != nil {
		store.Dispatch(state.ErrorMessage(err.Error()))
		return err
	}
	l := catalogLoader{
		store:     store,
		loader:    loader,
		logger:    logger,
		retryBase: defaultRetryBase,
		attempts:  1,
	}
	// Only remote catalogs can recover by themselves.
	if _, remote := loader.(*source.Client); remote {
		l.attempts = catalogAttempts
	}
	return l.run(ctx)
}

func (l catalogLoader) run(ctx context.Context) error {
	l.store.Dispatch(state.SetLoading{Loading: true})
	defer l.store.Dispatch(state.SetLoading{Loading: false})

	items, err := l.fetch(ctx)
	if err != nil {
		l.store.Dispatch(state.ErrorMessage("could not load catalog: " + err.Error()))
		return err
	}
	l.store.Dispatch(state.LoadCatalog{Items: items})
	l.store.Dispatch(state.ClearError())
	l.logger.Info("catalog loaded", "dragons", len(items))
	return nil
}

func (l catalogLoader) fetch(ctx context.Context) ([]catalog.Item, error) {
	var lastErr error
	for attempt := range max(l.attempts, 1) {
		if attempt > 0 {
			delay := calculateBackoff(attempt-1, l.retryBase)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		items, err := l.loader.Load(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err
		l.logger.Warn("catalog load failed", "attempt", attempt+1, "error", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// StartTicker launches a background goroutine that credits time spent in
// the browser to the usage stats at a fixed cadence. It returns immediately.
func StartTicker(ctx context.Context, store *state.Store, interval time.Duration) {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	seconds := max(int(interval/time.Second), 1)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				store.Dispatch(state.RecordTimeSpent{Seconds: seconds})
			}
		}
	}()
}
