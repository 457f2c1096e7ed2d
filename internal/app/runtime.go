package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/lair/internal/config"
	"github.com/five82/lair/internal/persist"
	"github.com/five82/lair/internal/persist/filestore"
	"github.com/five82/lair/internal/persist/redisstore"
	"github.com/five82/lair/internal/persist/sqlitestore"
	"github.com/five82/lair/internal/state"
)

// Options configure the lair application.
type Options struct {
	ConfigPath string // empty uses ~/.config/lair/config.toml
	Catalog    string // overrides the configured catalog reference
	Storage    string // overrides the configured storage backend

	// LogWriter replaces the configured log file. Used by tests.
	LogWriter io.Writer
}

// Runtime holds the wired-up collaborators shared by every command.
type Runtime struct {
	Config  config.Config
	Logger  *slog.Logger
	Backend persist.Backend
	Adapter *persist.Adapter
	Store   *state.Store

	// Restored reports whether a stored snapshot was found.
	Restored bool

	unsubscribe func()
	logCloser   io.Closer
}

// Open loads configuration, opens the storage backend, rehydrates the
// persisted snapshot and builds the store around it. The adapter is
// subscribed before Open returns, so every later durable change is written.
func Open(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Catalog != "" {
		cfg.Catalog = opts.Catalog
	}
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}

	logger, logCloser, err := newLogger(cfg, opts.LogWriter)
	if err != nil {
		return nil, err
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	logger.Debug("storage opened", "backend", cfg.Storage)

	adapter := persist.NewAdapter(backend, persist.WithLogger(logger))
	snap, restored := adapter.Load(ctx)

	initial := state.Transition(state.Default(), state.Restore{Persisted: snap.ToState()})
	store := state.New(initial, state.WithLogger(logger))

	return &Runtime{
		Config:      cfg,
		Logger:      logger,
		Backend:     backend,
		Adapter:     adapter,
		Store:       store,
		Restored:    restored,
		unsubscribe: store.Subscribe(adapter.Observe),
		logCloser:   logCloser,
	}, nil
}

// Close stops the store, drains pending snapshot writes and releases the
// backend and log file.
func (r *Runtime) Close(ctx context.Context) error {
	r.unsubscribe()
	r.Store.Close()
	errs := []error{
		r.Adapter.Close(ctx),
		r.Backend.Close(),
		r.logCloser.Close(),
	}
	return errors.Join(errs...)
}

// OpenBackend opens the storage backend named by cfg.Storage.
func OpenBackend(ctx context.Context, cfg config.Config) (persist.Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return persist.NewMemory(), nil
	case config.StorageRedis:
		store, err := redisstore.New(ctx, redisstore.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return store, nil
	case config.StorageSQLite:
		store, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return store, nil
	case config.StorageFile, "":
		store, err := filestore.New(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the text logger. The TUI owns the terminal, so logs go
// to the configured file unless w is given.
func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	if w == nil {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()})
	return slog.New(handler).With("app", "lair"), closer, nil
}
