package app

import (
	"context"
	"time"

	"github.com/five82/lair/internal/ui"
)

// shutdownTimeout bounds how long exit waits for the last snapshot write.
const shutdownTimeout = 5 * time.Second

// Run boots the lair browser until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	rt, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if cerr := rt.Close(closeCtx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt.Logger.Info("starting", "storage", rt.Config.Storage, "catalog", catalogName(rt.Config.Catalog), "restored", rt.Restored)

	go func() {
		_ = LoadCatalog(ctx, rt.Store, rt.Config.Catalog, rt.Logger)
	}()
	StartTicker(ctx, rt.Store, rt.Config.TickInterval())

	return ui.Run(ctx, ui.Options{
		Store:  rt.Store,
		Logger: rt.Logger,
	})
}

func catalogName(ref string) string {
	if ref == "" {
		return "builtin"
	}
	return ref
}
