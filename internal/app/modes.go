package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chainarb/arbscan/internal/scanner"
	"github.com/chainarb/arbscan/internal/server"
	"github.com/chainarb/arbscan/internal/server/handler"
	"github.com/chainarb/arbscan/internal/server/ws"
)

// ServerMode runs the HTTP + WebSocket API. An initial scan fills the
// snapshot so the first request does not start from an empty set; after
// that, scans run on demand per request.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting server mode")

	g, ctx := errgroup.WithContext(ctx)

	wsHub := ws.NewHub(deps.Bus, a.cfg.Mode, a.logger)
	g.Go(func() error {
		if err := wsHub.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	handlers := server.Handlers{
		Health:        handler.NewHealthHandler(deps.Snapshot, deps.Registry.Names),
		Opportunities: handler.NewOpportunityHandler(deps.ScanSvc, a.logger),
		Execute:       handler.NewExecuteHandler(deps.ExecSvc, a.logger),
		History:       handler.NewHistoryHandler(deps.ExecSvc),
		Simulate:      handler.NewSimulateHandler(deps.ExecSvc),
	}
	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		APIKey:      a.cfg.Server.APIKey,
	}, handlers, wsHub, a.logger)

	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Warm the snapshot so the UI has data immediately.
	g.Go(func() error {
		if _, err := deps.ScanSvc.Scan(ctx, scanner.Overrides{}); err != nil {
			a.logger.WarnContext(ctx, "initial scan failed", slog.Any("error", err))
		}
		return nil
	})

	return g.Wait()
}

// ScanMode runs one discovery pass, prints the ranked opportunities as JSON
// to stdout, and exits.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	opps, err := deps.ScanSvc.Scan(ctx, scanner.Overrides{})
	if err != nil {
		return fmt.Errorf("app: scan: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(opps); err != nil {
		return fmt.Errorf("app: encode results: %w", err)
	}

	a.logger.InfoContext(ctx, "scan finished", slog.Int("opportunities", len(opps)))
	return nil
}

// WatchMode runs discovery passes on the configured interval until the
// context is cancelled. A failed pass is logged and retried on the next
// tick.
func (a *App) WatchMode(ctx context.Context, deps *Dependencies) error {
	interval := a.cfg.Scan.Interval.Duration
	a.logger.InfoContext(ctx, "starting watch mode",
		slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First pass immediately rather than waiting one interval.
	if _, err := deps.ScanSvc.Scan(ctx, scanner.Overrides{}); err != nil {
		a.logger.WarnContext(ctx, "scan failed", slog.Any("error", err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := deps.ScanSvc.Scan(ctx, scanner.Overrides{}); err != nil {
				a.logger.WarnContext(ctx, "scan failed", slog.Any("error", err))
			}
		}
	}
}
