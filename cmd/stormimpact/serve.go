package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/storm-impact-report/internal/adapter/http"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of filesystem events (editors and download
// tools often emit several writes per save) into one recompute.
const watchDebounce = 500 * time.Millisecond

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Compute the report, then serve it over HTTP",
		Long: "Runs one aggregation pass, exposes /report, /healthz, /readyz, and " +
			"/metrics, and (with watch enabled) recomputes whenever the input file changes.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			p, cleanup, err := buildPipeline(cfg, logger, metrics, true)
			if err != nil {
				return err
			}
			defer cleanup()

			return serve(cfg, p, logger)
		},
	}
}

func serve(cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	runs := make(chan struct{}, 1)
	runs <- struct{}{} // initial pass

	if cfg.Watch {
		go watchInput(ctx, cfg.InputPath, logger, runs)
	}

	for done := false; !done; {
		select {
		case <-ctx.Done():
			done = true
		case <-runs:
			if err := p.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("report run failed", "error", err)
			}
		}
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// watchInput requests a pipeline run whenever the input file is written or
// replaced. It watches the parent directory because replace-by-rename (the
// common download pattern) retires the original inode.
func watchInput(ctx context.Context, path string, logger *slog.Logger, runs chan<- struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("input watcher unavailable", "error", err)
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		logger.Error("watch input directory failed", "dir", dir, "error", err)
		return
	}
	logger.Info("watching input for changes", "path", path)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != path || !event.Op.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case runs <- struct{}{}:
					logger.Info("input changed, recomputing report", "path", path)
				default:
					// A run is already queued.
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("input watcher error", "error", err)
		}
	}
}
