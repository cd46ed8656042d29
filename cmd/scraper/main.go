package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ainews-tools/harvester/app/cfg"
	"github.com/ainews-tools/harvester/app/config"
	"github.com/ainews-tools/harvester/app/pipeline"
	"github.com/ainews-tools/harvester/app/store"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	slog.Info("Starting AI News Harvester", "version", appCfg.Version, "config", appCfg.ConfigPath)

	conf, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		slog.Error("Failed to load scrape configuration", "error", err)
		os.Exit(1)
	}

	if appCfg.NoContent {
		conf.FetchFullContent = false
	}

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	if err := st.Load(); err != nil {
		slog.Error("Failed to load existing collection", "error", err)
		os.Exit(1)
	}
	slog.Info("Collection loaded", "articles", st.Len())

	orchestrator := pipeline.NewOrchestrator(conf, st, appCfg.WorkerCount, appCfg.UserAgent)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runOnce(ctx, orchestrator); err != nil {
		os.Exit(1)
	}

	if appCfg.Interval <= 0 {
		return
	}

	interval := time.Duration(appCfg.Interval) * time.Second
	slog.Info("Running periodically", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down")
			return
		case <-ticker.C:
			if err := runOnce(ctx, orchestrator); err != nil {
				os.Exit(1)
			}
		}
	}
}

// runOnce executes one pipeline run. Only persistence failures are fatal;
// a canceled run exits cleanly without touching the store.
func runOnce(ctx context.Context, orchestrator *pipeline.Orchestrator) error {
	summary, err := orchestrator.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("Run canceled")
			return nil
		}
		slog.Error("Run failed", "error", err)
		return err
	}

	for _, src := range summary.Sources {
		if src.State == pipeline.StateAborted {
			slog.Warn("Source aborted", "source", src.Name, "error", src.Err)
			continue
		}
		slog.Info("Source processed",
			"source", src.Name,
			"state", string(src.State),
			"articles", src.Articles,
			"details", src.Details,
			"filtered", src.Filtered)
	}

	return nil
}
