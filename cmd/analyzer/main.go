package main

import (
	"log/slog"
	"os"

	"github.com/ainews-tools/harvester/app/analyze"
	"github.com/ainews-tools/harvester/app/cfg"
	"github.com/ainews-tools/harvester/app/config"
	"github.com/ainews-tools/harvester/app/store"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	conf, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		slog.Error("Failed to load scrape configuration", "error", err)
		os.Exit(1)
	}

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	if err := st.Load(); err != nil {
		slog.Error("Failed to load collection", "error", err)
		os.Exit(1)
	}

	if st.Len() == 0 {
		slog.Warn("No data found. Run the scraper first to generate data.")
		return
	}

	analyzer := analyze.NewAnalyzer(st.Snapshot())

	if err := analyzer.WriteReport(os.Stdout); err != nil {
		slog.Error("Failed to write report", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(appCfg.ReportPath)
	if err != nil {
		slog.Error("Failed to create report file", "path", appCfg.ReportPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := analyzer.WriteReport(f); err != nil {
		slog.Error("Failed to write report file", "path", appCfg.ReportPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Analysis report exported", "path", appCfg.ReportPath, "articles", st.Len())
}
