package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Scrape configuration document
	ConfigPath string `long:"config" env:"CONFIG_PATH" default:"config.yml" description:"Path to the scrape configuration document (YAML or JSON)"`

	// Pipeline configuration
	WorkerCount int  `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of workers processing sources in parallel"`
	Interval    int  `long:"interval" env:"SCRAPE_INTERVAL" default:"0" description:"Seconds between pipeline runs (0 runs once and exits)"`
	NoContent   bool `long:"no-content" env:"NO_CONTENT" description:"Skip fetching full article content"`

	// Dashboard configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for the dashboard"`

	// Analyzer configuration
	ReportPath string `long:"report" env:"REPORT_PATH" default:"analysis_report.txt" description:"Output path for the analysis report"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"AINews Harvester/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ConfigPath:  raw.ConfigPath,
		WorkerCount: raw.WorkerCount,
		Interval:    raw.Interval,
		NoContent:   raw.NoContent,
		Port:        raw.Port,
		ReportPath:  raw.ReportPath,
		UserAgent:   raw.UserAgent,
		Timezone:    raw.Timezone,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	setupLogger(cfg.Debug)

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
