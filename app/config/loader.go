package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultCSVPath    = "assets/csv/ainews.csv"
	defaultJSONPath   = "assets/json/ainews.json"
	defaultDelay      = 1.0
	defaultMaxRetries = 3
	defaultTimeout    = 10.0
)

// Loader reads and validates a scrape configuration document.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the document at the configured path. A missing file yields
// the built-in defaults so the tool stays runnable out of the box.
func (l *Loader) Load() (*Config, error) {
	doc := &Document{}

	data, err := os.ReadFile(l.path)
	switch {
	case os.IsNotExist(err):
		slog.Warn("Configuration file not found, using defaults", "path", l.path)
		doc.BaseURL = "https://www.ainews.com/"
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := l.parse(data, doc); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", l.path, err)
		}
	}

	cfg, err := l.resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	return cfg, nil
}

func (l *Loader) parse(data []byte, doc *Document) error {
	if strings.EqualFold(filepath.Ext(l.path), ".json") {
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// resolve applies defaults and validates the document.
func (l *Loader) resolve(doc *Document) (*Config, error) {
	cfg := &Config{
		BaseURL:          doc.BaseURL,
		CSVPath:          doc.CSVPath,
		JSONPath:         doc.JSONPath,
		Delay:            secondsToDuration(defaultDelay),
		MaxRetries:       defaultMaxRetries,
		Timeout:          secondsToDuration(defaultTimeout),
		FetchFullContent: true,
		Sources:          doc.Sources,
	}

	if cfg.CSVPath == "" {
		cfg.CSVPath = defaultCSVPath
	}
	if cfg.JSONPath == "" {
		cfg.JSONPath = defaultJSONPath
	}

	if doc.DelayBetweenRequests != nil {
		if *doc.DelayBetweenRequests < 0 {
			return nil, fmt.Errorf("delay_between_requests must be non-negative")
		}
		cfg.Delay = secondsToDuration(*doc.DelayBetweenRequests)
	}
	if doc.MaxRetries != nil {
		if *doc.MaxRetries < 0 {
			return nil, fmt.Errorf("max_retries must be non-negative")
		}
		cfg.MaxRetries = *doc.MaxRetries
	}
	if doc.Timeout != nil {
		if *doc.Timeout <= 0 {
			return nil, fmt.Errorf("timeout must be positive")
		}
		cfg.Timeout = secondsToDuration(*doc.Timeout)
	}
	if doc.FetchFullContent != nil {
		cfg.FetchFullContent = *doc.FetchFullContent
	}

	if len(cfg.Sources) == 0 {
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base_url is required when no sources are configured")
		}
		cfg.Sources = []Source{{URL: cfg.BaseURL}}
	}

	for i := range cfg.Sources {
		if err := l.resolveSource(&cfg.Sources[i]); err != nil {
			return nil, fmt.Errorf("source at index %d: %w", i, err)
		}
	}

	return cfg, nil
}

func (l *Loader) resolveSource(src *Source) error {
	if src.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	u, err := url.Parse(src.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("source URL must be absolute: %q", src.URL)
	}

	if src.Name == "" {
		src.Name = u.Hostname()
	}

	switch src.Type {
	case "":
		src.Type = SourceTypeHTML
	case SourceTypeHTML, SourceTypeRSS:
	default:
		return fmt.Errorf("invalid source type: %q", src.Type)
	}

	applySelectorDefaults(&src.Selectors)

	validFields := map[string]bool{
		"title":       true,
		"description": true,
	}
	for i, filter := range src.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}

func applySelectorDefaults(sel *Selectors) {
	if sel.Container == "" {
		sel.Container = DefaultSelectors.Container
	}
	if sel.Block == "" {
		sel.Block = DefaultSelectors.Block
	}
	if sel.Title == "" {
		sel.Title = DefaultSelectors.Title
	}
	if sel.Description == "" {
		sel.Description = DefaultSelectors.Description
	}
	if sel.Image == "" {
		sel.Image = DefaultSelectors.Image
	}
	if sel.Timestamp == "" {
		sel.Timestamp = DefaultSelectors.Timestamp
	}
	if sel.Link == "" {
		sel.Link = DefaultSelectors.Link
	}
	if sel.Content == "" {
		sel.Content = DefaultSelectors.Content
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
