package config

import (
	"net/url"
	"time"
)

// Document is the raw scrape configuration as it appears on disk.
// Numeric settings are pointers so an explicit zero can be told apart
// from an omitted option when defaults are applied.
type Document struct {
	BaseURL              string   `yaml:"base_url" json:"base_url"`
	CSVPath              string   `yaml:"csv_path" json:"csv_path"`
	JSONPath             string   `yaml:"json_path" json:"json_path"`
	DelayBetweenRequests *float64 `yaml:"delay_between_requests" json:"delay_between_requests"`
	MaxRetries           *int     `yaml:"max_retries" json:"max_retries"`
	Timeout              *float64 `yaml:"timeout" json:"timeout"`
	FetchFullContent     *bool    `yaml:"fetch_full_content" json:"fetch_full_content"`
	Sources              []Source `yaml:"sources" json:"sources"`
}

// Config is the validated configuration with defaults resolved.
type Config struct {
	BaseURL          string
	CSVPath          string
	JSONPath         string
	Delay            time.Duration
	MaxRetries       int
	Timeout          time.Duration
	FetchFullContent bool
	Sources          []Source
}

// Source is one configured origin website with its own selectors.
type Source struct {
	Name      string    `yaml:"name" json:"name"`
	URL       string    `yaml:"url" json:"url"`
	Type      string    `yaml:"type" json:"type"` // "html" (default) or "rss"
	Selectors Selectors `yaml:"selectors" json:"selectors"`
	Filters   []Filter  `yaml:"filters" json:"filters"`
}

// Domain returns the registrable host of the source URL.
func (s Source) Domain() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Selectors declares where listing and detail data lives in a source's
// HTML. Empty fields fall back to the defaults below.
type Selectors struct {
	Container   string `yaml:"container" json:"container"`
	Block       string `yaml:"block" json:"block"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
	Timestamp   string `yaml:"timestamp" json:"timestamp"`
	Link        string `yaml:"link" json:"link"`
	Content     string `yaml:"content" json:"content"`
}

// Filter drops scraped records by substring match before they reach the
// merge phase.
type Filter struct {
	Field    string   `yaml:"field" json:"field"`
	Includes []string `yaml:"includes" json:"includes"`
	Excludes []string `yaml:"excludes" json:"excludes"`
}

const (
	SourceTypeHTML = "html"
	SourceTypeRSS  = "rss"
)

// DefaultSelectors match the article grid markup of the original site.
var DefaultSelectors = Selectors{
	Container:   "div.grid",
	Block:       "div.rounded-lg",
	Title:       "h2",
	Description: "p",
	Image:       "img",
	Timestamp:   "time",
	Link:        "a[href]",
	Content:     "#content-blocks",
}
