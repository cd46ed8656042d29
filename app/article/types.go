package article

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Article is the canonical record produced by the scraping pipeline.
// ShortDescription and LongDescription may be empty; WordCount is always
// derived from LongDescription and never trusted from upstream.
type Article struct {
	Title            string
	ShortDescription string
	ImageURL         string
	PublishedAt      *time.Time
	SourceDomain     string
	DetailLink       string
	LongDescription  string
	WordCount        int
	ScrapedAt        time.Time

	// Published mirrors the legacy published_status column. The scraper
	// always writes false; downstream publishing tooling flips it.
	Published      bool
	HasFullContent bool
}

// Normalize collapses whitespace in the free-text fields and recomputes
// the derived fields.
func (a *Article) Normalize() {
	a.Title = CollapseWhitespace(a.Title)
	a.ShortDescription = CollapseWhitespace(a.ShortDescription)
	a.LongDescription = CollapseWhitespace(a.LongDescription)
	a.WordCount = CountWords(a.LongDescription)
	a.HasFullContent = a.LongDescription != ""
}

// Validate checks the record invariants: a non-empty title and a
// well-formed absolute detail link when one is present.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article title is empty")
	}
	if a.DetailLink != "" {
		u, err := url.Parse(a.DetailLink)
		if err != nil {
			return fmt.Errorf("invalid detail link %q: %w", a.DetailLink, err)
		}
		if !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("detail link is not an absolute URL: %q", a.DetailLink)
		}
	}
	return nil
}

// SetLongDescription attaches the full article body and updates the
// derived word count and content flag.
func (a *Article) SetLongDescription(text string) {
	a.LongDescription = CollapseWhitespace(text)
	a.WordCount = CountWords(a.LongDescription)
	a.HasFullContent = a.LongDescription != ""
}

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CollapseWhitespace trims s and folds runs of whitespace into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
