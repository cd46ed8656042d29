package extract

import (
	"bytes"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ainews-tools/harvester/app/article"
	"github.com/ainews-tools/harvester/app/config"
)

// Listing parses a listing page into partial article records according to
// the source's selectors. Blocks without a title are skipped, not fatal.
// A page without the configured container yields an empty result; the
// orchestrator logs it and moves on.
func Listing(data []byte, src config.Source) ([]article.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindMalformedStructure, Reason: err.Error()}
	}

	base, _ := url.Parse(src.URL)
	sel := src.Selectors

	container := doc.Find(sel.Container).First()
	if container.Length() == 0 {
		slog.Warn("Could not find listing container", "source", src.Name, "selector", sel.Container)
		return []article.Article{}, nil
	}

	var articles []article.Article
	skipped := 0

	container.Find(sel.Block).Each(func(_ int, block *goquery.Selection) {
		a := parseBlock(block, sel, base, src.Domain())
		if a == nil {
			skipped++
			return
		}
		articles = append(articles, *a)
	})

	if skipped > 0 {
		slog.Warn("Skipped listing blocks without a title", "source", src.Name, "skipped", skipped)
	}

	return articles, nil
}

func parseBlock(block *goquery.Selection, sel config.Selectors, base *url.URL, domain string) *article.Article {
	title := article.CollapseWhitespace(block.Find(sel.Title).First().Text())
	if title == "" {
		return nil
	}

	a := &article.Article{
		Title:            title,
		ShortDescription: article.CollapseWhitespace(block.Find(sel.Description).First().Text()),
		SourceDomain:     domain,
	}

	if src, ok := block.Find(sel.Image).First().Attr("src"); ok {
		a.ImageURL = resolveURL(base, src)
	}

	if datetime, ok := block.Find(sel.Timestamp).First().Attr("datetime"); ok {
		a.PublishedAt = parseTimestamp(datetime)
	}

	if href, ok := block.Find(sel.Link).First().Attr("href"); ok {
		a.DetailLink = resolveURL(base, href)
	}

	return a
}

// resolveURL makes a possibly-relative reference absolute against the
// source's base URL.
func resolveURL(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}
	if base == nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

func parseTimestamp(raw string) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
