package extract

import (
	"bytes"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"

	"github.com/ainews-tools/harvester/app/article"
)

// Detail extracts the full article body from a detail page. The source's
// content selector is tried first; when it matches nothing, readability
// takes over. Only when both come up empty is the failure surfaced, and
// the orchestrator keeps the summary-only record.
func Detail(data []byte, contentSelector string, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &Error{Kind: KindMalformedStructure, Reason: err.Error()}
	}

	container := doc.Find(contentSelector)
	if container.Length() > 0 {
		container.Find("script, style").Remove()
		if text := article.CollapseWhitespace(container.Text()); text != "" {
			return text, nil
		}
	}

	if text := readabilityFallback(data, pageURL); text != "" {
		return text, nil
	}

	return "", &Error{
		Kind:   KindNoContentFound,
		Reason: "no content container matched selector " + contentSelector,
	}
}

func readabilityFallback(data []byte, pageURL *url.URL) string {
	art, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return ""
	}
	return article.CollapseWhitespace(strings.TrimSpace(art.TextContent))
}
