package article

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// Key identifies the "same" article across scrape runs.
type Key string

var foldCaser = cases.Fold()

// Identity computes the stable identity of a record. The normalized detail
// link is the strongest signal; records without a usable link fall back to
// a composite of the folded title and the source domain, so the same title
// on two different sites never collides.
func Identity(a Article) Key {
	if link, ok := normalizeLink(a.DetailLink); ok {
		return Key("link|" + link)
	}
	title := foldCaser.String(CollapseWhitespace(a.Title))
	return Key("title|" + title + "|" + strings.ToLower(a.SourceDomain))
}

// normalizeLink canonicalizes a detail URL for identity purposes:
// lowercased scheme and host, query and fragment dropped, trailing slash
// stripped. Returns false for anything that is not an absolute http(s) URL.
func normalizeLink(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	host := strings.ToLower(u.Host)
	if host == "" {
		return "", false
	}
	path := strings.TrimSuffix(u.Path, "/")
	return scheme + "://" + host + path, true
}
