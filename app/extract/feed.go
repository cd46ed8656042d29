package extract

import (
	"bytes"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"github.com/ainews-tools/harvester/app/article"
	"github.com/ainews-tools/harvester/app/config"
)

// Feed parses an RSS/Atom listing for sources configured with type "rss".
// Items map to the same partial records a listing page produces, so the
// rest of the pipeline treats both source types alike.
func Feed(data []byte, src config.Source) ([]article.Article, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindMalformedStructure, Reason: err.Error()}
	}

	articles := make([]article.Article, 0, len(parsed.Items))
	skipped := 0

	for _, item := range parsed.Items {
		title := article.CollapseWhitespace(item.Title)
		if title == "" {
			skipped++
			continue
		}

		a := article.Article{
			Title:            title,
			ShortDescription: article.CollapseWhitespace(item.Description),
			DetailLink:       item.Link,
			SourceDomain:     src.Domain(),
		}
		if item.PublishedParsed != nil {
			t := *item.PublishedParsed
			a.PublishedAt = &t
		}
		if item.Image != nil {
			a.ImageURL = item.Image.URL
		}

		articles = append(articles, a)
	}

	if skipped > 0 {
		slog.Warn("Skipped feed items without a title", "source", src.Name, "skipped", skipped)
	}

	return articles, nil
}
