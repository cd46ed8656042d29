package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/ainews-tools/harvester/app/article"
)

// csvHeader is the exact column order of the primary encoding. The
// trailing source_domain column duplicates the fifth one; consumers of
// the legacy dataset expect both.
var csvHeader = []string{
	"title",
	"short_description",
	"image_url",
	"published_timestamp",
	"source_domain",
	"published_status",
	"detail_link",
	"long_description",
	"word_count",
	"scraped_at",
	"source_domain",
}

func encodeCSV(articles []article.Article) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, a := range articles {
		row := []string{
			a.Title,
			a.ShortDescription,
			a.ImageURL,
			formatTimestamp(a.PublishedAt),
			a.SourceDomain,
			strconv.FormatBool(a.Published),
			a.DetailLink,
			a.LongDescription,
			strconv.Itoa(a.WordCount),
			a.ScrapedAt.Format(time.RFC3339),
			a.SourceDomain,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decodeCSV(data []byte) ([]article.Article, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	articles := make([]article.Article, 0, len(rows)-1)
	for _, row := range rows[1:] {
		a := article.Article{
			Title:            row[0],
			ShortDescription: row[1],
			ImageURL:         row[2],
			PublishedAt:      parseTimestamp(row[3]),
			SourceDomain:     row[4],
			DetailLink:       row[6],
			LongDescription:  row[7],
		}
		a.Published, _ = strconv.ParseBool(row[5])
		if t := parseTimestamp(row[9]); t != nil {
			a.ScrapedAt = *t
		}
		articles = append(articles, a)
	}

	return articles, nil
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTimestamp(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
