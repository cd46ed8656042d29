package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ainews-tools/harvester/app/article"
)

type jsonDocument struct {
	Metadata jsonMetadata  `json:"metadata"`
	Articles []jsonArticle `json:"articles"`
}

type jsonMetadata struct {
	TotalArticles     int    `json:"total_articles"`
	NewArticles       int    `json:"new_articles"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	LastUpdated       string `json:"last_updated"`
	Source            string `json:"source"`
}

type jsonArticle struct {
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	ImageURL         string `json:"image_url"`
	PublishedAt      string `json:"published_timestamp"`
	SourceDomain     string `json:"source_domain"`
	Published        bool   `json:"published_status"`
	DetailLink       string `json:"detail_link"`
	LongDescription  string `json:"long_description"`
	WordCount        int    `json:"word_count"`
	ScrapedAt        string `json:"scraped_at"`
}

func encodeJSON(articles []article.Article, meta RunMetadata) ([]byte, error) {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			TotalArticles:     meta.TotalArticles,
			NewArticles:       meta.NewArticles,
			DuplicatesRemoved: meta.DuplicatesRemoved,
			LastUpdated:       meta.LastUpdated.Format(time.RFC3339),
			Source:            meta.Source,
		},
		Articles: make([]jsonArticle, 0, len(articles)),
	}

	for _, a := range articles {
		doc.Articles = append(doc.Articles, jsonArticle{
			Title:            a.Title,
			ShortDescription: a.ShortDescription,
			ImageURL:         a.ImageURL,
			PublishedAt:      formatTimestamp(a.PublishedAt),
			SourceDomain:     a.SourceDomain,
			Published:        a.Published,
			DetailLink:       a.DetailLink,
			LongDescription:  a.LongDescription,
			WordCount:        a.WordCount,
			ScrapedAt:        a.ScrapedAt.Format(time.RFC3339),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func decodeJSON(data []byte) ([]article.Article, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}

	articles := make([]article.Article, 0, len(doc.Articles))
	for _, j := range doc.Articles {
		a := article.Article{
			Title:            j.Title,
			ShortDescription: j.ShortDescription,
			ImageURL:         j.ImageURL,
			PublishedAt:      parseTimestamp(j.PublishedAt),
			SourceDomain:     j.SourceDomain,
			Published:        j.Published,
			DetailLink:       j.DetailLink,
			LongDescription:  j.LongDescription,
		}
		if t := parseTimestamp(j.ScrapedAt); t != nil {
			a.ScrapedAt = *t
		}
		articles = append(articles, a)
	}

	return articles, nil
}
