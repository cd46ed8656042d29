package api

import (
	"time"

	"github.com/ainews-tools/harvester/app/article"
)

// Handler serves the persisted collection read-only. Each request reloads
// the durable snapshot, so the dashboard picks up new runs without
// restarts and never coordinates with the pipeline.
type Handler struct {
	csvPath  string
	jsonPath string
}

type articleResponse struct {
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
	HasFullContent   bool   `json:"has_full_content"`
}

type statsResponse struct {
	TotalArticles    int       `json:"total_articles"`
	WithFullContent  int       `json:"articles_with_content"`
	FullContentRatio float64   `json:"full_content_ratio"`
	AvgWordCount     float64   `json:"avg_word_count"`
	DateRange        dateRange `json:"date_range"`
	LastUpdated      string    `json:"last_updated"`
}

type dateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

func toResponse(a article.Article) articleResponse {
	resp := articleResponse{
		Title:            a.Title,
		ShortDescription: a.ShortDescription,
		ImageURL:         a.ImageURL,
		SourceDomain:     a.SourceDomain,
		Published:        a.Published,
		DetailLink:       a.DetailLink,
		LongDescription:  a.LongDescription,
		WordCount:        a.WordCount,
		HasFullContent:   a.HasFullContent,
	}
	if a.PublishedAt != nil {
		resp.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}
	if !a.ScrapedAt.IsZero() {
		resp.ScrapedAt = a.ScrapedAt.Format(time.RFC3339)
	}
	return resp
}
