package api

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ainews-tools/harvester/app/analyze"
	"github.com/ainews-tools/harvester/app/article"
	"github.com/ainews-tools/harvester/app/store"
)

func NewHandler(csvPath, jsonPath string) *Handler {
	return &Handler{csvPath: csvPath, jsonPath: jsonPath}
}

// snapshot loads the current persisted collection. No data on disk is not
// an error: every endpoint answers 200 with an empty or default body.
func (h *Handler) snapshot() ([]article.Article, error) {
	st := store.NewStore(h.csvPath, h.jsonPath)
	if err := st.Load(); err != nil {
		return nil, err
	}
	return st.Snapshot(), nil
}

func (h *Handler) GetArticles(c *gin.Context) {
	articles, err := h.snapshot()
	if err != nil {
		slog.Error("Failed to load collection", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		response = append(response, toResponse(a))
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetStats(c *gin.Context) {
	articles, err := h.snapshot()
	if err != nil {
		slog.Error("Failed to load collection", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	stats := analyze.NewAnalyzer(articles).BasicStats()

	response := statsResponse{
		TotalArticles:    stats.TotalArticles,
		WithFullContent:  stats.WithFullContent,
		FullContentRatio: stats.FullContentRatio,
		AvgWordCount:     stats.AvgWordCount,
		LastUpdated:      time.Now().In(time.Local).Format(time.RFC3339),
	}
	if stats.Earliest != nil {
		response.DateRange.Earliest = stats.Earliest.Format("2006-01-02")
	}
	if stats.Latest != nil {
		response.DateRange.Latest = stats.Latest.Format("2006-01-02")
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if articles, err := h.snapshot(); err == nil {
		health["articles"] = len(articles)
	}

	c.JSON(http.StatusOK, health)
}

type indexArticle struct {
	Title       string
	Description string
	Timestamp   string
	DetailLink  string
	WordCount   int
}

type indexData struct {
	Articles    []indexArticle
	Total       int
	WithContent int
	Earliest    string
	Latest      string
	LastUpdated string
}

func (h *Handler) GetIndex(c *gin.Context) {
	articles, err := h.snapshot()
	if err != nil {
		slog.Error("Failed to load collection", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	stats := analyze.NewAnalyzer(articles).BasicStats()

	data := indexData{
		Total:       stats.TotalArticles,
		WithContent: stats.WithFullContent,
		LastUpdated: time.Now().In(time.Local).Format("2006-01-02 15:04:05"),
	}
	if stats.Earliest != nil {
		data.Earliest = stats.Earliest.Format("2006-01-02")
	}
	if stats.Latest != nil {
		data.Latest = stats.Latest.Format("2006-01-02")
	}

	for i, a := range articles {
		if i == 10 {
			break
		}
		entry := indexArticle{
			Title:       a.Title,
			Description: truncate(a.ShortDescription, 200),
			DetailLink:  a.DetailLink,
			WordCount:   a.WordCount,
		}
		if a.PublishedAt != nil {
			entry.Timestamp = a.PublishedAt.Format("2006-01-02 15:04")
		}
		data.Articles = append(data.Articles, entry)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(c.Writer, data); err != nil {
		slog.Error("Failed to render dashboard", "error", err)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))
