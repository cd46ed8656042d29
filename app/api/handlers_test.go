package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ainews-tools/harvester/app/article"
	"github.com/ainews-tools/harvester/app/store"
)

func seedStore(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "articles.csv")
	jsonPath := filepath.Join(dir, "articles.json")

	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := article.Article{
		Title:            "Stored Article",
		ShortDescription: "A stored description",
		SourceDomain:     "example.com",
		DetailLink:       "https://example.com/news/stored",
		PublishedAt:      &published,
		ScrapedAt:        time.Now(),
	}
	a.SetLongDescription("full body with five words")

	st := store.NewStore(csvPath, jsonPath)
	meta := st.Merge([]article.Article{a})
	meta.Source = "https://example.com/"
	if err := st.Persist(meta); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}

	return csvPath, jsonPath
}

func emptyPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "articles.csv"), filepath.Join(dir, "articles.json")
}

func doRequest(server http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetArticles(t *testing.T) {
	csvPath, jsonPath := seedStore(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/api/articles")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", w.Code)
	}

	var articles []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &articles); err != nil {
		t.Fatalf("Expected JSON array, got error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got: %d", len(articles))
	}
	if articles[0]["title"] != "Stored Article" {
		t.Errorf("Expected stored title, got: %v", articles[0]["title"])
	}
	if articles[0]["word_count"].(float64) != 5 {
		t.Errorf("Expected word_count 5, got: %v", articles[0]["word_count"])
	}
}

func TestGetArticlesEmpty(t *testing.T) {
	csvPath, jsonPath := emptyPaths(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/api/articles")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty collection, got: %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected empty JSON array, got: %q", w.Body.String())
	}
}

func TestGetStats(t *testing.T) {
	csvPath, jsonPath := seedStore(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/api/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", w.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Expected JSON object, got error: %v", err)
	}
	if stats["total_articles"].(float64) != 1 {
		t.Errorf("Expected total_articles 1, got: %v", stats["total_articles"])
	}
	if stats["articles_with_content"].(float64) != 1 {
		t.Errorf("Expected articles_with_content 1, got: %v", stats["articles_with_content"])
	}

	dateRange := stats["date_range"].(map[string]interface{})
	if dateRange["earliest"] != "2024-05-01" {
		t.Errorf("Expected earliest 2024-05-01, got: %v", dateRange["earliest"])
	}
}

func TestGetStatsEmpty(t *testing.T) {
	csvPath, jsonPath := emptyPaths(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/api/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty collection, got: %d", w.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Expected JSON object, got error: %v", err)
	}
	if stats["total_articles"].(float64) != 0 {
		t.Errorf("Expected zero total, got: %v", stats["total_articles"])
	}
}

func TestGetIndex(t *testing.T) {
	csvPath, jsonPath := seedStore(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Stored Article") {
		t.Error("Expected dashboard to render the stored article")
	}
	if !strings.Contains(body, "5 words") {
		t.Error("Expected dashboard to render the word count badge")
	}
}

func TestGetIndexEmpty(t *testing.T) {
	csvPath, jsonPath := emptyPaths(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty collection, got: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No articles found") {
		t.Error("Expected empty-state message")
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("ä", 10)

	got := truncate(s, 4)
	if got != "ääää..." {
		t.Errorf("Expected truncation on rune boundary, got: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Expected valid UTF-8, got: %q", got)
	}

	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected short string unchanged, got: %q", got)
	}
}

func TestGetHealth(t *testing.T) {
	csvPath, jsonPath := seedStore(t)
	server := NewServer(NewHandler(csvPath, jsonPath))

	w := doRequest(server, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", w.Code)
	}
}
