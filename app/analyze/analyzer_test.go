package analyze

import (
	"strings"
	"testing"
	"time"

	"github.com/ainews-tools/harvester/app/article"
)

func ts(value string) *time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return &t
}

func testArticles() []article.Article {
	a := article.Article{
		Title:            "Artificial Intelligence Breakthrough",
		ShortDescription: "Research on artificial neural networks",
		ImageURL:         "https://example.com/a.jpg",
		PublishedAt:      ts("2024-05-01"),
	}
	a.SetLongDescription("a body with exactly six words")

	b := article.Article{
		Title:            "Artificial Minds and the Future",
		ShortDescription: "More artificial intelligence coverage",
		PublishedAt:      ts("2024-05-01"),
	}

	c := article.Article{
		Title:       "Quantum Computing Update",
		PublishedAt: ts("2024-05-03"),
	}

	return []article.Article{a, b, c}
}

func TestBasicStats(t *testing.T) {
	stats := NewAnalyzer(testArticles()).BasicStats()

	if stats.TotalArticles != 3 {
		t.Errorf("Expected 3 articles, got: %d", stats.TotalArticles)
	}
	if stats.WithFullContent != 1 {
		t.Errorf("Expected 1 article with content, got: %d", stats.WithFullContent)
	}
	if stats.WithImage != 1 {
		t.Errorf("Expected 1 article with image, got: %d", stats.WithImage)
	}
	if stats.AvgWordCount != 6 {
		t.Errorf("Expected average word count 6, got: %f", stats.AvgWordCount)
	}
	if stats.Earliest == nil || stats.Earliest.Format("2006-01-02") != "2024-05-01" {
		t.Errorf("Expected earliest 2024-05-01, got: %v", stats.Earliest)
	}
	if stats.Latest == nil || stats.Latest.Format("2006-01-02") != "2024-05-03" {
		t.Errorf("Expected latest 2024-05-03, got: %v", stats.Latest)
	}
	if stats.FullContentRatio < 0.33 || stats.FullContentRatio > 0.34 {
		t.Errorf("Expected ratio ~1/3, got: %f", stats.FullContentRatio)
	}
}

func TestKeywords(t *testing.T) {
	keywords := NewAnalyzer(testArticles()).Keywords(5)

	if len(keywords) == 0 {
		t.Fatal("Expected keywords")
	}
	if keywords[0].Word != "artificial" {
		t.Errorf("Expected 'artificial' as top keyword, got: %q", keywords[0].Word)
	}
	if keywords[0].Count != 4 {
		t.Errorf("Expected count 4, got: %d", keywords[0].Count)
	}

	for _, kw := range keywords {
		if len(kw.Word) < 4 {
			t.Errorf("Expected only words of 4+ letters, got: %q", kw.Word)
		}
	}
}

func TestKeywordsFiltersStopWords(t *testing.T) {
	articles := []article.Article{{Title: "This from that with will about technology"}}
	keywords := NewAnalyzer(articles).Keywords(0)

	for _, kw := range keywords {
		if kw.Word != "technology" {
			t.Errorf("Expected stop words filtered, got: %q", kw.Word)
		}
	}
}

func TestTimelineAnalysis(t *testing.T) {
	tl := NewAnalyzer(testArticles()).TimelineAnalysis()

	if tl.TrackedDays != 2 {
		t.Errorf("Expected 2 tracked days, got: %d", tl.TrackedDays)
	}
	if tl.Earliest != "2024-05-01" || tl.Latest != "2024-05-03" {
		t.Errorf("Expected range 2024-05-01..2024-05-03, got: %s..%s", tl.Earliest, tl.Latest)
	}
	if tl.BusiestDay != "2024-05-01" || tl.BusiestN != 2 {
		t.Errorf("Expected busiest day 2024-05-01 with 2 articles, got: %s (%d)", tl.BusiestDay, tl.BusiestN)
	}
	if tl.AvgPerDay != 1.5 {
		t.Errorf("Expected 1.5 articles/day, got: %f", tl.AvgPerDay)
	}
}

func TestWriteReport(t *testing.T) {
	var b strings.Builder
	if err := NewAnalyzer(testArticles()).WriteReport(&b); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	report := b.String()
	for _, want := range []string{
		"ANALYSIS REPORT",
		"Total articles: 3",
		"TOP 10 KEYWORDS:",
		"- artificial: 4",
		"Date range: 2024-05-01 to 2024-05-03",
		"SAMPLE TITLES:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q", want)
		}
	}
}

func TestEmptyCollection(t *testing.T) {
	an := NewAnalyzer(nil)

	stats := an.BasicStats()
	if stats.TotalArticles != 0 || stats.AvgWordCount != 0 {
		t.Errorf("Expected zero stats, got: %+v", stats)
	}
	if kws := an.Keywords(10); len(kws) != 0 {
		t.Errorf("Expected no keywords, got: %d", len(kws))
	}
	tl := an.TimelineAnalysis()
	if tl.TrackedDays != 0 {
		t.Errorf("Expected empty timeline, got: %+v", tl)
	}
}
