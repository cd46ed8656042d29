package analyze

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ainews-tools/harvester/app/article"
)

// Analyzer computes aggregate statistics over a read-only snapshot of the
// persisted collection. It never mutates or writes back.
type Analyzer struct {
	articles []article.Article
}

func NewAnalyzer(articles []article.Article) *Analyzer {
	return &Analyzer{articles: articles}
}

// Stats is the basic statistics block.
type Stats struct {
	TotalArticles    int
	WithTitle        int
	WithDescription  int
	WithFullContent  int
	WithImage        int
	AvgWordCount     float64
	MaxWordCount     int
	MinWordCount     int
	Earliest         *time.Time
	Latest           *time.Time
	LastUpdated      time.Time
	FullContentRatio float64
}

// KeywordCount is one entry of the keyword frequency table.
type KeywordCount struct {
	Word  string
	Count int
}

// Timeline is the per-day publication histogram.
type Timeline struct {
	Days        map[string]int
	Earliest    string
	Latest      string
	BusiestDay  string
	BusiestN    int
	AvgPerDay   float64
	TrackedDays int
}

var wordPattern = regexp.MustCompile(`[a-zA-Z]{4,}`)

// stopWords are filtered out of the keyword frequency table.
var stopWords = map[string]bool{
	"than": true, "that": true, "them": true, "then": true, "they": true,
	"this": true, "have": true, "from": true,
	"with": true, "will": true, "your": true, "what": true, "when": true,
	"been": true, "were": true, "more": true, "some": true, "into": true,
	"also": true, "about": true, "after": true, "over": true, "just": true,
	"their": true, "there": true, "these": true, "other": true, "which": true,
}

func (an *Analyzer) BasicStats() Stats {
	stats := Stats{
		TotalArticles: len(an.articles),
		LastUpdated:   time.Now(),
	}

	totalWords := 0
	counted := 0

	for _, a := range an.articles {
		if a.Title != "" {
			stats.WithTitle++
		}
		if a.ShortDescription != "" {
			stats.WithDescription++
		}
		if a.HasFullContent {
			stats.WithFullContent++
			totalWords += a.WordCount
			counted++
			if a.WordCount > stats.MaxWordCount {
				stats.MaxWordCount = a.WordCount
			}
			if stats.MinWordCount == 0 || a.WordCount < stats.MinWordCount {
				stats.MinWordCount = a.WordCount
			}
		}
		if a.ImageURL != "" {
			stats.WithImage++
		}
		if a.PublishedAt != nil {
			if stats.Earliest == nil || a.PublishedAt.Before(*stats.Earliest) {
				stats.Earliest = a.PublishedAt
			}
			if stats.Latest == nil || a.PublishedAt.After(*stats.Latest) {
				stats.Latest = a.PublishedAt
			}
		}
	}

	if counted > 0 {
		stats.AvgWordCount = float64(totalWords) / float64(counted)
	}
	if stats.TotalArticles > 0 {
		stats.FullContentRatio = float64(stats.WithFullContent) / float64(stats.TotalArticles)
	}

	return stats
}

// Keywords returns the topN most frequent words across titles and short
// descriptions, lowercased, letters-only, stop words removed. Ties break
// alphabetically so the output is stable.
func (an *Analyzer) Keywords(topN int) []KeywordCount {
	counts := make(map[string]int)

	for _, a := range an.articles {
		for _, text := range []string{a.Title, a.ShortDescription} {
			for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
				if stopWords[word] {
					continue
				}
				counts[word]++
			}
		}
	}

	keywords := make([]KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, KeywordCount{Word: word, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})

	if topN > 0 && len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

// TimelineAnalysis buckets articles by publication day.
func (an *Analyzer) TimelineAnalysis() Timeline {
	tl := Timeline{Days: make(map[string]int)}

	for _, a := range an.articles {
		if a.PublishedAt == nil {
			continue
		}
		day := a.PublishedAt.Format("2006-01-02")
		tl.Days[day]++
	}

	if len(tl.Days) == 0 {
		return tl
	}

	total := 0
	for day, count := range tl.Days {
		total += count
		if tl.Earliest == "" || day < tl.Earliest {
			tl.Earliest = day
		}
		if day > tl.Latest {
			tl.Latest = day
		}
		if count > tl.BusiestN || (count == tl.BusiestN && day < tl.BusiestDay) {
			tl.BusiestDay = day
			tl.BusiestN = count
		}
	}

	tl.TrackedDays = len(tl.Days)
	tl.AvgPerDay = float64(total) / float64(tl.TrackedDays)
	return tl
}

// SampleTitles returns up to n article titles in snapshot order.
func (an *Analyzer) SampleTitles(n int) []string {
	titles := make([]string, 0, n)
	for _, a := range an.articles {
		if a.Title == "" {
			continue
		}
		titles = append(titles, a.Title)
		if len(titles) == n {
			break
		}
	}
	return titles
}
