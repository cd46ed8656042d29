package analyze

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteReport renders the text analysis report.
func (an *Analyzer) WriteReport(w io.Writer) error {
	stats := an.BasicStats()
	keywords := an.Keywords(10)
	timeline := an.TimelineAnalysis()

	var b strings.Builder

	b.WriteString("AI NEWS HARVESTER - ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().In(time.Local).Format("2006-01-02 15:04:05"))

	b.WriteString("BASIC STATISTICS:\n")
	fmt.Fprintf(&b, "Total articles: %d\n", stats.TotalArticles)
	fmt.Fprintf(&b, "Articles with titles: %d\n", stats.WithTitle)
	fmt.Fprintf(&b, "Articles with descriptions: %d\n", stats.WithDescription)
	fmt.Fprintf(&b, "Articles with full content: %d\n", stats.WithFullContent)
	fmt.Fprintf(&b, "Articles with images: %d\n", stats.WithImage)
	if stats.WithFullContent > 0 {
		fmt.Fprintf(&b, "Average word count: %.1f\n", stats.AvgWordCount)
		fmt.Fprintf(&b, "Max word count: %d\n", stats.MaxWordCount)
		fmt.Fprintf(&b, "Min word count: %d\n", stats.MinWordCount)
	}

	b.WriteString("\nTOP 10 KEYWORDS:\n")
	for _, kw := range keywords {
		fmt.Fprintf(&b, "- %s: %d\n", kw.Word, kw.Count)
	}

	if timeline.TrackedDays > 0 {
		b.WriteString("\nTIMELINE:\n")
		fmt.Fprintf(&b, "Date range: %s to %s\n", timeline.Earliest, timeline.Latest)
		fmt.Fprintf(&b, "Average articles per day: %.1f\n", timeline.AvgPerDay)
		fmt.Fprintf(&b, "Most active day: %s (%d articles)\n", timeline.BusiestDay, timeline.BusiestN)
	}

	b.WriteString("\nSAMPLE TITLES:\n")
	for i, title := range an.SampleTitles(5) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
