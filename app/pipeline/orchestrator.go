package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ainews-tools/harvester/app/article"
	"github.com/ainews-tools/harvester/app/config"
	"github.com/ainews-tools/harvester/app/extract"
	"github.com/ainews-tools/harvester/app/fetch"
	"github.com/ainews-tools/harvester/app/store"
)

// Orchestrator drives one end-to-end run: enumerate sources, fetch
// listings, fetch details, dedup/merge, persist, emit a run summary.
// Sources are processed by a bounded worker pool; the fetch limiter is
// the only shared resource the workers contend on. The merge phase runs
// single-threaded after all fetch/extract work completes.
type Orchestrator struct {
	conf        *config.Config
	store       *store.Store
	client      *fetch.Client
	workerCount int
}

func NewOrchestrator(conf *config.Config, st *store.Store, workerCount int, userAgent string) *Orchestrator {
	if workerCount < 1 {
		workerCount = 1
	}
	limiter := fetch.NewLimiter(conf.Delay)

	return &Orchestrator{
		conf:        conf,
		store:       st,
		client:      fetch.NewClient(conf.Timeout, conf.MaxRetries, limiter, userAgent),
		workerCount: workerCount,
	}
}

// Run executes the pipeline once. Fetch and extraction failures degrade
// or abort individual sources; only a persistence failure aborts the run.
func (o *Orchestrator) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	sources := o.conf.Sources

	slog.Info("Starting pipeline run", "sources", len(sources), "workers", o.workerCount)

	type indexed struct {
		index  int
		result SourceResult
		batch  []article.Article
	}

	jobs := make(chan int)
	out := make(chan indexed, len(sources))

	var wg sync.WaitGroup
	workers := o.workerCount
	if workers > len(sources) {
		workers = len(sources)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				batch, result := o.processSource(ctx, sources[i])
				out <- indexed{index: i, result: result, batch: batch}
			}
		}()
	}

	for i := range sources {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	close(out)

	if err := ctx.Err(); err != nil {
		// A partially-fetched run must not reach the store.
		return nil, err
	}

	results := make([]SourceResult, len(sources))
	batches := make([][]article.Article, len(sources))
	for r := range out {
		results[r.index] = r.result
		batches[r.index] = r.batch
	}

	var batch []article.Article
	for i, res := range results {
		if res.State == StateDone {
			batch = append(batch, batches[i]...)
		}
	}

	meta := o.store.Merge(batch)
	meta.Source = o.metadataSource()

	if err := o.store.Persist(meta); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		Metadata: meta,
		Sources:  results,
		Duration: time.Since(start),
	}

	slog.Info("Pipeline run completed",
		"duration", summary.Duration.String(),
		"total", meta.TotalArticles,
		"new", meta.NewArticles,
		"duplicates", meta.DuplicatesRemoved,
		"updated", meta.UpdatedArticles,
		"aborted_sources", strings.Join(summary.Aborted(), ","))

	return summary, nil
}

// processSource runs the per-source state machine. A listing failure
// aborts only this source; detail failures keep the partial record.
func (o *Orchestrator) processSource(ctx context.Context, src config.Source) ([]article.Article, SourceResult) {
	result := SourceResult{Name: src.Name, State: StateIdle}

	result.State = StateFetchingListing
	data, err := o.client.Fetch(ctx, src.URL)
	if err != nil {
		slog.Error("Listing fetch failed, aborting source", "source", src.Name, "error", err)
		result.State = StateAborted
		result.Err = err
		return nil, result
	}

	result.State = StateExtractingListing
	var articles []article.Article
	if src.Type == config.SourceTypeRSS {
		articles, err = extract.Feed(data, src)
	} else {
		articles, err = extract.Listing(data, src)
	}
	if err != nil {
		slog.Error("Listing extraction failed, aborting source", "source", src.Name, "error", err)
		result.State = StateAborted
		result.Err = err
		return nil, result
	}

	slog.Info("Listing extracted", "source", src.Name, "articles", len(articles))

	now := time.Now()
	kept := articles[:0]
	for _, a := range articles {
		a.ScrapedAt = now
		if drop, reason := filtered(a, src.Filters); drop {
			slog.Debug("Record dropped by filter", "source", src.Name, "title", a.Title, "reason", reason)
			result.Filtered++
			continue
		}
		kept = append(kept, a)
	}
	articles = kept

	if o.conf.FetchFullContent {
		for i := range articles {
			if ctx.Err() != nil {
				result.State = StateAborted
				result.Err = ctx.Err()
				return nil, result
			}
			if articles[i].DetailLink == "" {
				continue
			}
			if o.fetchDetail(ctx, src, &articles[i], &result) {
				result.Details++
			}
		}
	}

	result.State = StateDone
	result.Articles = len(articles)
	return articles, result
}

// fetchDetail enriches one record with the full article body. Failures
// degrade gracefully: the summary-only record is kept.
func (o *Orchestrator) fetchDetail(ctx context.Context, src config.Source, a *article.Article, result *SourceResult) bool {
	result.State = StateFetchingDetail
	data, err := o.client.Fetch(ctx, a.DetailLink)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		slog.Warn("Detail fetch failed, keeping summary-only record", "source", src.Name, "url", a.DetailLink, "error", err)
		return false
	}

	result.State = StateExtractingDetail
	pageURL, _ := url.Parse(a.DetailLink)
	text, err := extract.Detail(data, src.Selectors.Content, pageURL)
	if err != nil {
		slog.Warn("Detail extraction failed, keeping summary-only record", "source", src.Name, "url", a.DetailLink, "error", err)
		return false
	}

	a.SetLongDescription(text)
	return true
}

func (o *Orchestrator) metadataSource() string {
	if o.conf.BaseURL != "" {
		return o.conf.BaseURL
	}
	names := make([]string, 0, len(o.conf.Sources))
	for _, src := range o.conf.Sources {
		names = append(names, src.Name)
	}
	return strings.Join(names, ",")
}
