package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ainews-tools/harvester/app/config"
	"github.com/ainews-tools/harvester/app/store"
)

const testListingHTML = `<html><body>
<div class="grid">
  <div class="card">
    <h2>Linked Article</h2>
    <p>Has a detail page.</p>
    <a href="/news/linked">Read more</a>
  </div>
  <div class="card">
    <h2>Unlinked Article</h2>
    <p>Summary only.</p>
  </div>
</div>
</body></html>`

const testDetailHTML = `<html><body>
<div id="content-blocks">
  <p>The full article body has quite a few words in it.</p>
</div>
</body></html>`

func testSelectors() config.Selectors {
	return config.Selectors{
		Container:   "div.grid",
		Block:       "div.card",
		Title:       "h2",
		Description: "p",
		Image:       "img",
		Timestamp:   "time",
		Link:        "a[href]",
		Content:     "#content-blocks",
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testListingHTML))
	})
	mux.HandleFunc("/news/linked", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testDetailHTML))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, sources ...config.Source) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		CSVPath:          filepath.Join(dir, "articles.csv"),
		JSONPath:         filepath.Join(dir, "articles.json"),
		Delay:            0,
		MaxRetries:       0,
		Timeout:          5 * time.Second,
		FetchFullContent: true,
		Sources:          sources,
	}
}

func TestRunEndToEnd(t *testing.T) {
	server := newTestServer(t)
	conf := testConfig(t, config.Source{
		Name:      "test",
		URL:       server.URL + "/",
		Type:      config.SourceTypeHTML,
		Selectors: testSelectors(),
	})

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	orchestrator := NewOrchestrator(conf, st, 2, "test-agent/1.0")

	summary, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected run to succeed, got: %v", err)
	}

	meta := summary.Metadata
	if meta.NewArticles != 2 || meta.DuplicatesRemoved != 0 {
		t.Errorf("Expected 2 new / 0 duplicates, got: %+v", meta)
	}

	snapshot := st.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("Expected exactly 2 stored records, got: %d", len(snapshot))
	}

	withContent := 0
	withoutContent := 0
	for _, a := range snapshot {
		if a.WordCount > 0 && a.HasFullContent {
			withContent++
		}
		if a.WordCount == 0 {
			withoutContent++
		}
	}
	if withContent != 1 || withoutContent != 1 {
		t.Errorf("Expected one full and one summary-only record, got: %d full, %d summary", withContent, withoutContent)
	}
}

func TestRunIdempotence(t *testing.T) {
	server := newTestServer(t)
	conf := testConfig(t, config.Source{
		Name:      "test",
		URL:       server.URL + "/",
		Selectors: testSelectors(),
	})

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	orchestrator := NewOrchestrator(conf, st, 1, "test-agent/1.0")

	first, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected first run to succeed, got: %v", err)
	}

	second, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected second run to succeed, got: %v", err)
	}

	if second.Metadata.NewArticles != 0 {
		t.Errorf("Expected 0 new articles on second run, got: %d", second.Metadata.NewArticles)
	}
	if second.Metadata.DuplicatesRemoved != first.Metadata.TotalArticles {
		t.Errorf("Expected duplicates equal to prior total (%d), got: %d",
			first.Metadata.TotalArticles, second.Metadata.DuplicatesRemoved)
	}
}

func TestRunPartialSourceIsolation(t *testing.T) {
	server := newTestServer(t)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	conf := testConfig(t,
		config.Source{Name: "one", URL: server.URL + "/", Selectors: testSelectors()},
		config.Source{Name: "two", URL: broken.URL + "/", Selectors: testSelectors()},
		config.Source{Name: "three", URL: server.URL + "/", Selectors: testSelectors()},
	)
	conf.FetchFullContent = false

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	orchestrator := NewOrchestrator(conf, st, 3, "test-agent/1.0")

	summary, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected run to succeed despite one bad source, got: %v", err)
	}

	states := map[string]SourceState{}
	for _, src := range summary.Sources {
		states[src.Name] = src.State
	}

	if states["one"] != StateDone || states["three"] != StateDone {
		t.Errorf("Expected sources one and three Done, got: %v", states)
	}
	if states["two"] != StateAborted {
		t.Errorf("Expected source two Aborted, got: %v", states["two"])
	}

	aborted := summary.Aborted()
	if len(aborted) != 1 || aborted[0] != "two" {
		t.Errorf("Expected aborted list [two], got: %v", aborted)
	}

	if st.Len() == 0 {
		t.Error("Expected records from the healthy sources")
	}
}

func TestRunAppliesFilters(t *testing.T) {
	server := newTestServer(t)
	conf := testConfig(t, config.Source{
		Name:      "test",
		URL:       server.URL + "/",
		Selectors: testSelectors(),
		Filters: []config.Filter{
			{Field: "title", Excludes: []string{"unlinked"}},
		},
	})
	conf.FetchFullContent = false

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	orchestrator := NewOrchestrator(conf, st, 1, "test-agent/1.0")

	summary, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected run to succeed, got: %v", err)
	}

	if summary.Metadata.NewArticles != 1 {
		t.Errorf("Expected 1 article after filtering, got: %d", summary.Metadata.NewArticles)
	}
	if summary.Sources[0].Filtered != 1 {
		t.Errorf("Expected 1 filtered record, got: %d", summary.Sources[0].Filtered)
	}
}

func TestRunCancelledBeforeMerge(t *testing.T) {
	server := newTestServer(t)
	conf := testConfig(t, config.Source{
		Name:      "test",
		URL:       server.URL + "/",
		Selectors: testSelectors(),
	})

	st := store.NewStore(conf.CSVPath, conf.JSONPath)
	orchestrator := NewOrchestrator(conf, st, 1, "test-agent/1.0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := orchestrator.Run(ctx); err == nil {
		t.Fatal("Expected error for canceled run")
	}
	if st.Len() != 0 {
		t.Error("Expected no records merged from a canceled run")
	}
}
