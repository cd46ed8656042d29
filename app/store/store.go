package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ainews-tools/harvester/app/article"
)

// Store holds the authoritative collection in memory during a run and is
// the sole writer of the two durable encodings. Concurrent runs against
// the same storage location are not supported and must be serialized
// externally.
type Store struct {
	csvPath  string
	jsonPath string
	articles map[article.Key]*article.Article

	// writeFile stages one encoding to a temporary path. Tests swap it
	// out to inject failures between the two writes.
	writeFile func(path string, data []byte) error
}

func NewStore(csvPath, jsonPath string) *Store {
	return &Store{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		articles: make(map[article.Key]*article.Article),
		writeFile: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0644)
		},
	}
}

// Load reads the persisted collection into memory. The JSON document is
// preferred since it round-trips every field; the CSV is the fallback for
// datasets written before the JSON encoding existed. Only a missing file
// means an empty collection; any other read failure is surfaced, since
// merging and persisting on top of an unreadable collection would shrink
// the durable state.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.jsonPath)
	if err == nil {
		articles, err := decodeJSON(data)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", s.jsonPath, err)
		}
		s.reset(articles)
		slog.Debug("Loaded collection", "path", s.jsonPath, "articles", len(s.articles))
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", s.jsonPath, err)
	}

	data, err = os.ReadFile(s.csvPath)
	if err == nil {
		articles, err := decodeCSV(data)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", s.csvPath, err)
		}
		s.reset(articles)
		slog.Debug("Loaded collection", "path", s.csvPath, "articles", len(s.articles))
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", s.csvPath, err)
	}

	return nil
}

func (s *Store) reset(articles []article.Article) {
	s.articles = make(map[article.Key]*article.Article, len(articles))
	for i := range articles {
		a := articles[i]
		a.Normalize()
		if err := a.Validate(); err != nil {
			slog.Warn("Dropping invalid stored record", "error", err)
			continue
		}
		s.articles[article.Identity(a)] = &a
	}
}

// Merge applies the dedup classification to every record in the batch.
// The collection only grows; records are enriched in place, never removed.
// Merge is single-threaded by design and must not run concurrently with
// itself or Snapshot.
func (s *Store) Merge(batch []article.Article) RunMetadata {
	meta := RunMetadata{LastUpdated: time.Now()}

	for _, incoming := range batch {
		incoming.Normalize()
		if err := incoming.Validate(); err != nil {
			slog.Warn("Dropping invalid record", "error", err)
			continue
		}

		key := article.Identity(incoming)
		existing := s.articles[key]

		switch article.Classify(incoming, existing) {
		case article.New:
			stored := incoming
			s.articles[key] = &stored
			meta.NewArticles++
		case article.UpdateCandidate:
			existing.SetLongDescription(incoming.LongDescription)
			meta.UpdatedArticles++
		case article.DuplicateExact:
			meta.DuplicatesRemoved++
		}
	}

	meta.TotalArticles = len(s.articles)
	return meta
}

// Snapshot returns the collection ordered by scraped_at descending, the
// display order shared by both encodings and the dashboard.
func (s *Store) Snapshot() []article.Article {
	snapshot := make([]article.Article, 0, len(s.articles))
	for _, a := range s.articles {
		snapshot = append(snapshot, *a)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		if !snapshot[i].ScrapedAt.Equal(snapshot[j].ScrapedAt) {
			return snapshot[i].ScrapedAt.After(snapshot[j].ScrapedAt)
		}
		return snapshot[i].Title < snapshot[j].Title
	})
	return snapshot
}

// Len returns the current collection size.
func (s *Store) Len() int {
	return len(s.articles)
}

// Persist writes both encodings from the same in-memory snapshot. Both
// temporary files are staged before either rename, so a failure writing
// either encoding leaves the prior durable state untouched.
func (s *Store) Persist(meta RunMetadata) error {
	snapshot := s.Snapshot()

	csvData, err := encodeCSV(snapshot)
	if err != nil {
		return &PersistError{Op: "encode", Path: s.csvPath, Err: err}
	}
	jsonData, err := encodeJSON(snapshot, meta)
	if err != nil {
		return &PersistError{Op: "encode", Path: s.jsonPath, Err: err}
	}

	for _, path := range []string{s.csvPath, s.jsonPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return &PersistError{Op: "mkdir", Path: dir, Err: err}
			}
		}
	}

	csvTmp := s.csvPath + ".tmp"
	jsonTmp := s.jsonPath + ".tmp"

	if err := s.writeFile(csvTmp, csvData); err != nil {
		os.Remove(csvTmp)
		return &PersistError{Op: "write", Path: csvTmp, Err: err}
	}
	if err := s.writeFile(jsonTmp, jsonData); err != nil {
		os.Remove(csvTmp)
		os.Remove(jsonTmp)
		return &PersistError{Op: "write", Path: jsonTmp, Err: err}
	}

	// Both encodings are staged before either rename, so a write failure
	// cannot touch the durable state. The two renames themselves are not
	// atomic as a pair: if the second fails, the CSV is one run ahead of
	// the JSON until the next successful persist. Load prefers the JSON,
	// so readers see the older consistent snapshot in that window.
	if err := os.Rename(csvTmp, s.csvPath); err != nil {
		os.Remove(csvTmp)
		os.Remove(jsonTmp)
		return &PersistError{Op: "rename", Path: s.csvPath, Err: err}
	}
	if err := os.Rename(jsonTmp, s.jsonPath); err != nil {
		os.Remove(jsonTmp)
		return &PersistError{Op: "rename", Path: s.jsonPath, Err: err}
	}

	slog.Info("Collection persisted",
		"csv", s.csvPath,
		"json", s.jsonPath,
		"total", meta.TotalArticles,
		"new", meta.NewArticles,
		"duplicates", meta.DuplicatesRemoved,
		"updated", meta.UpdatedArticles)

	return nil
}
