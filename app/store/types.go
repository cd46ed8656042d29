package store

import (
	"fmt"
	"time"
)

// RunMetadata summarizes one merge; it is regenerated fully on every run.
type RunMetadata struct {
	TotalArticles     int
	NewArticles       int
	DuplicatesRemoved int
	UpdatedArticles   int
	LastUpdated       time.Time
	Source            string
}

// PersistError is fatal for the run: no partial writes are committed and
// the prior durable state remains valid.
type PersistError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist failed (%s %s): %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
