package pipeline

import (
	"time"

	"github.com/ainews-tools/harvester/app/store"
)

// SourceState tracks a source through the per-source state machine.
type SourceState string

const (
	StateIdle              SourceState = "idle"
	StateFetchingListing   SourceState = "fetching_listing"
	StateExtractingListing SourceState = "extracting_listing"
	StateFetchingDetail    SourceState = "fetching_detail"
	StateExtractingDetail  SourceState = "extracting_detail"
	StateMerging           SourceState = "merging"
	StateDone              SourceState = "done"
	StateAborted           SourceState = "aborted"
)

// SourceResult is the per-source outcome reported in the run summary.
type SourceResult struct {
	Name     string
	State    SourceState
	Articles int
	Details  int
	Filtered int
	Err      error
}

// RunSummary is the final observable output of a pipeline run.
type RunSummary struct {
	Metadata store.RunMetadata
	Sources  []SourceResult
	Duration time.Duration
}

// Aborted lists the names of sources that did not complete.
func (s *RunSummary) Aborted() []string {
	var names []string
	for _, src := range s.Sources {
		if src.State == StateAborted {
			names = append(names, src.Name)
		}
	}
	return names
}
