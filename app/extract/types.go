package extract

import "fmt"

// Kind classifies an extraction failure.
type Kind string

const (
	KindNoContentFound     Kind = "no_content_found"
	KindMalformedStructure Kind = "malformed_structure"
)

// Error is a recoverable extraction failure; the orchestrator degrades to
// a partial record instead of dropping data.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Reason)
}
