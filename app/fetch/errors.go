package fetch

import "fmt"

// Kind classifies a fetch failure after retries are exhausted.
type Kind string

const (
	KindUnreachable Kind = "unreachable"
	KindTimeout     Kind = "timeout"
	KindHTTPStatus  Kind = "http_status"
)

// Error is the typed result of a failed fetch. It is returned only after
// the retry budget is spent; transient failures never surface directly.
type Error struct {
	Kind     Kind
	URL      string
	Status   int
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("fetch %s failed after %d attempts: HTTP %d", e.URL, e.Attempts, e.Status)
	}
	return fmt.Sprintf("fetch %s failed after %d attempts: %s: %v", e.URL, e.Attempts, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
