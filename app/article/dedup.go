package article

// Classification is the dedup engine's verdict for an incoming record
// against the stored record sharing its identity.
type Classification int

const (
	// New means no stored record shares the identity; append.
	New Classification = iota
	// DuplicateExact means the stored record already carries the same
	// data; the incoming record is discarded.
	DuplicateExact
	// UpdateCandidate means the incoming record brings a full body the
	// stored record lacks; the stored record is enriched in place.
	UpdateCandidate
)

func (c Classification) String() string {
	switch c {
	case New:
		return "new"
	case DuplicateExact:
		return "duplicate"
	case UpdateCandidate:
		return "update"
	default:
		return "unknown"
	}
}

// Classify compares an incoming record to the stored record with the same
// identity (nil when none exists). Records sharing an identity that differ
// only in summary text count as exact duplicates: the collection is keyed
// by identity and the first stored version wins.
func Classify(incoming Article, existing *Article) Classification {
	if existing == nil {
		return New
	}
	if incoming.HasFullContent && !existing.HasFullContent {
		return UpdateCandidate
	}
	return DuplicateExact
}
