// Package place implements the placement decision for one candidate file:
// probe the destination slot sequence, detect duplicates by content
// fingerprint, and either place the file, skip it, or place it under a
// disambiguated name. Exactly one filesystem write happens on a placement;
// none on a skip.
package place

// Kind classifies the terminal decision for one processed file.
type Kind string

const (
	// NewFile means the file was placed at slot 0 (no collision).
	NewFile Kind = "new"
	// SkippedDuplicate means an already-placed file has identical content;
	// nothing was written.
	SkippedDuplicate Kind = "duplicate"
	// RenamedCopy means a same-named file with different content occupied
	// earlier slots, so the file was placed under a disambiguated name.
	RenamedCopy Kind = "renamed"
)

// Outcome is the per-file result the orchestrator aggregates. Path is the
// final written path, or the existing path for SkippedDuplicate. Slot is
// the candidate index the decision terminated at.
type Outcome struct {
	Kind  Kind
	Path  string
	Bytes int64
	Slot  int
}
