package place

import "fmt"

// ErrorKind separates the three per-file failure classes. All are non-fatal
// to the run: the orchestrator records the file as failed and continues.
type ErrorKind string

const (
	// ErrRead: the source file is unreadable or vanished mid-run.
	ErrRead ErrorKind = "read"
	// ErrWrite: the destination write failed (disk full, permissions).
	ErrWrite ErrorKind = "write"
	// ErrHash: either side could not be read while comparing fingerprints.
	ErrHash ErrorKind = "hash"
)

// Error is a per-file placement failure carrying its class and the path it
// concerns.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
