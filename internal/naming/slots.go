package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumafold/snapsort/internal/exifdate"
)

// SlotSequence lazily generates the ordered candidate paths for one
// (destination, date, filename) key. Slot 0 is the original filename under
// <dest>/<year>/<month>/; slot k>0 inserts "_k" between stem and extension.
// The counter is strictly increasing, so repeated runs over the same
// destination tree probe candidates in the same order.
type SlotSequence struct {
	dir  string
	stem string
	ext  string
	next int
}

// Candidates returns the slot sequence for filename captured at date,
// rooted at destRoot. The sequence is conceptually infinite; callers stop
// at the first empty slot or content match.
func Candidates(destRoot string, date exifdate.CaptureDate, filename string) *SlotSequence {
	ext := filepath.Ext(filename)
	return &SlotSequence{
		dir:  filepath.Join(destRoot, date.String()),
		stem: strings.TrimSuffix(filename, ext),
		ext:  ext,
	}
}

// Next returns the next candidate path and advances the sequence.
func (s *SlotSequence) Next() string {
	k := s.next
	s.next++
	if k == 0 {
		return filepath.Join(s.dir, s.stem+s.ext)
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", s.stem, k, s.ext))
}

// Reset restarts the sequence at slot 0.
func (s *SlotSequence) Reset() { s.next = 0 }

// Dir returns the <dest>/<year>/<month> directory all slots share.
func (s *SlotSequence) Dir() string { return s.dir }

// EnsureDir creates the month directory if missing. It is idempotent and
// never errors when the directory already exists; callers invoke it lazily,
// just before the first write into the directory.
func (s *SlotSequence) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Key returns the serialization key shared by every file that can collide
// in this sequence: the month directory plus the filename. Two files with
// equal keys must never be probed concurrently.
func (s *SlotSequence) Key() string {
	return filepath.Join(s.dir, s.stem+s.ext)
}
