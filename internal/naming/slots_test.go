package naming

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumafold/snapsort/internal/exifdate"
)

var may2023 = exifdate.CaptureDate{Year: 2023, Month: time.May}

func TestCandidates_SlotOrder(t *testing.T) {
	s := Candidates("/library", may2023, "img.jpg")

	assert.Equal(t, filepath.Join("/library", "2023", "05", "img.jpg"), s.Next())
	assert.Equal(t, filepath.Join("/library", "2023", "05", "img_1.jpg"), s.Next())
	assert.Equal(t, filepath.Join("/library", "2023", "05", "img_2.jpg"), s.Next())
}

func TestCandidates_Deterministic(t *testing.T) {
	a := Candidates("/library", may2023, "img.jpg")
	b := Candidates("/library", may2023, "img.jpg")
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Next(), b.Next(), "slot %d", i)
	}
}

func TestCandidates_Reset(t *testing.T) {
	s := Candidates("/library", may2023, "img.jpg")
	first := s.Next()
	s.Next()
	s.Reset()
	assert.Equal(t, first, s.Next())
}

func TestCandidates_NoExtension(t *testing.T) {
	s := Candidates("/library", may2023, "scan0001")
	assert.Equal(t, filepath.Join("/library", "2023", "05", "scan0001"), s.Next())
	assert.Equal(t, filepath.Join("/library", "2023", "05", "scan0001_1"), s.Next())
}

func TestCandidates_DottedStem(t *testing.T) {
	// Only the final extension moves; earlier dots stay in the stem.
	s := Candidates("/library", may2023, "trip.day2.jpg")
	assert.Equal(t, filepath.Join("/library", "2023", "05", "trip.day2.jpg"), s.Next())
	assert.Equal(t, filepath.Join("/library", "2023", "05", "trip.day2_1.jpg"), s.Next())
}

func TestCandidates_ZeroPaddedMonth(t *testing.T) {
	s := Candidates("/library", exifdate.CaptureDate{Year: 2021, Month: time.January}, "a.png")
	assert.Equal(t, filepath.Join("/library", "2021", "01"), s.Dir())
}

func TestKey_SharedByColliders(t *testing.T) {
	a := Candidates("/library", may2023, "img.jpg")
	b := Candidates("/library", may2023, "img.jpg")
	c := Candidates("/library", may2023, "img.png")
	d := Candidates("/library", exifdate.CaptureDate{Year: 2023, Month: time.June}, "img.jpg")

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key(), "different extension should not share a key")
	assert.NotEqual(t, a.Key(), d.Key(), "different month must not share a key")
}

func TestEnsureDir_Idempotent(t *testing.T) {
	root := t.TempDir()
	s := Candidates(root, may2023, "img.jpg")

	require.NoError(t, s.EnsureDir())
	fi, err := os.Stat(filepath.Join(root, "2023", "05"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	// Second call must not error.
	assert.NoError(t, s.EnsureDir())
}
