package exifdate

import (
	"path/filepath"
	"regexp"
	"time"
)

// datePatterns extract dates from camera filename conventions. Patterns are
// tried in order; first parseable match wins. Layouts use Go's reference
// time (Mon Jan 2 15:04:05 MST 2006).
var datePatterns = []struct {
	regex  *regexp.Regexp
	layout string
}{
	// DJI drone: DJI_20250619224111_0001_D.JPG
	{regexp.MustCompile(`DJI_(\d{8})`), "20060102"},

	// Generic timestamp: IMG_20250619_123456.jpg
	{regexp.MustCompile(`(\d{8})_\d{6}`), "20060102"},

	// ISO date: 2025-06-19_beach.jpg
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},

	// Compact date, last resort: 20250619_beach.jpg
	{regexp.MustCompile(`(\d{8})`), "20060102"},
}

// filenameDate parses a capture date out of the file's base name.
func filenameDate(path string) (time.Time, bool) {
	name := filepath.Base(path)
	for _, p := range datePatterns {
		matches := p.regex.FindStringSubmatch(name)
		if len(matches) < 2 {
			continue
		}
		t, err := time.Parse(p.layout, matches[1])
		if err != nil {
			continue
		}
		// Reject digit runs that parse but are not plausible dates
		// (e.g. serial numbers yielding year 0 or 9999).
		if t.Year() < 1900 || t.Year() > 2200 {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
