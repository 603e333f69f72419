package exifdate

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// EXIF datetime tags in priority order.
var exifTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// EXIF datetime layouts: plain, fractional seconds, and zone-suffixed.
var exifLayouts = []string{
	"2006:01:02 15:04:05",
	"2006:01:02 15:04:05.999999999",
	"2006:01:02 15:04:05-0700",
}

// exifDateTime extracts the capture time from EXIF metadata. Unreadable
// files, files without EXIF blocks, and unparsable tag values all report
// !ok so the caller falls through to the next source.
func exifDateTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	for _, name := range exifTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, ok := parseDateTime(value); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDateTime tries each accepted EXIF layout in order.
func parseDateTime(value string) (time.Time, bool) {
	for _, layout := range exifLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
