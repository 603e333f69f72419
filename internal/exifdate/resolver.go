// Package exifdate resolves the capture date of an image file. Sources are
// tried in a fixed order: EXIF metadata, then date-bearing filename
// patterns, then the file modification time. Resolution never fails a
// file; the final fallback always produces a date.
package exifdate

import (
	"fmt"
	"os"
	"time"
)

// CaptureDate is the (year, month) key a file is organized under.
type CaptureDate struct {
	Year  int
	Month time.Month
}

// String renders the date as the destination subpath, e.g. "2023/05".
func (d CaptureDate) String() string {
	return fmt.Sprintf("%04d/%02d", d.Year, int(d.Month))
}

// Source identifies which fallback step produced a date, for verbose logs.
type Source string

const (
	SourceEXIF     Source = "exif"
	SourceFilename Source = "filename"
	SourceModTime  Source = "mtime"
)

// Resolver resolves capture dates through an ordered chain of sources.
type Resolver struct {
	now func() time.Time // test seam for the last-resort fallback
}

// NewResolver returns a Resolver with the default EXIF → filename → mtime
// chain.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Resolve returns the capture date for path and the source that produced
// it. The mtime step only fails when the file cannot even be stat'd; in
// that case the current time is used so the caller never has to handle an
// ambiguous date. The eventual read error surfaces later, when the file is
// fingerprinted or copied.
func (r *Resolver) Resolve(path string) (CaptureDate, Source) {
	if t, ok := exifDateTime(path); ok {
		return fromTime(t), SourceEXIF
	}
	if t, ok := filenameDate(path); ok {
		return fromTime(t), SourceFilename
	}
	if fi, err := os.Stat(path); err == nil {
		return fromTime(fi.ModTime()), SourceModTime
	}
	return fromTime(r.now()), SourceModTime
}

func fromTime(t time.Time) CaptureDate {
	return CaptureDate{Year: t.Year(), Month: t.Month()}
}
