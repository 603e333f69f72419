package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".tif":  true,
	".tiff": true,
	".nef":  true,
	".cr2":  true,
	".arw":  true,
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover walks every source directory, collects files with image
// extensions, prunes hidden directories and excluded path prefixes, and
// returns the paths sorted lexicographically for deterministic processing
// order. Sources that do not exist (or are not directories) are returned in
// missing rather than failing the run.
func Discover(sources, excludes []string) (files []string, missing []string, err error) {
	excludeAbs := absAll(excludes)

	for _, source := range sources {
		fi, serr := os.Stat(source)
		if serr != nil || !fi.IsDir() {
			missing = append(missing, source)
			continue
		}

		werr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != source {
					return filepath.SkipDir
				}
				if isExcluded(path, excludeAbs) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			if IsImage(path) {
				files = append(files, path)
			}
			return nil
		})
		if werr != nil {
			return nil, missing, werr
		}
	}

	sort.Strings(files)
	return files, missing, nil
}

// isExcluded reports whether path (made absolute) equals or sits under one
// of the excluded prefixes.
func isExcluded(path string, excludeAbs []string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	sep := string(filepath.Separator)
	for _, ex := range excludeAbs {
		if abs == ex || strings.HasPrefix(abs+sep, ex+sep) {
			return true
		}
	}
	return false
}
