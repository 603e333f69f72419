// Package optimize recompresses placed JPEG and PNG files in place. It is
// strictly a post-placement, best-effort transform: failures downgrade to
// warnings and never revisit the placement decision.
package optimize

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// jpegQuality matches the de-facto "visually lossless" re-encode setting.
const jpegQuality = 95

var optimizableExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Optimizable reports whether path has a recompressible extension.
func Optimizable(path string) bool {
	return optimizableExts[strings.ToLower(filepath.Ext(path))]
}

// File re-encodes the image at path and replaces it only when the re-encoded
// form is smaller; otherwise the original is kept untouched. It returns the
// number of bytes saved (zero when the original was kept).
func File(path string) (int64, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !optimizableExts[ext] {
		return 0, fmt.Errorf("optimize %s: unsupported format", path)
	}

	img, err := decode(path, ext)
	if err != nil {
		return 0, fmt.Errorf("optimize %s: %w", path, err)
	}

	tmp := path + ".opt"
	if err := encode(tmp, ext, img); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("optimize %s: %w", path, err)
	}

	origInfo, err := os.Stat(path)
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("optimize %s: %w", path, err)
	}
	tmpInfo, err := os.Stat(tmp)
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("optimize %s: %w", path, err)
	}

	if tmpInfo.Size() >= origInfo.Size() {
		os.Remove(tmp)
		return 0, nil
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("optimize %s: %w", path, err)
	}
	return origInfo.Size() - tmpInfo.Size(), nil
}

func decode(path, ext string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext {
	case ".png":
		return png.Decode(f)
	default:
		return jpeg.Decode(f)
	}
}

func encode(path, ext string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch ext {
	case ".png":
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
