package optimize

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	return img
}

func TestOptimizable(t *testing.T) {
	assert.True(t, Optimizable("/p/img.jpg"))
	assert.True(t, Optimizable("/p/IMG.JPEG"))
	assert.True(t, Optimizable("/p/shot.png"))
	assert.False(t, Optimizable("/p/raw.nef"))
	assert.False(t, Optimizable("/p/scan.tiff"))
}

func TestFile_ShrinksUncompressedPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.png")

	// Store with no compression so the best-compression re-encode is
	// guaranteed to be smaller.
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.NoCompression}
	require.NoError(t, enc.Encode(&buf, flatImage()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	before := int64(buf.Len())

	saved, err := File(path)
	require.NoError(t, err)
	assert.Positive(t, saved)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before-saved, fi.Size())

	// Result must still decode as a PNG.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestFile_KeepsSmallerOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.png")

	// Already best-compressed: the re-encode cannot beat it, so the
	// original must be kept and the temp file cleaned up.
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	require.NoError(t, enc.Encode(&buf, flatImage()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	saved, err := File(path)
	require.NoError(t, err)
	assert.Zero(t, saved)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), fi.Size())

	_, err = os.Stat(path + ".opt")
	assert.Error(t, err, "temp file must not be left behind")
}

func TestFile_JPEGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.jpg")

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, flatImage(), &jpeg.Options{Quality: 100}))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := File(path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = jpeg.Decode(f)
	assert.NoError(t, err)
}

func TestFile_CorruptInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a jpeg"), 0o644))

	_, err := File(path)
	assert.Error(t, err)

	// The broken file is left as placed; optimize never destroys data.
	got, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, []byte("not a jpeg"), got)
}

func TestFile_UnsupportedExtension(t *testing.T) {
	_, err := File("/p/raw.nef")
	assert.Error(t, err)
}
