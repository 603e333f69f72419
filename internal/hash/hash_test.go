package hash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestFingerprint_KnownVector(t *testing.T) {
	path := writeFile(t, t.TempDir(), "abc.bin", []byte("abc"))

	d, err := Fingerprint(path)
	require.NoError(t, err)

	// SHA-256("abc"), the FIPS 180-2 test vector.
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		d.String())
	assert.Equal(t, "ba7816bf8f01", d.Short())
}

func TestFingerprint_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.bin", nil)

	d, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		d.String())
}

func TestFingerprint_LargerThanChunk(t *testing.T) {
	// Force multiple read chunks; equal content must hash equal regardless
	// of size relative to the chunk buffer.
	content := make([]byte, chunkSize*3+17)
	for i := range content {
		content[i] = byte(i % 251)
	}
	dir := t.TempDir()
	a := writeFile(t, dir, "a.bin", content)
	b := writeFile(t, dir, "b.bin", content)

	da, err := Fingerprint(a)
	require.NoError(t, err)
	db, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestFingerprint_MissingFile(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "gone.jpg"))
	assert.Error(t, err)
}

func TestCache_HashesOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.bin", []byte("original"))

	c := NewCache()
	first, err := c.Fingerprint(path)
	require.NoError(t, err)

	// Rewrite the file; the cached digest must still be returned because a
	// destination file is hashed at most once per run.
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	second, err := c.Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCache_Put(t *testing.T) {
	c := NewCache()
	var d Digest
	d[0] = 0xab

	c.Put("/dest/2023/05/img.jpg", d)
	got, err := c.Fingerprint("/dest/2023/05/img.jpg")
	require.NoError(t, err, "primed entry must not touch the filesystem")
	assert.Equal(t, d, got)
}

func TestCache_ErrorNotCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.bin")

	c := NewCache()
	_, err := c.Fingerprint(path)
	require.Error(t, err)

	// File appears after the failed attempt; the next call must succeed.
	require.NoError(t, os.WriteFile(path, []byte("now"), 0o644))
	_, err = c.Fingerprint(path)
	assert.NoError(t, err)
}
