// Package hash computes SHA-256 content fingerprints for duplicate
// detection. Fingerprints are the sole duplicate criterion: two files are
// duplicates exactly when their digests are equal.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds memory per hashed file; files are streamed, never
// buffered whole.
const chunkSize = 32 * 1024

// Digest is a SHA-256 content fingerprint. It is a comparable value type so
// it can key maps and be compared with ==.
type Digest [sha256.Size]byte

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, for log output.
func (d Digest) Short() string {
	return d.String()[:12]
}

// Fingerprint streams the file at path through SHA-256 in fixed-size chunks
// and returns its digest. Any read failure is returned to the caller; it is
// never treated as "no duplicate".
func Fingerprint(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("fingerprint %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return Digest{}, fmt.Errorf("fingerprint %s: %w", path, err)
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}
