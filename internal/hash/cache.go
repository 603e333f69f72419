package hash

import "sync"

// Cache memoizes digests by path for the duration of one run, so a
// destination file is never hashed twice. It is goroutine-safe; hashing
// itself happens outside the lock so slow reads don't serialize workers.
// No entry survives the run: there is no on-disk index.
type Cache struct {
	mu      sync.Mutex
	digests map[string]Digest
}

// NewCache returns an empty per-run digest cache.
func NewCache() *Cache {
	return &Cache{digests: make(map[string]Digest)}
}

// Fingerprint returns the cached digest for path, computing and storing it
// on first use. Errors are not cached: a failed read is retried on the next
// call.
func (c *Cache) Fingerprint(path string) (Digest, error) {
	c.mu.Lock()
	d, ok := c.digests[path]
	c.mu.Unlock()
	if ok {
		return d, nil
	}

	d, err := Fingerprint(path)
	if err != nil {
		return Digest{}, err
	}
	c.Put(path, d)
	return d, nil
}

// Put records a known digest for path, e.g. right after a file has been
// written whose content digest was already computed from the source.
func (c *Cache) Put(path string, d Digest) {
	c.mu.Lock()
	c.digests[path] = d
	c.mu.Unlock()
}
