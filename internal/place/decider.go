package place

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/lumafold/snapsort/internal/hash"
	"github.com/lumafold/snapsort/internal/naming"
)

// Decider runs the placement state machine for candidate files. One Decider
// serves the whole run; it is safe for concurrent use because Process
// serializes decisions per destination key.
type Decider struct {
	move   bool
	dryRun bool
	cache  *hash.Cache
	locks  *KeyLocks

	// claimed tracks would-be placements during a dry run so later files
	// see consistent slot occupancy without any writes happening.
	mu      sync.Mutex
	claimed map[string]hash.Digest
}

// New creates a Decider. move selects move-vs-copy semantics; dryRun
// previews decisions without writing. cache is the run-wide destination
// digest cache.
func New(move, dryRun bool, cache *hash.Cache) *Decider {
	return &Decider{
		move:    move,
		dryRun:  dryRun,
		cache:   cache,
		locks:   NewKeyLocks(),
		claimed: make(map[string]hash.Digest),
	}
}

// Process decides and performs the placement of src against the candidate
// sequence in slots. It returns the terminal outcome, or a *Error
// classifying the failure. The source fingerprint is computed at most once,
// and only when a collision forces a comparison.
func (d *Decider) Process(src string, slots *naming.SlotSequence) (Outcome, error) {
	unlock := d.locks.Lock(slots.Key())
	defer unlock()

	fi, err := os.Stat(src)
	if err != nil {
		return Outcome{}, &Error{Kind: ErrRead, Path: src, Err: err}
	}
	size := fi.Size()

	// Lazy source fingerprint, computed at most once per file.
	var srcDigest hash.Digest
	var srcHashed bool
	fingerprintSrc := func() (hash.Digest, error) {
		if srcHashed {
			return srcDigest, nil
		}
		dg, err := hash.Fingerprint(src)
		if err != nil {
			return hash.Digest{}, &Error{Kind: ErrHash, Path: src, Err: err}
		}
		srcDigest, srcHashed = dg, true
		return dg, nil
	}

	slots.Reset()
	for k := 0; ; k++ {
		target := slots.Next()

		targetDigest, occupied, err := d.probe(target)
		if err != nil {
			return Outcome{}, err
		}

		if !occupied {
			kind := NewFile
			if k > 0 {
				kind = RenamedCopy
			}
			if d.dryRun {
				dg, err := fingerprintSrc()
				if err != nil {
					return Outcome{}, err
				}
				d.mu.Lock()
				d.claimed[target] = dg
				d.mu.Unlock()
				return Outcome{Kind: kind, Path: target, Bytes: size, Slot: k}, nil
			}

			if err := slots.EnsureDir(); err != nil {
				return Outcome{}, &Error{Kind: ErrWrite, Path: slots.Dir(), Err: err}
			}
			var perr *Error
			if d.move {
				perr = moveFile(src, target)
			} else {
				perr = copyFile(src, target)
			}
			if perr != nil {
				return Outcome{}, perr
			}
			// When the digest is already known, prime the cache so same-run
			// duplicates of this file skip without re-reading it from disk.
			if srcHashed {
				d.cache.Put(target, srcDigest)
			}
			return Outcome{Kind: kind, Path: target, Bytes: size, Slot: k}, nil
		}

		sd, err := fingerprintSrc()
		if err != nil {
			return Outcome{}, err
		}
		if sd == targetDigest {
			// Identical content already placed; zero writes.
			return Outcome{Kind: SkippedDuplicate, Path: target, Bytes: size, Slot: k}, nil
		}
		// Differing content: probe the next disambiguated slot.
	}
}

// probe reports whether target is occupied and, if so, its content digest
// (from the per-run cache, or the dry-run claim table). A stat failure
// other than "does not exist" aborts the file: the comparison cannot be
// carried out, and the file must not be silently treated as new.
func (d *Decider) probe(target string) (hash.Digest, bool, error) {
	d.mu.Lock()
	dg, claimed := d.claimed[target]
	d.mu.Unlock()
	if claimed {
		return dg, true, nil
	}

	if _, err := os.Lstat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return hash.Digest{}, false, nil
		}
		return hash.Digest{}, false, &Error{Kind: ErrHash, Path: target, Err: err}
	}

	dg, err := d.cache.Fingerprint(target)
	if err != nil {
		return hash.Digest{}, false, &Error{Kind: ErrHash, Path: target, Err: err}
	}
	return dg, true, nil
}
