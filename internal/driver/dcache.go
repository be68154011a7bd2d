package driver

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version of CheckPayload; bump whenever the format changes so stale
// entries invalidate themselves.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies file content (sha256).
type Digest = [32]byte

// DiskCache remembers check outcomes per content digest, so re-checking an
// unchanged file skips the parse entirely. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CheckPayload is the cached outcome of checking one file.
type CheckPayload struct {
	Schema uint16

	Path        string
	ContentHash Digest

	// Diagnostic summary. Full diagnostics are recomputed on demand; the
	// cache only answers "was this clean".
	DiagCount  int
	ErrorCount int
	Codes      []uint16
}

// OpenDiskCache initializes a disk cache under the user cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes payload under key. The write is atomic: temp file plus
// rename.
func (c *DiskCache) Put(key Digest, payload *CheckPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		os.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}

// Get loads the payload for key. Returns false on a miss or when the entry
// was written by a different schema version.
func (c *DiskCache) Get(key Digest, out *CheckPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, nil // corrupted entry counts as a miss
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}
