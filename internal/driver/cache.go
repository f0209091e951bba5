package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"nufmt/internal/config"
	"nufmt/internal/version"
)

// Current schema version - increment when CacheEntry format changes.
const cacheSchemaVersion uint16 = 1

// engineVersion входит в каждый отпечаток: записи прошлых версий не совпадут.
var engineVersion = version.Version

// Fingerprint identifies cfg under the running formatter version.
func Fingerprint(cfg config.Config) string {
	return engineVersion + "|" + cfg.Fingerprint()
}

// Digest is a SHA-256 sum.
type Digest [32]byte

// CacheKey identifies "this content under this config". The engine is
// deterministic, so a hit means the file is already formatted.
func CacheKey(fingerprint string, content []byte) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache records already-formatted content on disk, one msgpack file per
// key. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is the on-disk record.
type CacheEntry struct {
	Schema      uint16
	Fingerprint string
	Path        string // last path seen with this content, informational
	Size        int
	Stamp       int64 // unix seconds
}

// OpenDiskCache initializes a cache under $XDG_CACHE_HOME/app (or
// ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// первые два символа: подкаталог, чтобы не копить тысячи файлов в одном
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp")
}

// Put records key as formatted.
func (c *DiskCache) Put(key Digest, entry CacheEntry) error {
	if c == nil {
		return nil
	}
	entry.Schema = cacheSchemaVersion
	if entry.Stamp == 0 {
		entry.Stamp = time.Now().Unix()
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads the record for key. Entries of another schema or fingerprint
// count as misses.
func (c *DiskCache) Get(key Digest, fingerprint string) (CacheEntry, bool, error) {
	if c == nil {
		return CacheEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}
	defer f.Close()

	var entry CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return CacheEntry{}, false, err
	}
	if entry.Schema != cacheSchemaVersion || entry.Fingerprint != fingerprint {
		return CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
