package icon

import (
	"sync"

	"github.com/mitchellh/hashstructure"
	"github.com/spf13/afero"
)

// Resolve is the interface Cache wraps.
type Resolve interface {
	Resolve(path string) Outcome
}

type cacheKey struct {
	Path    string
	Size    int64
	ModTime int64
}

// Cache memoises outcomes per file version so rebuilding an unchanged menu
// does not repeat platform calls. A file that cannot be stat'ed is resolved
// without caching. Only the shortcut's own size and mtime are keyed, so a
// new icon in the target shows only once the shortcut itself changes.
type Cache struct {
	Fs       afero.Fs
	Resolver Resolve

	mu      sync.Mutex
	entries map[uint64]Outcome
	used    map[uint64]bool
}

func NewCache(fs afero.Fs, r Resolve) *Cache {
	return &Cache{
		Fs:       fs,
		Resolver: r,
		entries:  make(map[uint64]Outcome),
		used:     make(map[uint64]bool),
	}
}

func (c *Cache) Resolve(path string) Outcome {
	fi, err := c.Fs.Stat(path)
	if err != nil {
		return c.Resolver.Resolve(path)
	}
	key, err := hashstructure.Hash(cacheKey{
		Path:    path,
		Size:    fi.Size(),
		ModTime: fi.ModTime().UnixNano(),
	}, nil)
	if err != nil {
		return c.Resolver.Resolve(path)
	}

	c.mu.Lock()
	out, ok := c.entries[key]
	if ok {
		c.used[key] = true
		c.mu.Unlock()
		return out
	}
	c.mu.Unlock()

	out = c.Resolver.Resolve(path)

	c.mu.Lock()
	c.entries[key] = out
	c.used[key] = true
	c.mu.Unlock()
	return out
}

// Prune drops every entry not resolved since the previous Prune.
func (c *Cache) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if !c.used[key] {
			delete(c.entries, key)
		}
	}
	c.used = make(map[uint64]bool)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
