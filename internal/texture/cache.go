package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hookshot/internal/core"
)

// ErrNotFound is returned when a path resolves to neither a file nor a
// built-in texture.
var ErrNotFound = errors.New("texture: not found")

// Cache memoises decoded textures by path. Paths are resolved against fsys
// first and then against the built-in procedural textures. A nil fsys
// serves built-ins only.
type Cache struct {
	fsys   fs.FS
	logger *log.Logger

	mu      sync.Mutex
	entries map[string]*Texture
}

// NewCache creates a cache over fsys.
func NewCache(fsys fs.FS, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{
		fsys:    fsys,
		logger:  logger,
		entries: make(map[string]*Texture),
	}
}

// Load returns the texture at p, decoding it on first use.
func (c *Cache) Load(p string) (core.Texture, error) {
	t, err := c.Get(p)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Get is Load with the concrete type.
func (c *Cache) Get(p string) (*Texture, error) {
	key := path.Clean(p)

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.entries[key]; ok {
		return t, nil
	}

	img, err := c.decode(key)
	if err != nil {
		return nil, err
	}
	t := New(key, img)
	c.entries[key] = t
	c.logger.Debug("texture loaded", "path", key, "size", t.Size())
	return t, nil
}

// Len returns the number of memoised textures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) decode(key string) (image.Image, error) {
	if c.fsys != nil {
		f, err := c.fsys.Open(key)
		switch {
		case err == nil:
			defer f.Close()
			img, _, derr := image.Decode(f)
			if derr != nil {
				return nil, fmt.Errorf("texture: decode %s: %w", key, derr)
			}
			return img, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("texture: open %s: %w", key, err)
		}
	}

	if img, ok := procedural(key); ok {
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}
