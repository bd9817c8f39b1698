// Package registry provides a global registry of playable levels.
// The built-in levels are embedded in the binary and register themselves
// in init(), so platforms can list and open levels without knowing where
// they come from.
package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/hookshot/internal/level"
)

//go:embed levels
var builtin embed.FS

// Source produces a fresh level tree each time it is called.
type Source func() (*level.Tree, error)

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID      string
	Title   string
	BuiltIn bool
}

type entry struct {
	info LevelInfo
	src  Source
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

func init() {
	files, err := fs.Glob(builtin, "levels/*")
	if err != nil {
		panic(fmt.Sprintf("registry: listing built-in levels: %v", err))
	}
	for _, name := range files {
		if _, err := level.FormatForPath(name); err != nil {
			continue
		}
		file := name
		id := strings.TrimSuffix(path.Base(file), path.Ext(file))
		register(LevelInfo{ID: id, Title: titleOf(id), BuiltIn: true}, func() (*level.Tree, error) {
			return level.LoadFS(builtin, file)
		})
	}
}

// Register adds a level source to the registry.
// Panics if a level with the same ID is already registered.
func Register(id, title string, src Source) {
	register(LevelInfo{ID: id, Title: title}, src)
}

func register(info LevelInfo, src Source) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, src: src}
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Load parses the level registered under id.
func Load(id string) (*level.Tree, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}
	t, err := e.src()
	if err != nil {
		return nil, fmt.Errorf("registry: level %q: %w", id, err)
	}
	if t.Name == "" {
		t.Name = id
	}
	return t, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Resolve opens a registered level by ID, or a level file when ref has a
// level file extension.
func Resolve(ref string) (*level.Tree, error) {
	if _, err := level.FormatForPath(ref); err == nil && !Exists(ref) {
		return level.LoadFile(ref)
	}
	return Load(ref)
}

func titleOf(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}
