package level

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile reads and parses a level from disk.
func LoadFile(path string) (*Tree, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading %s: %w", path, err)
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	t.Name = nameOf(path)
	return t, nil
}

// LoadFS reads and parses a level from fsys.
func LoadFS(fsys fs.FS, path string) (*Tree, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("level: reading %s: %w", path, err)
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	t.Name = nameOf(path)
	return t, nil
}

// Loader finds level files under a directory.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// List returns the paths of all level files under Root, sorted.
func (l *Loader) List() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ferr := FormatForPath(path); ferr != nil {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadByName loads the level whose file name without extension is name.
func (l *Loader) LoadByName(name string) (*Tree, error) {
	paths, err := l.List()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if nameOf(p) == name {
			return LoadFile(p)
		}
	}
	return nil, fmt.Errorf("level not found: %s", name)
}

func nameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
