package level

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatExtensions returns the file extensions levels may use.
func FormatExtensions() []string {
	return []string{".toml", ".yaml", ".yml"}
}

// FormatForPath maps a file name to its format.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes a document in the given format.
func Parse(data []byte, format string) (*Tree, error) {
	switch format {
	case FormatTOML:
		return ParseTOML(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParseTOML decodes a TOML level.
func ParseTOML(data []byte) (*Tree, error) {
	root := map[string]any{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("level: toml: %w", err)
	}
	return &Tree{Format: FormatTOML, Root: NewNode(root)}, nil
}

// ParseYAML decodes a YAML level. An empty document is an empty level.
func ParseYAML(data []byte) (*Tree, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("level: yaml: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	n := NewNode(root)
	if !n.IsTable() {
		return nil, fmt.Errorf("level: yaml: document root is %T, expected a mapping", root)
	}
	return &Tree{Format: FormatYAML, Root: n}, nil
}
