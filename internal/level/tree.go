// Package level reads declarative scene descriptions and materializes them
// into entity buckets. Documents are parsed into a format-neutral Tree, so
// TOML and YAML levels go through the same materializer.
package level

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
)

var (
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("level: missing field")

	// ErrWrongType is returned when a field holds a value of the wrong type.
	ErrWrongType = errors.New("level: wrong type")

	// ErrUnsupportedFormat is returned for unknown document formats.
	ErrUnsupportedFormat = errors.New("level: unsupported format")
)

// Tree is a parsed level document.
type Tree struct {
	Name   string
	Format string
	Root   Node
}

// Empty returns a level with no records. It stands in for a level that
// could not be read, so the world still comes up.
func Empty(name string) *Tree {
	return &Tree{Name: name, Root: NewNode(map[string]any{})}
}

// Node is one value of a parsed document: a table, an array or a scalar.
type Node struct {
	v any
}

// NewNode wraps a decoded value, normalising map and slice types.
func NewNode(v any) Node {
	return Node{v: normalize(v)}
}

// Value returns the underlying value.
func (n Node) Value() any { return n.v }

// IsTable reports whether the node is a key/value table.
func (n Node) IsTable() bool {
	_, ok := n.v.(map[string]any)
	return ok
}

// IsArray reports whether the node is an array.
func (n Node) IsArray() bool {
	_, ok := n.v.([]any)
	return ok
}

// Keys returns the table keys in sorted order.
func (n Node) Keys() []string {
	m, _ := n.v.(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the child at key.
func (n Node) Get(key string) (Node, bool) {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Node{}, false
	}
	v, ok := m[key]
	if !ok {
		return Node{}, false
	}
	return Node{v: v}, true
}

// Has reports whether the table has key.
func (n Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Items returns the elements of an array node.
func (n Node) Items() []Node {
	arr, _ := n.v.([]any)
	items := make([]Node, len(arr))
	for i, v := range arr {
		items[i] = Node{v: v}
	}
	return items
}

// AsFloat converts a numeric scalar. Integers widen to float.
func (n Node) AsFloat() (float64, error) {
	switch v := n.v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", ErrWrongType, n.v)
	}
}

// AsBool converts a boolean scalar.
func (n Node) AsBool() (bool, error) {
	b, ok := n.v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %T is not a bool", ErrWrongType, n.v)
	}
	return b, nil
}

// AsString converts a string scalar.
func (n Node) AsString() (string, error) {
	s, ok := n.v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T is not a string", ErrWrongType, n.v)
	}
	return s, nil
}

// AsColor converts an array of 3 or 4 channels in 0..255. Missing alpha is
// opaque.
func (n Node) AsColor() (color.RGBA, error) {
	if !n.IsArray() {
		return color.RGBA{}, fmt.Errorf("%w: %T is not a colour array", ErrWrongType, n.v)
	}
	items := n.Items()
	if len(items) != 3 && len(items) != 4 {
		return color.RGBA{}, fmt.Errorf("%w: colour needs 3 or 4 channels, got %d", ErrWrongType, len(items))
	}

	ch := [4]uint8{0, 0, 0, 255}
	for i, it := range items {
		f, err := it.AsFloat()
		if err != nil {
			return color.RGBA{}, fmt.Errorf("channel %d: %w", i, err)
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, f))))
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// Float returns the number at key.
func (n Node) Float(key string) (float64, error) {
	c, ok := n.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	f, err := c.AsFloat()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// FloatOr returns the number at key, or def when key is absent.
func (n Node) FloatOr(key string, def float64) (float64, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.Float(key)
}

// BoolOr returns the boolean at key, or def when key is absent.
func (n Node) BoolOr(key string, def bool) (bool, error) {
	c, ok := n.Get(key)
	if !ok {
		return def, nil
	}
	b, err := c.AsBool()
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// StringOr returns the string at key, or def when key is absent.
func (n Node) StringOr(key, def string) (string, error) {
	c, ok := n.Get(key)
	if !ok {
		return def, nil
	}
	s, err := c.AsString()
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}

// ColorOr returns the colour at key, or def when key is absent.
func (n Node) ColorOr(key string, def color.RGBA) (color.RGBA, error) {
	c, ok := n.Get(key)
	if !ok {
		return def, nil
	}
	col, err := c.AsColor()
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return col, nil
}

// normalize rewrites decoder-specific containers into map[string]any and
// []any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, c := range t {
			out[k] = normalize(c)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, c := range t {
			out[fmt.Sprint(k)] = normalize(c)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = normalize(c)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = normalize(c)
		}
		return out
	default:
		return v
	}
}
