// Package entity holds the sandbox's entity bookkeeping: generational
// identifiers, the entity record and the behavior hooks bound to it.
package entity

import "fmt"

// InvalidIndex is the slot index of the invalid identifier.
const InvalidIndex uint32 = 0xFFFFFFFF

// ID identifies an entity by slot index and generation. Generation 0 is
// never alive; the zero-generation Invalid value is the null reference.
type ID struct {
	Index      uint32
	Generation uint32
}

// Invalid is the null identifier.
var Invalid = ID{Index: InvalidIndex}

// Valid reports whether the identifier refers to a slot at all. It says
// nothing about liveness; ask the Registry for that.
func (id ID) Valid() bool {
	return id.Index != InvalidIndex
}

// String renders the identifier for logs.
func (id ID) String() string {
	if !id.Valid() {
		return "entity(invalid)"
	}
	return fmt.Sprintf("entity(%d:%d)", id.Index, id.Generation)
}

// Registry issues identifiers with O(1) create, destroy and liveness checks.
// Freed slots are recycled with a bumped generation, so stale identifiers
// never come back to life. Not safe for concurrent use; the sandbox loop
// owns it.
type Registry struct {
	generations []uint32
	free        []uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Reserve grows the slot table to at least n slots. Reserved slots carry
// generation 0 and are dead until issued.
func (r *Registry) Reserve(n int) {
	for len(r.generations) < n {
		r.generations = append(r.generations, 0)
	}
}

// Create returns a fresh identifier, reusing a freed slot when one exists.
func (r *Registry) Create() ID {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		return ID{Index: idx, Generation: r.generations[idx]}
	}

	idx := uint32(len(r.generations))
	r.generations = append(r.generations, 1)
	return ID{Index: idx, Generation: 1}
}

// Destroy invalidates id and frees its slot. Destroying a dead or stale
// identifier is a no-op.
func (r *Registry) Destroy(id ID) {
	if !r.IsAlive(id) {
		return
	}
	r.generations[id.Index] = nextGeneration(r.generations[id.Index])
	r.free = append(r.free, id.Index)
}

// IsAlive reports whether id matches the current generation of its slot.
func (r *Registry) IsAlive(id ID) bool {
	if id.Generation == 0 || int64(id.Index) >= int64(len(r.generations)) {
		return false
	}
	return r.generations[id.Index] == id.Generation
}

// Capacity returns the number of allocated slots, alive or not.
func (r *Registry) Capacity() int {
	return len(r.generations)
}

// FreeCount returns the number of slots waiting for reuse.
func (r *Registry) FreeCount() int {
	return len(r.free)
}

// nextGeneration increments g, wrapping past 0.
func nextGeneration(g uint32) uint32 {
	g++
	if g == 0 {
		g++
	}
	return g
}
