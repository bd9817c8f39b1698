// Package physics wraps the Chipmunk2D port (github.com/jakecoffman/cp) behind
// the small surface the sandbox needs: a world, box bodies, and distance and
// revolute joints with spring parameters. All values are in meters,
// kilograms and seconds, with +y pointing down.
package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// Vec2 is a vector in meters.
type Vec2 = cp.Vector

var (
	// ErrInvalidShape is returned for shapes with non-positive size or mass.
	ErrInvalidShape = errors.New("physics: invalid shape")

	// ErrBodyDestroyed is returned when a destroyed body is used.
	ErrBodyDestroyed = errors.New("physics: body destroyed")
)

// Config describes a world at creation time.
type Config struct {
	Gravity       Vec2    // m/s²
	SubSteps      int     // solver sub-steps per Step call
	Iterations    int     // solver iterations per sub-step
	CollisionSlop float64 // allowed penetration in meters
}

// DefaultConfig returns earth gravity with four sub-steps.
func DefaultConfig() Config {
	return Config{
		Gravity:       Vec2{X: 0, Y: 9.8},
		SubSteps:      4,
		Iterations:    10,
		CollisionSlop: 0.005,
	}
}

// World owns a cp.Space and every body and joint created in it.
type World struct {
	space     *cp.Space
	subSteps  int
	bodies    map[*Body]struct{}
	joints    map[*Joint]struct{}
	nextGroup uint
	destroyed bool
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	if cfg.SubSteps <= 0 {
		cfg.SubSteps = 1
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10
	}

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cfg.Gravity)
	if cfg.CollisionSlop > 0 {
		space.SetCollisionSlop(cfg.CollisionSlop)
	}

	return &World{
		space:    space,
		subSteps: cfg.SubSteps,
		bodies:   make(map[*Body]struct{}),
		joints:   make(map[*Joint]struct{}),
	}
}

// Step advances the world by dt seconds, split into equal sub-steps.
func (w *World) Step(dt float64) {
	if w.destroyed || dt <= 0 {
		return
	}
	h := dt / float64(w.subSteps)
	for i := 0; i < w.subSteps; i++ {
		w.space.Step(h)
	}
}

// Gravity returns the world gravity.
func (w *World) Gravity() Vec2 {
	return w.space.Gravity()
}

// SubSteps returns the configured sub-step count.
func (w *World) SubSteps() int {
	return w.subSteps
}

// NewGroup returns a collision group no other caller has been given.
// Shapes sharing a non-zero group never collide with each other.
func (w *World) NewGroup() uint {
	w.nextGroup++
	return w.nextGroup
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// JointCount returns the number of live joints.
func (w *World) JointCount() int {
	return len(w.joints)
}

// Destroy releases every joint and body. The world is unusable afterwards.
func (w *World) Destroy() {
	if w.destroyed {
		return
	}
	for j := range w.joints {
		w.DestroyJoint(j)
	}
	for b := range w.bodies {
		w.DestroyBody(b)
	}
	w.destroyed = true
}

func (w *World) checkBody(b *Body) error {
	if b == nil || b.world != w {
		return fmt.Errorf("physics: body does not belong to this world")
	}
	if b.destroyed {
		return ErrBodyDestroyed
	}
	return nil
}
