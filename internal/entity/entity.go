package entity

import (
	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/physics"
)

// Behavior is the per-variant hook pair bound to an entity at construction.
type Behavior interface {
	Update(e *Entity, dt float64)
	Render(e *Entity, c core.Canvas, unitsPerMeter float64)
}

// Releaser is implemented by behaviors that hold resources of their own.
// Release runs exactly once, when the entity is destroyed.
type Releaser interface {
	Release(e *Entity)
}

// Entity is the single row type of the sandbox. Which optional parts are
// set depends on Kind: hazards use Hazard (and Chain for the chain
// variant), launchers use Launcher, projectiles use Capture.
type Entity struct {
	ID         ID
	Kind       Kind
	Body       *physics.Body
	HalfExtent core.Vec2 // pixels
	Sprite     core.Texture
	Visual     VisualStyle
	Material   Material
	Hazard     HazardProps
	Capture    Capture
	Chain      *ChainRig
	Launcher   *LauncherState
	Behavior   Behavior

	released bool
}

// Update runs the behavior update hook, if any.
func (e *Entity) Update(dt float64) {
	if e.Behavior != nil {
		e.Behavior.Update(e, dt)
	}
}

// Render runs the behavior render hook, if any.
func (e *Entity) Render(c core.Canvas, unitsPerMeter float64) {
	if e.Behavior != nil {
		e.Behavior.Render(e, c, unitsPerMeter)
	}
}

// Position returns the body center in pixels.
func (e *Entity) Position(unitsPerMeter float64) core.Vec2 {
	p := e.Body.Position()
	return core.V(p.X*unitsPerMeter, p.Y*unitsPerMeter)
}

// Angle returns the body rotation in radians.
func (e *Entity) Angle() float64 {
	return e.Body.Angle()
}

// Radius returns the effective capture radius in pixels: the mean of the
// two half extents.
func (e *Entity) Radius() float64 {
	return (e.HalfExtent.X + e.HalfExtent.Y) * 0.5
}

// Released reports whether Destroy has run.
func (e *Entity) Released() bool {
	return e.released
}

// Destroy releases everything the entity owns, in order: behavior
// context, rope joint, hook body, main body. It runs at most once; joints
// other entities hold on this entity's bodies go with the bodies, so
// callers clear those references first.
func (e *Entity) Destroy(w *physics.World) {
	if e.released {
		return
	}
	e.released = true

	if r, ok := e.Behavior.(Releaser); ok {
		r.Release(e)
	}
	if e.Capture.Joint != nil {
		w.DestroyJoint(e.Capture.Joint)
		e.Capture.Clear()
	}
	if e.Chain != nil {
		w.DestroyJoint(e.Chain.Rope)
		w.DestroyBody(e.Chain.Hook)
		e.Chain = nil
	}
	w.DestroyBody(e.Body)
}
