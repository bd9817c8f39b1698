package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// BodyType selects how a body participates in the simulation.
type BodyType int

const (
	Static BodyType = iota
	Dynamic
)

// BodyDef describes a body before creation.
type BodyDef struct {
	Type           BodyType
	Position       Vec2
	LinearDamping  float64 // 1/s, velocity is scaled by 1/(1+dt*d) each step
	AngularDamping float64
	GravityScale   float64
	FixedRotation  bool
}

// ShapeDef describes a box shape attached to a body.
type ShapeDef struct {
	HalfExtent  Vec2
	Density     float64 // kg/m²
	Friction    float64
	Restitution float64
	Sensor      bool
	Group       uint // 0 collides with everything
}

// Body is a rigid body handle.
type Body struct {
	world  *World
	body   *cp.Body
	shapes []*cp.Shape
	joints map[*Joint]struct{}
	kind   BodyType

	gravityScale   float64
	linearDamping  float64
	angularDamping float64
	fixedRotation  bool
	mass           float64
	moment         float64

	destroyed bool
}

// CreateBody adds a body without shapes. Dynamic bodies get their mass from
// the shapes attached with AddBox.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if w.destroyed {
		return nil, fmt.Errorf("physics: world destroyed")
	}

	b := &Body{
		world:          w,
		joints:         make(map[*Joint]struct{}),
		kind:           def.Type,
		gravityScale:   def.GravityScale,
		linearDamping:  def.LinearDamping,
		angularDamping: def.AngularDamping,
		fixedRotation:  def.FixedRotation,
	}

	switch def.Type {
	case Static:
		b.body = cp.NewStaticBody()
	case Dynamic:
		moment := 1.0
		if def.FixedRotation {
			moment = math.Inf(1)
		}
		b.body = cp.NewBody(1, moment)
		b.body.SetVelocityUpdateFunc(b.updateVelocity)
	default:
		return nil, fmt.Errorf("physics: unknown body type %d", def.Type)
	}

	b.body.UserData = b
	b.body.SetPosition(def.Position)
	w.space.AddBody(b.body)
	w.bodies[b] = struct{}{}
	return b, nil
}

// updateVelocity integrates gravity scaled per body and applies damping the
// way Box2D does, since cp only offers a single space-wide damping factor.
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)

	if b.linearDamping > 0 {
		body.SetVelocityVector(body.Velocity().Mult(1 / (1 + dt*b.linearDamping)))
	}
	if b.angularDamping > 0 {
		body.SetAngularVelocity(body.AngularVelocity() / (1 + dt*b.angularDamping))
	}
}

// AddBox attaches a box shape centered on the body.
func (w *World) AddBox(b *Body, def ShapeDef) error {
	if err := w.checkBody(b); err != nil {
		return err
	}
	if def.HalfExtent.X <= 0 || def.HalfExtent.Y <= 0 {
		return fmt.Errorf("%w: half extent %.3fx%.3f", ErrInvalidShape, def.HalfExtent.X, def.HalfExtent.Y)
	}

	width, height := 2*def.HalfExtent.X, 2*def.HalfExtent.Y
	if b.kind == Dynamic {
		mass := def.Density * width * height
		if !(mass > 0) || math.IsInf(mass, 0) {
			return fmt.Errorf("%w: density %.3f gives mass %.3f", ErrInvalidShape, def.Density, mass)
		}
		b.mass += mass
		b.moment += cp.MomentForBox(mass, width, height)
		b.body.SetMass(b.mass)
		if !b.fixedRotation {
			b.body.SetMoment(b.moment)
		}
	}

	shape := cp.NewBox(b.body, width, height, 0)
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Restitution)
	shape.SetSensor(def.Sensor)
	shape.SetFilter(cp.NewShapeFilter(def.Group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	b.shapes = append(b.shapes, shape)
	return nil
}

// DestroyBody removes the body, its shapes and any joints still attached.
// Destroying a body twice is a no-op.
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.world != w || b.destroyed {
		return
	}
	for j := range b.joints {
		w.DestroyJoint(j)
	}
	for _, s := range b.shapes {
		w.space.RemoveShape(s)
	}
	b.shapes = nil
	w.space.RemoveBody(b.body)
	delete(w.bodies, b)
	b.destroyed = true
}

// Valid reports whether the body is still part of its world.
func (b *Body) Valid() bool {
	return b != nil && !b.destroyed
}

// Type returns the body type.
func (b *Body) Type() BodyType {
	return b.kind
}

// Position returns the body center in meters.
func (b *Body) Position() Vec2 {
	return b.body.Position()
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// Velocity returns the linear velocity in m/s.
func (b *Body) Velocity() Vec2 {
	return b.body.Velocity()
}

// SetVelocity sets the linear velocity.
func (b *Body) SetVelocity(v Vec2) {
	b.body.SetVelocityVector(v)
}

// AngularVelocity returns the angular velocity in rad/s.
func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// Mass returns the body mass; static bodies report 0.
func (b *Body) Mass() float64 {
	if b.kind == Static {
		return 0
	}
	return b.mass
}

// GravityScale returns the per-body gravity multiplier.
func (b *Body) GravityScale() float64 {
	return b.gravityScale
}

// LinearDamping returns the linear damping coefficient.
func (b *Body) LinearDamping() float64 {
	return b.linearDamping
}

// AngularDamping returns the angular damping coefficient.
func (b *Body) AngularDamping() float64 {
	return b.angularDamping
}

// FixedRotation reports whether the body ignores torque.
func (b *Body) FixedRotation() bool {
	return b.fixedRotation
}

// LocalToWorld converts a body-local point to world coordinates.
func (b *Body) LocalToWorld(p Vec2) Vec2 {
	return b.body.LocalToWorld(p)
}

// ApplyLinearImpulse applies an impulse (N·s) at a world point.
func (b *Body) ApplyLinearImpulse(impulse, point Vec2) {
	if b.kind != Dynamic {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(impulse, point)
}

// JointCount returns the number of joints attached to the body.
func (b *Body) JointCount() int {
	return len(b.joints)
}
