package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// JointKind tags the constraint a Joint models.
type JointKind int

const (
	DistanceJoint JointKind = iota
	RevoluteJoint
)

// String returns the joint kind name.
func (k JointKind) String() string {
	switch k {
	case DistanceJoint:
		return "distance"
	case RevoluteJoint:
		return "revolute"
	default:
		return "unknown"
	}
}

// DistanceJointDef keeps two anchors between MinLength and MaxLength.
// With the spring enabled the anchors are also pulled toward Length with
// the given frequency and damping ratio; without it the joint is a rope.
type DistanceJointDef struct {
	BodyA, BodyB     *Body
	AnchorA, AnchorB Vec2 // body-local
	Length           float64
	MinLength        float64
	MaxLength        float64
	EnableSpring     bool
	Hertz            float64
	DampingRatio     float64
	CollideConnected bool
}

// RevoluteJointDef pins two anchors together.
type RevoluteJointDef struct {
	BodyA, BodyB     *Body
	AnchorA, AnchorB Vec2 // body-local
	EnableLimit      bool
	LowerAngle       float64
	UpperAngle       float64
	CollideConnected bool
}

// Joint is a constraint handle. One Joint may be backed by several cp
// constraints; they are created and removed together.
type Joint struct {
	world       *World
	kind        JointKind
	a, b        *Body
	anchorA     Vec2
	anchorB     Vec2
	length      float64
	minLength   float64
	maxLength   float64
	spring      bool
	constraints []*cp.Constraint
	destroyed   bool
}

// CreateDistanceJoint adds a distance joint.
func (w *World) CreateDistanceJoint(def DistanceJointDef) (*Joint, error) {
	if err := w.checkPair(def.BodyA, def.BodyB); err != nil {
		return nil, err
	}
	if def.MinLength < 0 || def.MaxLength < def.MinLength {
		return nil, fmt.Errorf("physics: distance limits [%.3f, %.3f] out of order", def.MinLength, def.MaxLength)
	}

	j := &Joint{
		world:     w,
		kind:      DistanceJoint,
		a:         def.BodyA,
		b:         def.BodyB,
		anchorA:   def.AnchorA,
		anchorB:   def.AnchorB,
		length:    def.Length,
		minLength: def.MinLength,
		maxLength: def.MaxLength,
	}

	a, b := def.BodyA.body, def.BodyB.body
	j.constraints = append(j.constraints,
		cp.NewSlideJoint(a, b, def.AnchorA, def.AnchorB, def.MinLength, def.MaxLength))

	if def.EnableSpring && def.Hertz > 0 {
		stiffness, damping := springCoefficients(def.BodyA, def.BodyB, def.Hertz, def.DampingRatio)
		j.constraints = append(j.constraints,
			cp.NewDampedSpring(a, b, def.AnchorA, def.AnchorB, def.Length, stiffness, damping))
		j.spring = true
	}

	w.addJoint(j, def.CollideConnected)
	return j, nil
}

// CreateRevoluteJoint adds a pin joint.
func (w *World) CreateRevoluteJoint(def RevoluteJointDef) (*Joint, error) {
	if err := w.checkPair(def.BodyA, def.BodyB); err != nil {
		return nil, err
	}

	j := &Joint{
		world:   w,
		kind:    RevoluteJoint,
		a:       def.BodyA,
		b:       def.BodyB,
		anchorA: def.AnchorA,
		anchorB: def.AnchorB,
	}

	a, b := def.BodyA.body, def.BodyB.body
	j.constraints = append(j.constraints, cp.NewPivotJoint2(a, b, def.AnchorA, def.AnchorB))
	if def.EnableLimit {
		j.constraints = append(j.constraints, cp.NewRotaryLimitJoint(a, b, def.LowerAngle, def.UpperAngle))
	}

	w.addJoint(j, def.CollideConnected)
	return j, nil
}

func (w *World) addJoint(j *Joint, collide bool) {
	for _, c := range j.constraints {
		c.SetCollideBodies(collide)
		w.space.AddConstraint(c)
	}
	j.a.joints[j] = struct{}{}
	j.b.joints[j] = struct{}{}
	w.joints[j] = struct{}{}
}

func (w *World) checkPair(a, b *Body) error {
	if err := w.checkBody(a); err != nil {
		return err
	}
	if err := w.checkBody(b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("physics: joint needs two distinct bodies")
	}
	return nil
}

// DestroyJoint removes the joint. Destroying a joint twice is a no-op.
func (w *World) DestroyJoint(j *Joint) {
	if j == nil || j.world != w || j.destroyed {
		return
	}
	for _, c := range j.constraints {
		w.space.RemoveConstraint(c)
	}
	j.constraints = nil
	delete(j.a.joints, j)
	delete(j.b.joints, j)
	delete(w.joints, j)
	j.destroyed = true
}

// springCoefficients converts a frequency and damping ratio into the
// stiffness and damping of a cp damped spring, using the reduced mass of
// the two bodies.
func springCoefficients(a, b *Body, hertz, ratio float64) (stiffness, damping float64) {
	m := reducedMass(a.Mass(), b.Mass())
	omega := 2 * math.Pi * hertz
	return m * omega * omega, 2 * m * ratio * omega
}

func reducedMass(ma, mb float64) float64 {
	switch {
	case ma <= 0:
		return mb
	case mb <= 0:
		return ma
	default:
		return ma * mb / (ma + mb)
	}
}

// Valid reports whether the joint is still part of its world.
func (j *Joint) Valid() bool {
	return j != nil && !j.destroyed
}

// Kind returns the joint kind.
func (j *Joint) Kind() JointKind {
	return j.kind
}

// BodyA returns the first attached body.
func (j *Joint) BodyA() *Body {
	return j.a
}

// BodyB returns the second attached body.
func (j *Joint) BodyB() *Body {
	return j.b
}

// Binds reports whether the joint connects exactly the bodies a and b, in
// either order.
func (j *Joint) Binds(a, b *Body) bool {
	return (j.a == a && j.b == b) || (j.a == b && j.b == a)
}

// Length returns the spring rest length of a distance joint.
func (j *Joint) Length() float64 {
	return j.length
}

// MinLength returns the lower distance limit.
func (j *Joint) MinLength() float64 {
	return j.minLength
}

// MaxLength returns the upper distance limit.
func (j *Joint) MaxLength() float64 {
	return j.maxLength
}

// SpringEnabled reports whether a distance joint pulls toward its length.
func (j *Joint) SpringEnabled() bool {
	return j.spring
}

// AnchorA returns the anchor on BodyA in body-local coordinates.
func (j *Joint) AnchorA() Vec2 {
	return j.anchorA
}

// AnchorB returns the anchor on BodyB in body-local coordinates.
func (j *Joint) AnchorB() Vec2 {
	return j.anchorB
}

// CurrentLength returns the world-space distance between the two anchors.
func (j *Joint) CurrentLength() float64 {
	pa := j.a.LocalToWorld(j.anchorA)
	pb := j.b.LocalToWorld(j.anchorB)
	return pa.Distance(pb)
}
