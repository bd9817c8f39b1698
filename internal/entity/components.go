package entity

import (
	"image/color"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/physics"
)

// Kind is the bucket an entity belongs to.
type Kind int

const (
	KindObstacle Kind = iota
	KindHazard
	KindLauncher
	KindProjectile
)

// String returns the bucket name.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindHazard:
		return "hazard"
	case KindLauncher:
		return "launcher"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// VisualStyle controls how the default render hooks draw an entity.
type VisualStyle struct {
	Tint       color.RGBA
	Roundness  float64 // [0, 1]
	UseTexture bool
}

// DefaultVisual returns a white, square, textured style.
func DefaultVisual() VisualStyle {
	return VisualStyle{Tint: core.ColorWhite, UseTexture: true}
}

// Material holds the physical surface and damping properties of a body.
type Material struct {
	Density        float64
	Friction       float64
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64
	Gravity        bool
}

// DefaultMaterial returns the material used when a record declares none.
func DefaultMaterial() Material {
	return Material{
		Density:        1,
		Friction:       0.3,
		Restitution:    0.2,
		LinearDamping:  0,
		AngularDamping: 0.05,
		Gravity:        true,
	}
}

// ProjectileMaterial is the light material launched boxes use.
func ProjectileMaterial() Material {
	return Material{
		Density:        0.1,
		Friction:       0.4,
		Restitution:    0.3,
		LinearDamping:  0.1,
		AngularDamping: 0.1,
		Gravity:        true,
	}
}

// ProjectileVisual is the style launched boxes use.
func ProjectileVisual() VisualStyle {
	return VisualStyle{Tint: core.ColorOrange, Roundness: 0.2, UseTexture: true}
}

// HazardVariant selects how a hazard captures projectiles.
type HazardVariant int

const (
	HazardNormal HazardVariant = iota
	HazardSaw
	HazardChain
)

// String returns the level-file spelling of the variant.
func (v HazardVariant) String() string {
	switch v {
	case HazardSaw:
		return "saw"
	case HazardChain:
		return "chain"
	default:
		return "normal"
	}
}

// ParseHazardVariant maps a level-file type name to a variant. Unknown
// names fall back to HazardNormal with ok false.
func ParseHazardVariant(s string) (v HazardVariant, ok bool) {
	switch s {
	case "normal":
		return HazardNormal, true
	case "saw":
		return HazardSaw, true
	case "chain":
		return HazardChain, true
	default:
		return HazardNormal, false
	}
}

// HazardProps carries the per-variant tuning of a hazard. Pixel values are
// display units.
type HazardProps struct {
	Variant HazardVariant

	// Saw
	RotationSpeed float64 // degrees per second
	Rotation      float64 // degrees, [0, 360)

	// Chain
	ChainLength     float64 // pixels
	LinkLength      float64 // pixels
	LinkThickness   float64 // pixels
	LinkDensity     float64
	LinkFriction    float64
	LinkRestitution float64
	HookScaleW      float64
	HookScaleH      float64
	JointHertz      float64
	JointDamping    float64
	SelfCollide     bool
}

// DefaultHazardProps returns a normal hazard with stock chain tuning.
func DefaultHazardProps() HazardProps {
	return HazardProps{
		Variant:         HazardNormal,
		LinkLength:      20,
		LinkThickness:   6,
		LinkDensity:     1,
		LinkFriction:    0.6,
		LinkRestitution: 0,
		HookScaleW:      1.2,
		HookScaleH:      1.6,
		JointHertz:      3,
		JointDamping:    0.5,
	}
}

// HookHalfExtent returns the half-size in pixels of the hook a chain hazard
// hangs from its rope.
func (p HazardProps) HookHalfExtent() core.Vec2 {
	return core.V(p.LinkThickness*0.5*p.HookScaleW, p.LinkLength*0.5*p.HookScaleH)
}

// Capture records a projectile stuck to a hazard.
type Capture struct {
	Frozen bool
	Joint  *physics.Joint
	Hazard ID
}

// Captured reports whether the projectile must be skipped by the capture pass.
func (c Capture) Captured() bool {
	return c.Frozen || c.Joint != nil
}

// Clear resets the capture state. It does not touch the joint itself.
func (c *Capture) Clear() {
	*c = Capture{Hazard: Invalid}
}

// ChainRig is the extra body and rope a chain hazard owns.
type ChainRig struct {
	Hook           *physics.Body
	Rope           *physics.Joint
	HookHalfExtent core.Vec2 // pixels
}

// LauncherState is the charge-and-fire context of a launcher.
type LauncherState struct {
	Aim               core.Vec2 // unit vector
	Charging          bool
	Charge            float64
	ChargeRate        float64 // charge per second
	MaxPower          float64
	ImpulseMultiplier float64
	UnitsPerMeter     float64
}

// ChargeRatio returns Charge/MaxPower in [0, 1].
func (l *LauncherState) ChargeRatio() float64 {
	if l.MaxPower <= 0 {
		return 0
	}
	return core.ClampF(l.Charge/l.MaxPower, 0, 1)
}

// Accumulate advances the charge while charging, clamped to MaxPower.
func (l *LauncherState) Accumulate(dt float64) {
	if !l.Charging {
		return
	}
	l.Charge = core.ClampF(l.Charge+l.ChargeRate*dt, 0, l.MaxPower)
}

// Reset drops any charge in progress.
func (l *LauncherState) Reset() {
	l.Charging = false
	l.Charge = 0
}
