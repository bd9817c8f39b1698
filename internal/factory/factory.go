// Package factory builds entity records together with their physics bodies,
// shapes and auxiliary joints. A constructor either returns a complete
// entity or releases everything it created and returns an error.
package factory

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/physics"
)

// ErrInvalidSpec is returned for inputs no body could be built from.
var ErrInvalidSpec = errors.New("factory: invalid spec")

// Hazard anchors are heavy, saturated-damping bodies with no gravity so
// they stay put while still accepting joints.
const (
	hazardDensity  = 10000.0
	hazardFriction = 1.0
	hazardDamping  = 100.0
)

// Options are the world-scoped constants a factory needs.
type Options struct {
	UnitsPerMeter      float64
	ChargeRate         float64 // launcher charge per second
	LauncherHalfExtent float64 // pixels
}

// DefaultOptions returns the stock constants.
func DefaultOptions() Options {
	return Options{UnitsPerMeter: 50, ChargeRate: 150, LauncherHalfExtent: 32}
}

// Factory creates entities in one world.
type Factory struct {
	world    *physics.World
	registry *entity.Registry
	opts     Options
}

// New creates a factory bound to w and reg.
func New(w *physics.World, reg *entity.Registry, opts Options) *Factory {
	if opts.UnitsPerMeter <= 0 {
		opts.UnitsPerMeter = DefaultOptions().UnitsPerMeter
	}
	if opts.LauncherHalfExtent <= 0 {
		opts.LauncherHalfExtent = DefaultOptions().LauncherHalfExtent
	}
	return &Factory{world: w, registry: reg, opts: opts}
}

// UnitsPerMeter returns the pixel to meter scale.
func (f *Factory) UnitsPerMeter() float64 { return f.opts.UnitsPerMeter }

// World returns the physics world entities are created in.
func (f *Factory) World() *physics.World { return f.world }

// Registry returns the identifier registry.
func (f *Factory) Registry() *entity.Registry { return f.registry }

// ObstacleSpec describes a static box. Sizes are pixels.
type ObstacleSpec struct {
	Position   core.Vec2
	HalfExtent core.Vec2
	Sprite     core.Texture
	Visual     entity.VisualStyle
}

// BoxSpec describes a dynamic box.
type BoxSpec struct {
	Position   core.Vec2
	HalfExtent core.Vec2
	Sprite     core.Texture
	Visual     entity.VisualStyle
	Material   entity.Material
}

// HazardSpec describes a spike of any variant. Radius is the half size of
// its square body.
type HazardSpec struct {
	Position core.Vec2
	Radius   float64
	Sprite   core.Texture
	Visual   entity.VisualStyle
	Props    entity.HazardProps
}

// LauncherSpec describes the player launcher.
type LauncherSpec struct {
	Position          core.Vec2
	MaxPower          float64
	ImpulseMultiplier float64
	Sprite            core.Texture
}

// Destroy releases the entity and retires its identifier. It is safe to
// call more than once.
func (f *Factory) Destroy(e *entity.Entity) {
	if e == nil {
		return
	}
	e.Destroy(f.world)
	f.registry.Destroy(e.ID)
}

func (f *Factory) meters(px core.Vec2) physics.Vec2 {
	return physics.Vec2{X: px.X / f.opts.UnitsPerMeter, Y: px.Y / f.opts.UnitsPerMeter}
}

// build wraps the common create-or-roll-back sequence: it allocates an
// identifier, runs fn and undoes both when fn fails. fn must destroy
// nothing itself; every body it records in e.Body or e.Chain is released
// on failure.
func (f *Factory) build(kind entity.Kind, fn func(e *entity.Entity) error) (*entity.Entity, error) {
	e := &entity.Entity{
		ID:      f.registry.Create(),
		Kind:    kind,
		Capture: entity.Capture{Hazard: entity.Invalid},
	}
	if err := fn(e); err != nil {
		f.Destroy(e)
		return nil, fmt.Errorf("factory: %s: %w", kind, err)
	}
	return e, nil
}

// Obstacle creates a static box.
func (f *Factory) Obstacle(spec ObstacleSpec) (*entity.Entity, error) {
	return f.build(entity.KindObstacle, func(e *entity.Entity) error {
		body, err := f.world.CreateBody(physics.BodyDef{
			Type:     physics.Static,
			Position: f.meters(spec.Position),
		})
		if err != nil {
			return err
		}
		e.Body = body
		e.HalfExtent = spec.HalfExtent
		e.Sprite = spec.Sprite
		e.Visual = spec.Visual
		e.Material = entity.DefaultMaterial()
		e.Behavior = boxBehavior{}

		return f.world.AddBox(body, physics.ShapeDef{
			HalfExtent: f.meters(spec.HalfExtent),
			Friction:   e.Material.Friction,
		})
	})
}

// Box creates a dynamic box with the given material.
func (f *Factory) Box(spec BoxSpec) (*entity.Entity, error) {
	return f.build(entity.KindProjectile, func(e *entity.Entity) error {
		m := spec.Material
		gravity := 0.0
		if m.Gravity {
			gravity = 1
		}
		body, err := f.world.CreateBody(physics.BodyDef{
			Type:           physics.Dynamic,
			Position:       f.meters(spec.Position),
			LinearDamping:  m.LinearDamping,
			AngularDamping: m.AngularDamping,
			GravityScale:   gravity,
		})
		if err != nil {
			return err
		}
		e.Body = body
		e.HalfExtent = spec.HalfExtent
		e.Sprite = spec.Sprite
		e.Visual = spec.Visual
		e.Material = m
		e.Behavior = boxBehavior{}

		return f.world.AddBox(body, physics.ShapeDef{
			HalfExtent:  f.meters(spec.HalfExtent),
			Density:     m.Density,
			Friction:    m.Friction,
			Restitution: m.Restitution,
		})
	})
}

// Projectile creates a launched box with the stock projectile material.
func (f *Factory) Projectile(pos, halfExtent core.Vec2, sprite core.Texture) (*entity.Entity, error) {
	return f.Box(BoxSpec{
		Position:   pos,
		HalfExtent: halfExtent,
		Sprite:     sprite,
		Visual:     entity.ProjectileVisual(),
		Material:   entity.ProjectileMaterial(),
	})
}

// Hazard creates a spike. Chain hazards also get a hook body hanging from
// a rope below the anchor.
func (f *Factory) Hazard(spec HazardSpec) (*entity.Entity, error) {
	return f.build(entity.KindHazard, func(e *entity.Entity) error {
		props := spec.Props
		props.Rotation = wrapDegrees(props.Rotation)

		var group uint
		if props.Variant == entity.HazardChain && !props.SelfCollide {
			group = f.world.NewGroup()
		}

		anchor, err := f.world.CreateBody(physics.BodyDef{
			Type:           physics.Dynamic,
			Position:       f.meters(spec.Position),
			LinearDamping:  hazardDamping,
			AngularDamping: hazardDamping,
			GravityScale:   0,
			FixedRotation:  true,
		})
		if err != nil {
			return err
		}
		e.Body = anchor
		e.HalfExtent = core.V(spec.Radius, spec.Radius)
		e.Sprite = spec.Sprite
		e.Visual = spec.Visual
		e.Hazard = props
		e.Material = entity.Material{
			Density:        hazardDensity,
			Friction:       hazardFriction,
			LinearDamping:  hazardDamping,
			AngularDamping: hazardDamping,
		}

		if err := f.world.AddBox(anchor, physics.ShapeDef{
			HalfExtent: f.meters(e.HalfExtent),
			Density:    hazardDensity,
			Friction:   hazardFriction,
			Group:      group,
		}); err != nil {
			return err
		}

		switch props.Variant {
		case entity.HazardSaw:
			e.Behavior = sawBehavior{}
		case entity.HazardChain:
			e.Behavior = chainBehavior{}
			return f.rigChain(e, group)
		default:
			e.Behavior = spikeBehavior{}
		}
		return nil
	})
}

// rigChain hangs the hook (spikeHalfHeight + chainLength) below the anchor
// center and ties the spike bottom to the hook center with a rope.
func (f *Factory) rigChain(e *entity.Entity, group uint) error {
	props := e.Hazard
	if props.ChainLength < 0 {
		return fmt.Errorf("%w: chain length %.2f", ErrInvalidSpec, props.ChainLength)
	}

	hookHalf := props.HookHalfExtent()
	at := e.Position(f.opts.UnitsPerMeter).Add(core.V(0, e.HalfExtent.Y+props.ChainLength))

	hook, err := f.world.CreateBody(physics.BodyDef{
		Type:         physics.Dynamic,
		Position:     f.meters(at),
		GravityScale: 1,
	})
	if err != nil {
		return err
	}
	e.Chain = &entity.ChainRig{Hook: hook, HookHalfExtent: hookHalf}

	if err := f.world.AddBox(hook, physics.ShapeDef{
		HalfExtent:  f.meters(hookHalf),
		Density:     props.LinkDensity,
		Friction:    props.LinkFriction,
		Restitution: props.LinkRestitution,
		Group:       group,
	}); err != nil {
		return err
	}

	length := props.ChainLength / f.opts.UnitsPerMeter
	rope, err := f.world.CreateDistanceJoint(physics.DistanceJointDef{
		BodyA:            e.Body,
		BodyB:            hook,
		AnchorA:          physics.Vec2{X: 0, Y: e.HalfExtent.Y / f.opts.UnitsPerMeter},
		AnchorB:          physics.Vec2{},
		Length:           length,
		MinLength:        0,
		MaxLength:        length,
		CollideConnected: props.SelfCollide,
	})
	if err != nil {
		return err
	}
	e.Chain.Rope = rope
	return nil
}

// Launcher creates the static sensor box the player fires from.
func (f *Factory) Launcher(spec LauncherSpec) (*entity.Entity, error) {
	return f.build(entity.KindLauncher, func(e *entity.Entity) error {
		if !(spec.MaxPower > 0) {
			return fmt.Errorf("%w: power %.2f", ErrInvalidSpec, spec.MaxPower)
		}

		body, err := f.world.CreateBody(physics.BodyDef{
			Type:     physics.Static,
			Position: f.meters(spec.Position),
		})
		if err != nil {
			return err
		}
		half := f.opts.LauncherHalfExtent
		e.Body = body
		e.HalfExtent = core.V(half, half)
		e.Sprite = spec.Sprite
		e.Visual = entity.VisualStyle{Tint: core.ColorOrange}
		e.Launcher = &entity.LauncherState{
			Aim:               core.V(1, 0),
			ChargeRate:        f.opts.ChargeRate,
			MaxPower:          spec.MaxPower,
			ImpulseMultiplier: spec.ImpulseMultiplier,
			UnitsPerMeter:     f.opts.UnitsPerMeter,
		}
		e.Behavior = &launcherBehavior{}

		return f.world.AddBox(body, physics.ShapeDef{
			HalfExtent: f.meters(e.HalfExtent),
			Sensor:     true,
		})
	})
}
