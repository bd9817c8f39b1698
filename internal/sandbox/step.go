package sandbox

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/physics"
)

// Chain captures keep at least this much slack, in meters.
const chainMinLength = 0.5

// Capture describes one projectile captured during a step.
type Capture struct {
	Projectile entity.ID
	Hazard     entity.ID
	Joint      physics.JointKind
}

// StepResult reports what a step did.
type StepResult struct {
	Paused    bool
	Captures  []Capture
	Fired     entity.ID // Invalid when nothing was fired
	Discarded bool      // a release below the fire threshold
}

// Step advances the core by one frame of dt seconds: physics, capture
// pass, launcher pass, then every entity's update hook. While paused only
// the toggles and the update hooks run. An error wrapping ErrInvariant
// means the session must end.
func (c *Core) Step(in core.InputFrame, dt float64) (StepResult, error) {
	res := StepResult{Fired: entity.Invalid}
	if c.closed {
		return res, ErrClosed
	}
	if c.phase != phaseIdle {
		return res, fmt.Errorf("%w: step re-entered during %s", ErrInvariant, c.phaseName())
	}
	c.phase = phaseStep
	defer func() { c.phase = phaseIdle }()

	if in.Has(core.ActionPause) {
		c.paused = !c.paused
		c.logger.Debug("pause toggled", "paused", c.paused)
	}
	if in.Has(core.ActionDebug) {
		c.debug = !c.debug
	}
	res.Paused = c.paused

	if !c.paused {
		c.world.Step(dt)
		c.stats.SimTime += dt
		res.Captures = c.capturePass()
		c.launcherPass(in, &res)
	}
	c.tick(dt)
	c.stats.Frames++

	if err := c.checkInvariants(); err != nil {
		c.logger.Error("invariant breach", "frame", c.stats.Frames, "error", err)
		return res, err
	}
	return res, nil
}

func (c *Core) phaseName() string {
	switch c.phase {
	case phaseStep:
		return "step"
	case phaseRender:
		return "render"
	default:
		return "idle"
	}
}

// target returns the body a hazard captures with and its capture radius in
// meters. Chain hazards capture with their hook.
func (c *Core) target(h *entity.Entity) (*physics.Body, float64) {
	if h.Hazard.Variant == entity.HazardChain && h.Chain != nil && h.Chain.Hook.Valid() {
		half := h.Chain.HookHalfExtent
		return h.Chain.Hook, math.Hypot(half.X, half.Y) / c.upm
	}
	return h.Body, h.Radius() / c.upm
}

// capturePass attaches each free projectile to the first hazard, in bucket
// order, whose margin-scaled radius it is inside of.
func (c *Core) capturePass() []Capture {
	var captured []Capture
	margin := c.settings.Capture.Margin

	for _, p := range c.projectiles {
		if p.Capture.Captured() {
			continue
		}
		pos := p.Body.Position()
		pr := p.Radius() / c.upm

		for _, h := range c.hazards {
			body, tr := c.target(h)
			tp := body.Position()
			dx, dy := pos.X-tp.X, pos.Y-tp.Y
			distSq := dx*dx + dy*dy
			threshold := (tr + pr) * margin
			if distSq >= threshold*threshold {
				continue
			}

			joint, err := c.attach(h, body, p, dx, dy, math.Sqrt(distSq), pr)
			if err != nil {
				c.logger.Warn("capture failed", "projectile", p.ID, "hazard", h.ID, "error", err)
				continue
			}
			p.Capture = entity.Capture{Frozen: true, Joint: joint, Hazard: h.ID}
			c.stats.Captures++
			captured = append(captured, Capture{Projectile: p.ID, Hazard: h.ID, Joint: joint.Kind()})
			c.logger.Debug("projectile captured", "projectile", p.ID, "hazard", h.ID, "variant", h.Hazard.Variant)
			break
		}
	}
	return captured
}

// attach creates the capture joint. Chains hang the projectile from the
// hook on a sprung distance joint; normal hazards and saws pin it at the
// point of its perimeter facing the hazard.
func (c *Core) attach(h *entity.Entity, target *physics.Body, p *entity.Entity, dx, dy, dist, radius float64) (*physics.Joint, error) {
	if h.Hazard.Variant == entity.HazardChain {
		return c.world.CreateDistanceJoint(physics.DistanceJointDef{
			BodyA:        target,
			BodyB:        p.Body,
			Length:       dist,
			MinLength:    chainMinLength,
			MaxLength:    math.Max(1.5*dist, chainMinLength),
			EnableSpring: true,
			Hertz:        h.Hazard.JointHertz,
			DampingRatio: h.Hazard.JointDamping,
		})
	}

	theta := math.Atan2(dy, dx)
	return c.world.CreateRevoluteJoint(physics.RevoluteJointDef{
		BodyA:   target,
		BodyB:   p.Body,
		AnchorB: physics.Vec2{X: -math.Cos(theta) * radius, Y: -math.Sin(theta) * radius},
	})
}

// launcherPass aims the first launcher at the pointer and handles the
// press and release edges.
func (c *Core) launcherPass(in core.InputFrame, res *StepResult) {
	if len(c.launchers) == 0 {
		return
	}
	e := c.launchers[0]
	l := e.Launcher
	if l == nil {
		return
	}

	at := e.Position(c.upm)
	if d := in.Pointer.Sub(at); d.Len() > 1 {
		l.Aim = d.Normalize()
	}

	if in.PrimaryPressed {
		l.Charging = true
		l.Charge = 0
	}
	if !l.Charging || !in.PrimaryReleased {
		return
	}

	charge := l.Charge
	l.Reset()
	if charge <= c.settings.Launcher.FireThreshold {
		c.stats.ShotsDiscarded++
		res.Discarded = true
		c.logger.Debug("shot discarded", "charge", charge)
		return
	}

	p, err := c.SpawnProjectile(at)
	if err != nil {
		c.logger.Error("projectile spawn failed", "error", err)
		return
	}
	magnitude := (charge / c.upm) * l.ImpulseMultiplier
	p.Body.ApplyLinearImpulse(
		physics.Vec2{X: l.Aim.X * magnitude, Y: l.Aim.Y * magnitude},
		p.Body.Position(),
	)
	c.stats.ShotsFired++
	res.Fired = p.ID
	c.logger.Debug("projectile fired", "id", p.ID, "charge", charge, "impulse", magnitude)
}

// tick runs every update hook, bucket by bucket.
func (c *Core) tick(dt float64) {
	for _, bucket := range [][]*entity.Entity{c.obstacles, c.hazards, c.launchers, c.projectiles} {
		for _, e := range bucket {
			e.Update(dt)
		}
	}
}

// checkInvariants verifies every bucket entry is live and every captured
// projectile is held by exactly the joint that binds it to its hazard.
func (c *Core) checkInvariants() error {
	for _, bucket := range [][]*entity.Entity{c.obstacles, c.hazards, c.launchers, c.projectiles} {
		for _, e := range bucket {
			if !c.registry.IsAlive(e.ID) || !e.Body.Valid() {
				return fmt.Errorf("%w: %s %s has no live body", ErrInvariant, e.Kind, e.ID)
			}
		}
	}

	for _, p := range c.projectiles {
		capt := p.Capture
		if !capt.Frozen && capt.Joint == nil {
			continue
		}
		if !capt.Frozen || capt.Joint == nil || !capt.Joint.Valid() {
			return fmt.Errorf("%w: projectile %s captured without a joint", ErrInvariant, p.ID)
		}
		h, ok := c.Lookup(capt.Hazard)
		if !ok || h.Kind != entity.KindHazard {
			return fmt.Errorf("%w: projectile %s held by missing hazard %s", ErrInvariant, p.ID, capt.Hazard)
		}
		body, _ := c.target(h)
		if !capt.Joint.Binds(body, p.Body) {
			return fmt.Errorf("%w: projectile %s joint not bound to hazard %s", ErrInvariant, p.ID, h.ID)
		}
	}
	return nil
}
