package sandbox

import (
	"fmt"
	"image/color"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/physics"
)

var (
	outlineColor = color.RGBA{0, 228, 48, 255}
	jointColor   = color.RGBA{102, 191, 255, 255}
	captureColor = color.RGBA{253, 249, 0, 255}
)

// Render draws every entity through its render hook, bucket by bucket,
// and the debug overlay when it is on. It must not be called from inside
// Step.
func (c *Core) Render(cv core.Canvas) error {
	if c.closed {
		return ErrClosed
	}
	if c.phase != phaseIdle {
		return fmt.Errorf("%w: render during %s", ErrInvariant, c.phaseName())
	}
	c.phase = phaseRender
	defer func() { c.phase = phaseIdle }()

	for _, bucket := range [][]*entity.Entity{c.obstacles, c.hazards, c.launchers, c.projectiles} {
		for _, e := range bucket {
			e.Render(cv, c.upm)
		}
	}
	if c.debug {
		c.renderDebug(cv)
	}
	return nil
}

func (c *Core) renderDebug(cv core.Canvas) {
	for _, bucket := range [][]*entity.Entity{c.obstacles, c.hazards, c.launchers, c.projectiles} {
		for _, e := range bucket {
			outline(cv, e.Position(c.upm), e.HalfExtent, e.Angle(), outlineColor)
			if e.Chain != nil {
				hp := e.Chain.Hook.Position()
				outline(cv, c.pixels(hp), e.Chain.HookHalfExtent, e.Chain.Hook.Angle(), outlineColor)
				c.jointLine(cv, e.Chain.Rope)
			}
		}
	}

	for _, p := range c.projectiles {
		if !p.Capture.Captured() {
			continue
		}
		c.jointLine(cv, p.Capture.Joint)
		cv.StrokeCircle(p.Position(c.upm), p.Radius(), 1, captureColor)
	}

	o, h, l, n := c.Counts()
	s := c.stats
	cv.Text(core.V(10, 10), fmt.Sprintf("frames %d  bodies %d  joints %d", s.Frames, c.world.BodyCount(), c.world.JointCount()), core.ColorWhite)
	cv.Text(core.V(10, 30), fmt.Sprintf("obstacles %d  hazards %d  launchers %d  boxes %d", o, h, l, n), core.ColorWhite)
	cv.Text(core.V(10, 50), fmt.Sprintf("fired %d  discarded %d  captures %d", s.ShotsFired, s.ShotsDiscarded, s.Captures), core.ColorWhite)
}

func (c *Core) jointLine(cv core.Canvas, j *physics.Joint) {
	if j == nil || !j.Valid() {
		return
	}
	a := j.BodyA().LocalToWorld(j.AnchorA())
	b := j.BodyB().LocalToWorld(j.AnchorB())
	cv.Line(c.pixels(a), c.pixels(b), 1, jointColor)
}

func (c *Core) pixels(v physics.Vec2) core.Vec2 {
	return core.V(v.X*c.upm, v.Y*c.upm)
}

func outline(cv core.Canvas, center, half core.Vec2, angle float64, col color.RGBA) {
	pts := core.BoxCorners(center, half, angle)
	for i := range pts {
		cv.Line(pts[i], pts[(i+1)%len(pts)], 1, col)
	}
}
