package factory

import (
	"image/color"
	"math"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
)

// boxBehavior draws obstacles and projectiles.
type boxBehavior struct{}

func (boxBehavior) Update(*entity.Entity, float64) {}

func (boxBehavior) Render(e *entity.Entity, c core.Canvas, upm float64) {
	drawBox(e, c, upm, e.Visual.Tint)
}

func drawBox(e *entity.Entity, c core.Canvas, upm float64, tint color.RGBA) {
	center := e.Position(upm)
	if e.Visual.UseTexture && e.Sprite != nil {
		c.DrawTexture(e.Sprite, center, e.HalfExtent, e.Angle(), tint)
		return
	}
	c.FillBox(center, e.HalfExtent, e.Angle(), e.Visual.Roundness, tint)
}

// spikeBehavior is the normal hazard: a disc with spokes.
type spikeBehavior struct{}

func (spikeBehavior) Update(*entity.Entity, float64) {}

func (spikeBehavior) Render(e *entity.Entity, c core.Canvas, upm float64) {
	center := e.Position(upm)
	r := e.Radius()
	c.FillCircle(center, r, e.Visual.Tint)
	for i := 0; i < 12; i++ {
		a := 2 * math.Pi * float64(i) / 12
		dir := core.V(math.Cos(a), math.Sin(a))
		c.Line(center.Add(dir.Scale(r*0.6)), center.Add(dir.Scale(r*1.1)), 2, spokeColor)
	}
}

var spokeColor = color.RGBA{R: 127, G: 106, B: 79, A: 255}

// sawBehavior spins its blade at RotationSpeed degrees per second.
type sawBehavior struct{}

func (sawBehavior) Update(e *entity.Entity, dt float64) {
	if e.Hazard.RotationSpeed == 0 {
		return
	}
	e.Hazard.Rotation = wrapDegrees(e.Hazard.Rotation + e.Hazard.RotationSpeed*dt)
}

func (sawBehavior) Render(e *entity.Entity, c core.Canvas, upm float64) {
	center := e.Position(upm)
	r := e.Radius()
	c.FillCircle(center, r, e.Visual.Tint)

	spin := e.Hazard.Rotation * math.Pi / 180
	at := func(a, scale float64) core.Vec2 {
		return center.Add(core.V(math.Cos(a), math.Sin(a)).Scale(r * scale))
	}
	for i := 0; i < 8; i++ {
		a := 2*math.Pi*float64(i)/8 + spin
		c.FillTriangle(at(a, 1), at(a+0.3, 1.3), at(a+0.6, 1), core.ColorDarkGray)
	}
	c.FillCircle(center, r*0.3, core.ColorGray)
}

// chainBehavior draws the anchor, the rope with its links and the hook.
type chainBehavior struct{}

func (chainBehavior) Update(*entity.Entity, float64) {}

func (chainBehavior) Render(e *entity.Entity, c core.Canvas, upm float64) {
	center := e.Position(upm)
	c.FillBox(center, e.HalfExtent, 0, e.Visual.Roundness, e.Visual.Tint)
	if e.Chain == nil || !e.Chain.Hook.Valid() {
		return
	}

	top := center.Add(core.V(0, e.HalfExtent.Y))
	hp := e.Chain.Hook.Position()
	hook := core.V(hp.X*upm, hp.Y*upm)

	c.Line(top, hook, 3, core.ColorDarkGray)
	span := hook.Sub(top)
	if n := int(span.Len() / 10); n > 0 {
		step := span.Scale(1 / float64(n))
		for i := 0; i < n; i++ {
			c.FillCircle(top.Add(step.Scale(float64(i))), 4, core.ColorGray)
		}
	}

	half := e.Chain.HookHalfExtent
	r := math.Hypot(half.X, half.Y)
	c.FillBox(hook, half, e.Chain.Hook.Angle(), 0, e.Visual.Tint)
	c.StrokeCircle(hook, r*1.2, 2, core.ColorDarkGray)
}

// launcherBehavior charges while the button is held and draws the aim
// line and power indicator.
type launcherBehavior struct{}

func (*launcherBehavior) Update(e *entity.Entity, dt float64) {
	if e.Launcher != nil {
		e.Launcher.Accumulate(dt)
	}
}

func (*launcherBehavior) Render(e *entity.Entity, c core.Canvas, upm float64) {
	center := e.Position(upm)
	c.FillBox(center, e.HalfExtent, e.Angle(), 0, core.ColorOrange)

	l := e.Launcher
	if l == nil || !l.Charging {
		return
	}
	c.Line(center, center.Add(l.Aim.Scale(200)), 3, core.ColorYellow)

	ratio := l.ChargeRatio()
	c.FillCircle(center, 10+ratio*15, powerColor(ratio))
}

// Release drops the launcher context.
func (*launcherBehavior) Release(e *entity.Entity) {
	e.Launcher = nil
}

func powerColor(ratio float64) color.RGBA {
	switch {
	case ratio < 0.5:
		return core.ColorYellow
	case ratio < 0.8:
		return core.ColorOrange
	default:
		return core.ColorRed
	}
}

// wrapDegrees maps a into [0, 360).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
