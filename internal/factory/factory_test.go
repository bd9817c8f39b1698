package factory

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/physics"
)

const upm = 50.0

func newFactory(t *testing.T) (*Factory, *physics.World, *entity.Registry) {
	t.Helper()
	w := physics.NewWorld(physics.DefaultConfig())
	t.Cleanup(w.Destroy)
	reg := entity.NewRegistry()
	return New(w, reg, DefaultOptions()), w, reg
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestObstacle(t *testing.T) {
	f, w, reg := newFactory(t)

	e, err := f.Obstacle(ObstacleSpec{
		Position:   core.V(300, 950),
		HalfExtent: core.V(150, 20),
		Visual:     entity.VisualStyle{Tint: core.ColorDarkGray},
	})
	if err != nil {
		t.Fatalf("Obstacle() failed: %v", err)
	}

	if e.Kind != entity.KindObstacle {
		t.Errorf("Kind = %v, expected obstacle", e.Kind)
	}
	if !reg.IsAlive(e.ID) {
		t.Error("obstacle ID should be alive")
	}
	if e.Body.Type() != physics.Static {
		t.Error("obstacle body should be static")
	}
	if p := e.Position(upm); !near(p.X, 300, 1e-9) || !near(p.Y, 950, 1e-9) {
		t.Errorf("Position() = %+v, expected (300, 950)", p)
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount() = %d, expected 1", w.BodyCount())
	}
}

func TestObstacleRollsBackOnInvalidShape(t *testing.T) {
	f, w, reg := newFactory(t)

	_, err := f.Obstacle(ObstacleSpec{Position: core.V(10, 10), HalfExtent: core.V(0, 20)})
	if !errors.Is(err, physics.ErrInvalidShape) {
		t.Fatalf("Obstacle() error = %v, expected ErrInvalidShape", err)
	}
	if w.BodyCount() != 0 {
		t.Errorf("BodyCount() = %d after rollback, expected 0", w.BodyCount())
	}
	if reg.Capacity() != 1 || reg.FreeCount() != 1 {
		t.Errorf("registry capacity %d, free %d; expected the slot to be released", reg.Capacity(), reg.FreeCount())
	}
}

func TestProjectileMaterial(t *testing.T) {
	f, _, _ := newFactory(t)

	e, err := f.Projectile(core.V(400, 800), core.V(16, 16), nil)
	if err != nil {
		t.Fatalf("Projectile() failed: %v", err)
	}

	if e.Kind != entity.KindProjectile {
		t.Errorf("Kind = %v, expected projectile", e.Kind)
	}
	if e.Material != entity.ProjectileMaterial() {
		t.Errorf("Material = %+v", e.Material)
	}
	if e.Visual != entity.ProjectileVisual() {
		t.Errorf("Visual = %+v", e.Visual)
	}
	if got, expected := e.Body.Mass(), 0.1*0.64*0.64; !near(got, expected, 1e-9) {
		t.Errorf("Mass() = %f, expected %f", got, expected)
	}
	if e.Body.GravityScale() != 1 {
		t.Errorf("GravityScale() = %f, expected 1", e.Body.GravityScale())
	}
	if e.Body.LinearDamping() != 0.1 || e.Body.AngularDamping() != 0.1 {
		t.Error("projectile damping should be 0.1/0.1")
	}
	if e.Capture.Captured() || e.Capture.Hazard.Valid() {
		t.Error("new projectile should not be captured")
	}
}

func TestBoxWithoutGravity(t *testing.T) {
	f, w, _ := newFactory(t)

	m := entity.DefaultMaterial()
	m.Gravity = false
	e, err := f.Box(BoxSpec{Position: core.V(100, 100), HalfExtent: core.V(10, 10), Material: m})
	if err != nil {
		t.Fatalf("Box() failed: %v", err)
	}

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	if p := e.Position(upm); !near(p.Y, 100, 1e-6) {
		t.Errorf("box without gravity moved to y=%f", p.Y)
	}
}

func TestHazardAnchorStaysPut(t *testing.T) {
	for _, v := range []entity.HazardVariant{entity.HazardNormal, entity.HazardSaw, entity.HazardChain} {
		t.Run(v.String(), func(t *testing.T) {
			f, w, _ := newFactory(t)

			props := entity.DefaultHazardProps()
			props.Variant = v
			props.ChainLength = 200
			e, err := f.Hazard(HazardSpec{Position: core.V(800, 300), Radius: 24, Props: props})
			if err != nil {
				t.Fatalf("Hazard() failed: %v", err)
			}

			if e.Body.GravityScale() != 0 {
				t.Errorf("GravityScale() = %f, expected 0", e.Body.GravityScale())
			}
			if !e.Body.FixedRotation() {
				t.Error("hazard anchor should have fixed rotation")
			}
			if e.HalfExtent != core.V(24, 24) {
				t.Errorf("HalfExtent = %+v, expected 24x24", e.HalfExtent)
			}

			for i := 0; i < 60; i++ {
				w.Step(1.0 / 60)
			}
			if p := e.Position(upm); !near(p.X, 800, 0.5) || !near(p.Y, 300, 0.5) {
				t.Errorf("anchor drifted to %+v", p)
			}
		})
	}
}

func TestChainHazardRig(t *testing.T) {
	f, w, _ := newFactory(t)

	props := entity.DefaultHazardProps()
	props.Variant = entity.HazardChain
	props.ChainLength = 200
	e, err := f.Hazard(HazardSpec{Position: core.V(800, 300), Radius: 24, Props: props})
	if err != nil {
		t.Fatalf("Hazard() failed: %v", err)
	}

	if e.Chain == nil || e.Chain.Hook == nil || e.Chain.Rope == nil {
		t.Fatal("chain hazard should own a hook and a rope")
	}
	hp := e.Chain.Hook.Position()
	if !near(hp.X*upm, 800, 1e-9) || !near(hp.Y*upm, 524, 1e-9) {
		t.Errorf("hook at (%f, %f) px, expected (800, 524)", hp.X*upm, hp.Y*upm)
	}

	rope := e.Chain.Rope
	if rope.Kind() != physics.DistanceJoint {
		t.Errorf("rope kind = %v, expected distance", rope.Kind())
	}
	if rope.MinLength() != 0 || !near(rope.MaxLength(), 4, 1e-12) {
		t.Errorf("rope limits [%f, %f], expected [0, 4]", rope.MinLength(), rope.MaxLength())
	}
	if rope.SpringEnabled() {
		t.Error("rope spring should be disabled")
	}
	if !rope.Binds(e.Body, e.Chain.Hook) {
		t.Error("rope should bind anchor and hook")
	}
	if got := e.Chain.HookHalfExtent; got != props.HookHalfExtent() {
		t.Errorf("HookHalfExtent = %+v", got)
	}
	if w.BodyCount() != 2 || w.JointCount() != 1 {
		t.Errorf("world holds %d bodies, %d joints; expected 2, 1", w.BodyCount(), w.JointCount())
	}

	f.Destroy(e)
	if w.BodyCount() != 0 || w.JointCount() != 0 {
		t.Errorf("after destroy world holds %d bodies, %d joints", w.BodyCount(), w.JointCount())
	}
	if f.Registry().IsAlive(e.ID) {
		t.Error("destroyed hazard ID should be dead")
	}
}

func TestChainHazardRollsBack(t *testing.T) {
	f, w, reg := newFactory(t)

	props := entity.DefaultHazardProps()
	props.Variant = entity.HazardChain
	props.ChainLength = -10
	_, err := f.Hazard(HazardSpec{Position: core.V(100, 100), Radius: 24, Props: props})
	if !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("Hazard() error = %v, expected ErrInvalidSpec", err)
	}
	if w.BodyCount() != 0 || w.JointCount() != 0 {
		t.Errorf("rollback left %d bodies, %d joints", w.BodyCount(), w.JointCount())
	}
	if reg.FreeCount() != 1 {
		t.Errorf("FreeCount() = %d, expected 1", reg.FreeCount())
	}
}

func TestLauncher(t *testing.T) {
	f, _, _ := newFactory(t)

	e, err := f.Launcher(LauncherSpec{Position: core.V(400, 800), MaxPower: 200, ImpulseMultiplier: 8})
	if err != nil {
		t.Fatalf("Launcher() failed: %v", err)
	}

	l := e.Launcher
	if l == nil {
		t.Fatal("launcher state missing")
	}
	expected := entity.LauncherState{
		Aim:               core.V(1, 0),
		ChargeRate:        150,
		MaxPower:          200,
		ImpulseMultiplier: 8,
		UnitsPerMeter:     upm,
	}
	if *l != expected {
		t.Errorf("LauncherState = %+v, expected %+v", *l, expected)
	}
	if e.Body.Type() != physics.Static {
		t.Error("launcher should be static")
	}
	if e.HalfExtent != core.V(32, 32) {
		t.Errorf("HalfExtent = %+v", e.HalfExtent)
	}

	f.Destroy(e)
	if e.Launcher != nil {
		t.Error("destroy should release the launcher context")
	}
}

func TestLauncherRejectsPower(t *testing.T) {
	f, w, _ := newFactory(t)

	for _, power := range []float64{0, -5, math.NaN()} {
		if _, err := f.Launcher(LauncherSpec{MaxPower: power}); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Launcher(power=%v) error = %v, expected ErrInvalidSpec", power, err)
		}
	}
	if w.BodyCount() != 0 {
		t.Errorf("BodyCount() = %d, expected 0", w.BodyCount())
	}
}

func TestSawRotationWraps(t *testing.T) {
	f, _, _ := newFactory(t)

	props := entity.DefaultHazardProps()
	props.Variant = entity.HazardSaw
	props.RotationSpeed = 90
	props.Rotation = 350
	e, err := f.Hazard(HazardSpec{Position: core.V(100, 100), Radius: 24, Props: props})
	if err != nil {
		t.Fatalf("Hazard() failed: %v", err)
	}

	e.Update(0.5)
	if !near(e.Hazard.Rotation, 35, 1e-9) {
		t.Errorf("Rotation = %f, expected 35", e.Hazard.Rotation)
	}

	e.Hazard.RotationSpeed = -90
	e.Update(1)
	if !near(e.Hazard.Rotation, 305, 1e-9) {
		t.Errorf("Rotation = %f, expected 305", e.Hazard.Rotation)
	}

	for i := 0; i < 1000; i++ {
		e.Update(0.37)
		if r := e.Hazard.Rotation; r < 0 || r >= 360 {
			t.Fatalf("Rotation %f out of [0, 360)", r)
		}
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{360, 0},
		{725, 5},
		{-90, 270},
		{-360, 0},
		{-1e-18, 0},
	}
	for _, tc := range tests {
		if got := wrapDegrees(tc.in); !near(got, tc.expected, 1e-9) {
			t.Errorf("wrapDegrees(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

type op struct {
	name  string
	color color.RGBA
}

type recordCanvas struct {
	ops []op
}

func (r *recordCanvas) add(name string, c color.RGBA) { r.ops = append(r.ops, op{name, c}) }

func (r *recordCanvas) FillBox(_, _ core.Vec2, _, _ float64, c color.RGBA) { r.add("box", c) }
func (r *recordCanvas) DrawTexture(_ core.Texture, _, _ core.Vec2, _ float64, c color.RGBA) {
	r.add("texture", c)
}
func (r *recordCanvas) FillCircle(_ core.Vec2, _ float64, c color.RGBA)      { r.add("circle", c) }
func (r *recordCanvas) StrokeCircle(_ core.Vec2, _, _ float64, c color.RGBA) { r.add("ring", c) }
func (r *recordCanvas) FillTriangle(_, _, _ core.Vec2, c color.RGBA)         { r.add("triangle", c) }
func (r *recordCanvas) Line(_, _ core.Vec2, _ float64, c color.RGBA)         { r.add("line", c) }
func (r *recordCanvas) Text(_ core.Vec2, _ string, c color.RGBA)             { r.add("text", c) }

func (r *recordCanvas) count(name string) int {
	n := 0
	for _, o := range r.ops {
		if o.name == name {
			n++
		}
	}
	return n
}

func TestLauncherRender(t *testing.T) {
	f, _, _ := newFactory(t)
	e, err := f.Launcher(LauncherSpec{Position: core.V(400, 800), MaxPower: 200, ImpulseMultiplier: 8})
	if err != nil {
		t.Fatalf("Launcher() failed: %v", err)
	}

	idle := &recordCanvas{}
	e.Render(idle, upm)
	if len(idle.ops) != 1 || idle.ops[0].name != "box" {
		t.Errorf("idle launcher ops = %+v, expected a single box", idle.ops)
	}

	tests := []struct {
		charge   float64
		expected color.RGBA
	}{
		{50, core.ColorYellow},
		{120, core.ColorOrange},
		{200, core.ColorRed},
	}
	for _, tc := range tests {
		e.Launcher.Charging = true
		e.Launcher.Charge = tc.charge
		rc := &recordCanvas{}
		e.Render(rc, upm)
		if rc.count("line") != 1 || rc.count("circle") != 1 {
			t.Fatalf("charging launcher ops = %+v", rc.ops)
		}
		if last := rc.ops[len(rc.ops)-1]; last.color != tc.expected {
			t.Errorf("charge %v: power colour %v, expected %v", tc.charge, last.color, tc.expected)
		}
	}
}

func TestHazardRender(t *testing.T) {
	f, _, _ := newFactory(t)

	tests := []struct {
		variant entity.HazardVariant
		op      string
		count   int
	}{
		{entity.HazardNormal, "line", 12},
		{entity.HazardSaw, "triangle", 8},
		{entity.HazardChain, "line", 1},
	}
	for _, tc := range tests {
		props := entity.DefaultHazardProps()
		props.Variant = tc.variant
		props.ChainLength = 50
		e, err := f.Hazard(HazardSpec{
			Position: core.V(200, 200),
			Radius:   24,
			Props:    props,
			Visual:   entity.VisualStyle{Tint: core.ColorRed},
		})
		if err != nil {
			t.Fatalf("Hazard(%v) failed: %v", tc.variant, err)
		}
		rc := &recordCanvas{}
		e.Render(rc, upm)
		if got := rc.count(tc.op); got != tc.count {
			t.Errorf("%v: %d %s ops, expected %d", tc.variant, got, tc.op, tc.count)
		}
	}
}

func TestBoxRenderUsesTexture(t *testing.T) {
	f, _, _ := newFactory(t)
	e, err := f.Obstacle(ObstacleSpec{
		Position:   core.V(50, 50),
		HalfExtent: core.V(10, 10),
		Sprite:     stubTexture("ground.png"),
		Visual:     entity.DefaultVisual(),
	})
	if err != nil {
		t.Fatalf("Obstacle() failed: %v", err)
	}

	rc := &recordCanvas{}
	e.Render(rc, upm)
	if rc.count("texture") != 1 {
		t.Errorf("textured obstacle ops = %+v", rc.ops)
	}

	e.Visual.UseTexture = false
	rc = &recordCanvas{}
	e.Render(rc, upm)
	if rc.count("box") != 1 {
		t.Errorf("solid obstacle ops = %+v", rc.ops)
	}
}
