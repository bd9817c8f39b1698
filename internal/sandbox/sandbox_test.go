package sandbox

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hookshot/internal/config"
	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/level"
	"github.com/vovakirdan/hookshot/internal/physics"
	"github.com/vovakirdan/hookshot/internal/texture"
)

const dt = 1.0 / 60

func newCore(t *testing.T, doc string) *Core {
	t.Helper()
	logger := log.New(io.Discard)
	c, err := New(Options{
		Settings: config.DefaultSettings(),
		Textures: texture.NewCache(nil, logger),
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(c.Close)

	tree, err := level.ParseTOML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTOML() failed: %v", err)
	}
	r, err := c.Load(tree)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !r.OK() {
		t.Fatalf("level diagnostics: %v", r.Diagnostics)
	}
	return c
}

func step(t *testing.T, c *Core, in core.InputFrame) StepResult {
	t.Helper()
	res, err := c.Step(in, dt)
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	return res
}

func idle(t *testing.T, c *Core, frames int) {
	t.Helper()
	for i := 0; i < frames; i++ {
		step(t, c, core.NewInputFrame())
	}
}

func noGravity() entity.Material {
	m := entity.DefaultMaterial()
	m.Gravity = false
	return m
}

func TestEmptyScenario(t *testing.T) {
	c := newCore(t, "")

	if o, h, l, p := c.Counts(); o+h+l+p != 0 {
		t.Fatalf("buckets = (%d, %d, %d, %d), expected all empty", o, h, l, p)
	}
	idle(t, c, 60)

	if o, h, l, p := c.Counts(); o+h+l+p != 0 {
		t.Errorf("buckets changed to (%d, %d, %d, %d)", o, h, l, p)
	}
	if c.World().BodyCount() != 0 || c.World().JointCount() != 0 {
		t.Error("empty world gained bodies or joints")
	}
	if c.Stats().Frames != 60 {
		t.Errorf("Frames = %d, expected 60", c.Stats().Frames)
	}
}

func TestBoxFallsOntoObstacle(t *testing.T) {
	c := newCore(t, `
[[obstacles]]
x = 300
y = 950
w = 300
h = 40
`)
	p, err := c.SpawnBox(core.V(400, 100), entity.DefaultMaterial(), entity.DefaultVisual())
	if err != nil {
		t.Fatalf("SpawnBox() failed: %v", err)
	}

	still := 0
	for i := 0; i < 1200 && still < 2; i++ {
		step(t, c, core.NewInputFrame())
		if math.Abs(p.Body.Velocity().Y) < 1e-3 {
			still++
		} else {
			still = 0
		}
	}
	if still < 2 {
		t.Fatalf("box never settled, vy = %f", p.Body.Velocity().Y)
	}
	if y := p.Position(c.UnitsPerMeter()).Y; y < 910 || y > 940 {
		t.Errorf("box rests at y = %f px, expected [910, 940]", y)
	}
}

func TestNormalSpikeCapture(t *testing.T) {
	c := newCore(t, `
[[spikes]]
x = 600
y = 500
r = 24
`)
	spike := c.Hazards()[0]
	p, err := c.SpawnProjectile(core.V(600, 100))
	if err != nil {
		t.Fatalf("SpawnProjectile() failed: %v", err)
	}

	var captured []Capture
	for i := 0; i < 120 && !p.Capture.Frozen; i++ {
		captured = append(captured, step(t, c, core.NewInputFrame()).Captures...)
	}
	if !p.Capture.Frozen {
		t.Fatal("projectile not captured within 2 s")
	}
	if len(captured) != 1 || captured[0].Projectile != p.ID || captured[0].Hazard != spike.ID {
		t.Errorf("captures = %+v", captured)
	}

	j := p.Capture.Joint
	if j == nil || j.Kind() != physics.RevoluteJoint {
		t.Fatalf("capture joint = %v, expected revolute", j)
	}
	if !j.Binds(spike.Body, p.Body) {
		t.Error("joint should bind spike and projectile")
	}
	if p.Capture.Hazard != spike.ID {
		t.Errorf("Capture.Hazard = %v, expected %v", p.Capture.Hazard, spike.ID)
	}

	upm := c.UnitsPerMeter()
	for i := 0; i < 90; i++ {
		step(t, c, core.NewInputFrame())
		if i < 30 {
			continue // let the pin pull the box in
		}
		d := p.Position(upm).Sub(spike.Position(upm)).Len()
		if d > p.Radius()+2 {
			t.Fatalf("frame %d: center distance %f px exceeds radius %f", i, d, p.Radius())
		}
	}
	if !p.Capture.Frozen || p.Capture.Joint != j {
		t.Error("capture should persist across frames")
	}
	if c.Stats().Captures != 1 {
		t.Errorf("Captures = %d, expected 1", c.Stats().Captures)
	}
}

func TestChainRopeLimit(t *testing.T) {
	c := newCore(t, `
[[spikes]]
x = 800
y = 300
r = 24
type = "chain"
chainLength = 200
`)
	h := c.Hazards()[0]
	upm := c.UnitsPerMeter()
	anchor := core.V(800, 324)

	for i := 0; i < 60; i++ {
		step(t, c, core.NewInputFrame())
		hp := h.Chain.Hook.Position()
		d := core.V(hp.X*upm, hp.Y*upm).Sub(anchor).Len()
		if d > 200+2 {
			t.Fatalf("frame %d: hook %f px from anchor, limit 200", i, d)
		}
	}

	hp := h.Chain.Hook.Position()
	if d := core.V(hp.X*upm, hp.Y*upm).Sub(anchor).Len(); d < 195 {
		t.Errorf("rope should be taut after 1 s, hook at %f px", d)
	}
	if p := h.Position(upm); math.Abs(p.Y-300) > 0.5 {
		t.Errorf("anchor moved to %+v", p)
	}
}

func TestChainCapture(t *testing.T) {
	c := newCore(t, `
[[spikes]]
x = 800
y = 300
r = 24
type = "chain"
chainLength = 200
jointHertz = 5
jointDamping = 0.7
`)
	h := c.Hazards()[0]
	p, err := c.SpawnBox(core.V(830, 524), noGravity(), entity.DefaultVisual())
	if err != nil {
		t.Fatalf("SpawnBox() failed: %v", err)
	}

	step(t, c, core.NewInputFrame())
	if !p.Capture.Frozen {
		t.Fatal("projectile next to the hook should be captured")
	}
	j := p.Capture.Joint
	if j.Kind() != physics.DistanceJoint || !j.Binds(h.Chain.Hook, p.Body) {
		t.Fatalf("chain capture joint = %v binding wrong bodies", j.Kind())
	}
	if !j.SpringEnabled() {
		t.Error("chain capture should be sprung")
	}
	if j.MinLength() != 0.5 || math.Abs(j.MaxLength()-1.5*j.Length()) > 1e-9 {
		t.Errorf("limits [%f, %f] for length %f", j.MinLength(), j.MaxLength(), j.Length())
	}
	if math.Abs(j.Length()-0.6) > 0.05 {
		t.Errorf("Length() = %f m, expected about 0.6", j.Length())
	}
}

func TestFirstHazardInBucketOrderWins(t *testing.T) {
	for _, tc := range []struct {
		name   string
		doc    string
		winner int
	}{
		{"left first", "[[spikes]]\nx = 500\ny = 500\nr = 10\n[[spikes]]\nx = 560\ny = 500\nr = 10\n", 0},
		{"right first", "[[spikes]]\nx = 560\ny = 500\nr = 10\n[[spikes]]\nx = 500\ny = 500\nr = 10\n", 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newCore(t, tc.doc)
			p, err := c.SpawnBox(core.V(530, 500), noGravity(), entity.DefaultVisual())
			if err != nil {
				t.Fatalf("SpawnBox() failed: %v", err)
			}
			res := step(t, c, core.NewInputFrame())
			if len(res.Captures) != 1 {
				t.Fatalf("captures = %+v, expected one", res.Captures)
			}
			if expected := c.Hazards()[tc.winner].ID; p.Capture.Hazard != expected {
				t.Errorf("captured by %v, expected %v", p.Capture.Hazard, expected)
			}
			if c.World().JointCount() != 1 {
				t.Errorf("JointCount() = %d, expected 1", c.World().JointCount())
			}
		})
	}
}

func TestCapturedProjectileIsNotRecaptured(t *testing.T) {
	c := newCore(t, "[[spikes]]\nx = 500\ny = 500\nr = 10\n")
	p, err := c.SpawnBox(core.V(530, 500), noGravity(), entity.DefaultVisual())
	if err != nil {
		t.Fatalf("SpawnBox() failed: %v", err)
	}

	idle(t, c, 30)
	if c.Stats().Captures != 1 || c.World().JointCount() != 1 {
		t.Errorf("captures %d, joints %d; expected 1 and 1", c.Stats().Captures, c.World().JointCount())
	}
	if !p.Capture.Captured() {
		t.Error("projectile should stay captured")
	}
}

func press(at core.Vec2) core.InputFrame {
	in := core.NewInputFrame()
	in.Press(at)
	return in
}

func release(at core.Vec2) core.InputFrame {
	in := core.NewInputFrame()
	in.Release(at)
	return in
}

func hold(at core.Vec2) core.InputFrame {
	in := core.NewInputFrame()
	in.Pointer = at
	return in
}

const throwerLevel = `
[thrower]
x = 400
y = 800
power = 200
impulseMultiplier = 8
`

func TestLauncherFires(t *testing.T) {
	c := newCore(t, throwerLevel)
	l := c.Launchers()[0].Launcher
	aim := core.V(600, 800)

	step(t, c, press(aim))
	for i := 1; i < 30; i++ {
		step(t, c, hold(aim))
		if l.Charge < 0 || l.Charge > l.MaxPower {
			t.Fatalf("charge %f out of [0, %f]", l.Charge, l.MaxPower)
		}
	}
	if math.Abs(l.Charge-75) > 1e-9 {
		t.Fatalf("charge after 0.5 s = %f, expected 75", l.Charge)
	}

	res := step(t, c, release(aim))
	if _, _, _, n := c.Counts(); n != 1 {
		t.Fatalf("projectiles = %d, expected 1", n)
	}
	p := c.Projectiles()[0]
	if res.Fired != p.ID {
		t.Errorf("Fired = %v, expected %v", res.Fired, p.ID)
	}

	momentum := p.Body.Velocity().Mult(p.Body.Mass())
	expected := (75 / c.UnitsPerMeter()) * 8
	if math.Abs(momentum.X-expected) > 1e-6 || math.Abs(momentum.Y) > 1e-6 {
		t.Errorf("momentum = %+v, expected (%f, 0)", momentum, expected)
	}
	if l.Charging || l.Charge != 0 {
		t.Errorf("launcher state after fire: charging %v charge %f", l.Charging, l.Charge)
	}
	if l.Aim != core.V(1, 0) {
		t.Errorf("Aim = %+v, expected +x", l.Aim)
	}
	if p.Material != entity.ProjectileMaterial() || p.Visual != entity.ProjectileVisual() {
		t.Error("fired box should use the projectile material and visual")
	}
	if s := c.Stats(); s.ShotsFired != 1 || s.ShotsDiscarded != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestLauncherDiscardsWeakShot(t *testing.T) {
	c := newCore(t, throwerLevel)
	l := c.Launchers()[0].Launcher
	aim := core.V(600, 800)

	step(t, c, press(aim))
	step(t, c, hold(aim))
	step(t, c, hold(aim))
	res := step(t, c, release(aim))

	if _, _, _, n := c.Counts(); n != 0 {
		t.Errorf("projectiles = %d, expected 0", n)
	}
	if !res.Discarded || res.Fired.Valid() {
		t.Errorf("result = %+v, expected a discarded shot", res)
	}
	if l.Charging || l.Charge != 0 {
		t.Errorf("launcher state: charging %v charge %f", l.Charging, l.Charge)
	}
	if c.Stats().ShotsDiscarded != 1 {
		t.Errorf("ShotsDiscarded = %d", c.Stats().ShotsDiscarded)
	}
}

func TestLauncherChargeClampsAndAimNeedsDistance(t *testing.T) {
	c := newCore(t, throwerLevel)
	l := c.Launchers()[0].Launcher

	step(t, c, press(core.V(400, 600)))
	if l.Aim != core.V(0, -1) {
		t.Errorf("Aim = %+v, expected straight up", l.Aim)
	}
	for i := 0; i < 200; i++ {
		step(t, c, hold(core.V(400.5, 800)))
	}
	if l.Charge != l.MaxPower {
		t.Errorf("Charge = %f, expected clamp at %f", l.Charge, l.MaxPower)
	}
	if l.Aim != core.V(0, -1) {
		t.Errorf("pointer within 1px should keep the aim, got %+v", l.Aim)
	}

	// A release without a press is ignored.
	step(t, c, release(core.V(600, 800)))
	step(t, c, release(core.V(600, 800)))
	if c.Stats().ShotsFired != 1 || c.Stats().ShotsDiscarded != 0 {
		t.Errorf("stats = %+v, expected exactly one shot", c.Stats())
	}
}

func TestProjectileSpawnedThisFrameIsNotCaptured(t *testing.T) {
	c := newCore(t, throwerLevel+"\n[[spikes]]\nx = 400\ny = 780\nr = 10\n")
	aim := core.V(600, 800)

	step(t, c, press(aim))
	for i := 0; i < 20; i++ {
		step(t, c, hold(aim))
	}
	res := step(t, c, release(aim))
	if !res.Fired.Valid() || len(res.Captures) != 0 {
		t.Fatalf("fire frame result = %+v", res)
	}
	p, ok := c.Lookup(res.Fired)
	if !ok {
		t.Fatal("fired projectile not resolvable")
	}
	if p.Capture.Captured() || c.World().JointCount() != 0 {
		t.Error("a projectile must not be captured on its spawn frame")
	}
}

func TestPauseSkipsSimulation(t *testing.T) {
	c := newCore(t, "[[spikes]]\nx = 100\ny = 100\nr = 20\ntype = \"saw\"\nrotationSpeed = 60\n")
	p, err := c.SpawnProjectile(core.V(600, 100))
	if err != nil {
		t.Fatalf("SpawnProjectile() failed: %v", err)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if res := step(t, c, in); !res.Paused || !c.Paused() {
		t.Fatal("pause action should pause")
	}
	before := p.Position(c.UnitsPerMeter())
	idle(t, c, 30)
	if after := p.Position(c.UnitsPerMeter()); after != before {
		t.Errorf("paused box moved from %+v to %+v", before, after)
	}
	// Update hooks keep running while the simulation is held.
	if rot := c.Hazards()[0].Hazard.Rotation; math.Abs(rot-31) > 1e-6 {
		t.Errorf("saw rotation = %f, expected 31", rot)
	}

	step(t, c, in)
	idle(t, c, 10)
	if after := p.Position(c.UnitsPerMeter()); after.Y <= before.Y {
		t.Error("box should fall again after unpausing")
	}
}

func TestPausedChargeKeepsAccumulating(t *testing.T) {
	c := newCore(t, throwerLevel)
	l := c.Launchers()[0].Launcher
	aim := core.V(600, 800)

	step(t, c, press(aim))
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	step(t, c, pause)
	for i := 0; i < 120; i++ {
		step(t, c, hold(aim))
	}
	// The launcher hook is an update hook, so the charge tops out while paused.
	if !l.Charging || l.Charge != l.MaxPower {
		t.Fatalf("paused charge = %f (charging %v), expected %f", l.Charge, l.Charging, l.MaxPower)
	}

	// A release edge while paused is not seen by the launcher pass.
	step(t, c, release(aim))
	if _, _, _, n := c.Counts(); n != 0 {
		t.Fatalf("projectiles = %d after a paused release, expected 0", n)
	}
	if !l.Charging {
		t.Fatal("launcher should still be charging after a paused release")
	}

	step(t, c, pause)
	res := step(t, c, release(aim))
	if _, _, _, n := c.Counts(); n != 1 {
		t.Fatalf("projectiles = %d, expected 1", n)
	}
	p := c.Projectiles()[0]
	if res.Fired != p.ID {
		t.Errorf("Fired = %v, expected %v", res.Fired, p.ID)
	}
	momentum := p.Body.Velocity().Mult(p.Body.Mass())
	if expected := (l.MaxPower / c.UnitsPerMeter()) * 8; math.Abs(momentum.X-expected) > 1e-6 {
		t.Errorf("momentum = %+v, expected (%f, 0)", momentum, expected)
	}
}

func TestDebugToggle(t *testing.T) {
	c := newCore(t, "")
	in := core.NewInputFrame()
	in.Set(core.ActionDebug)

	step(t, c, in)
	if !c.Debug() {
		t.Error("debug should be on")
	}
	step(t, c, in)
	if c.Debug() {
		t.Error("debug should be off")
	}
}

func TestDestroyHazardReleasesCapture(t *testing.T) {
	c := newCore(t, "[[spikes]]\nx = 500\ny = 500\nr = 10\n")
	p, err := c.SpawnBox(core.V(530, 500), noGravity(), entity.DefaultVisual())
	if err != nil {
		t.Fatalf("SpawnBox() failed: %v", err)
	}
	step(t, c, core.NewInputFrame())
	j := p.Capture.Joint
	if j == nil {
		t.Fatal("setup: projectile not captured")
	}

	h := c.Hazards()[0]
	if err := c.DestroyEntity(h.ID); err != nil {
		t.Fatalf("DestroyEntity() failed: %v", err)
	}
	if p.Capture.Captured() || p.Capture.Joint != nil || p.Capture.Hazard.Valid() {
		t.Errorf("capture not cleared: %+v", p.Capture)
	}
	if j.Valid() || c.World().JointCount() != 0 {
		t.Error("capture joint should be destroyed with the hazard")
	}
	if _, ok := c.Lookup(h.ID); ok {
		t.Error("destroyed hazard still resolvable")
	}
	if err := c.DestroyEntity(h.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DestroyEntity() = %v, expected ErrNotFound", err)
	}

	idle(t, c, 5)
}

func TestDestroyChainHazard(t *testing.T) {
	c := newCore(t, "[[spikes]]\nx = 800\ny = 300\nr = 24\ntype = \"chain\"\nchainLength = 200\n")
	p, err := c.SpawnBox(core.V(830, 524), noGravity(), entity.DefaultVisual())
	if err != nil {
		t.Fatalf("SpawnBox() failed: %v", err)
	}
	step(t, c, core.NewInputFrame())
	if !p.Capture.Frozen {
		t.Fatal("setup: projectile not captured")
	}

	h := c.Hazards()[0]
	hook, rope := h.Chain.Hook, h.Chain.Rope
	if err := c.DestroyEntity(h.ID); err != nil {
		t.Fatalf("DestroyEntity() failed: %v", err)
	}
	if hook.Valid() || rope.Valid() || h.Body.Valid() {
		t.Error("chain hazard should release hook, rope and anchor")
	}
	if c.World().BodyCount() != 1 || c.World().JointCount() != 0 {
		t.Errorf("world holds %d bodies, %d joints; expected 1, 0", c.World().BodyCount(), c.World().JointCount())
	}
	if p.Capture.Captured() {
		t.Error("projectile should be free")
	}
}

func TestInvariantBreachIsFatal(t *testing.T) {
	c := newCore(t, "[[spikes]]\nx = 500\ny = 500\nr = 10\n")
	p, err := c.SpawnBox(core.V(530, 500), noGravity(), entity.DefaultVisual())
	if err != nil {
		t.Fatalf("SpawnBox() failed: %v", err)
	}
	step(t, c, core.NewInputFrame())

	c.World().DestroyJoint(p.Capture.Joint)
	if _, err := c.Step(core.NewInputFrame(), dt); !errors.Is(err, ErrInvariant) {
		t.Errorf("Step() error = %v, expected ErrInvariant", err)
	}
}

type reentrant struct {
	c   *Core
	err error
}

func (r *reentrant) Update(*entity.Entity, float64) {}

func (r *reentrant) Render(*entity.Entity, core.Canvas, float64) {
	_, r.err = r.c.Step(core.NewInputFrame(), dt)
}

func TestRenderGuardsAgainstStep(t *testing.T) {
	c := newCore(t, "[[obstacles]]\nx = 10\ny = 10\nw = 10\nh = 10\n")
	r := &reentrant{c: c}
	c.Obstacles()[0].Behavior = r

	if err := c.Render(&countCanvas{}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !errors.Is(r.err, ErrInvariant) {
		t.Errorf("Step() inside Render = %v, expected ErrInvariant", r.err)
	}
	if c.Stats().Frames != 0 {
		t.Error("re-entrant step must not advance the frame")
	}
}

func TestRenderDrawsEveryBucket(t *testing.T) {
	c := newCore(t, demoLevel)
	cv := &countCanvas{}
	if err := c.Render(cv); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if cv.calls == 0 || cv.text != 0 {
		t.Errorf("plain render: %d calls, %d text", cv.calls, cv.text)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionDebug)
	step(t, c, in)
	cv = &countCanvas{}
	if err := c.Render(cv); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if cv.text != 3 {
		t.Errorf("debug overlay drew %d labels, expected 3", cv.text)
	}
}

func TestCloseTearsDown(t *testing.T) {
	c := newCore(t, demoLevel)
	ids := []entity.ID{}
	for _, b := range [][]*entity.Entity{c.Obstacles(), c.Hazards(), c.Launchers(), c.Projectiles()} {
		for _, e := range b {
			ids = append(ids, e.ID)
		}
	}
	w := c.World()

	c.Close()
	c.Close()

	if !c.Closed() {
		t.Error("Closed() should report true")
	}
	for _, id := range ids {
		if c.Registry().IsAlive(id) {
			t.Errorf("%v still alive after Close", id)
		}
	}
	if w.BodyCount() != 0 || w.JointCount() != 0 {
		t.Errorf("world holds %d bodies, %d joints after Close", w.BodyCount(), w.JointCount())
	}
	if _, err := c.Step(core.NewInputFrame(), dt); !errors.Is(err, ErrClosed) {
		t.Errorf("Step() after Close = %v, expected ErrClosed", err)
	}
	if _, err := c.SpawnProjectile(core.V(0, 0)); !errors.Is(err, ErrClosed) {
		t.Errorf("SpawnProjectile() after Close = %v, expected ErrClosed", err)
	}
}

const demoLevel = `
[[obstacles]]
x = 960
y = 1060
w = 1920
h = 40

[[spikes]]
x = 900
y = 500
r = 24

[[spikes]]
x = 1200
y = 400
r = 30
type = "saw"

[[spikes]]
x = 1500
y = 200
r = 24
type = "chain"
chainLength = 150

[thrower]
x = 200
y = 900
power = 300

[[boxes]]
x = 700
y = 600
w = 32
h = 32
`

func snapshot(c *Core) []entity.Snapshot {
	var out []entity.Snapshot
	for _, b := range [][]*entity.Entity{c.Obstacles(), c.Hazards(), c.Launchers(), c.Projectiles()} {
		for _, e := range b {
			out = append(out, e.Snapshot(c.UnitsPerMeter()))
		}
	}
	return out
}

func TestDeterminism(t *testing.T) {
	run := func() []entity.Snapshot {
		c := newCore(t, demoLevel)
		aim := core.V(900, 500)
		for frame := 0; frame < 240; frame++ {
			var in core.InputFrame
			switch frame % 80 {
			case 0:
				in = press(aim)
			case 50:
				in = release(aim)
			default:
				in = hold(aim)
			}
			step(t, c, in)
		}
		return snapshot(c)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("entity counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entity %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.World.UnitsPerMeter = 0
	if _, err := New(Options{Settings: s}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() error = %v, expected config.ErrInvalid", err)
	}
}
