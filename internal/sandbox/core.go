// Package sandbox runs the gameplay core: it owns the physics world, the
// entity buckets and the identifier registry, and advances them one frame
// at a time.
package sandbox

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hookshot/internal/config"
	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/factory"
	"github.com/vovakirdan/hookshot/internal/level"
	"github.com/vovakirdan/hookshot/internal/physics"
	"github.com/vovakirdan/hookshot/internal/texture"
)

var (
	// ErrInvariant is wrapped by errors that mean the core state is broken
	// and the session must end.
	ErrInvariant = errors.New("sandbox: invariant breach")

	// ErrClosed is returned by operations on a closed core.
	ErrClosed = errors.New("sandbox: closed")

	// ErrNotFound is returned for identifiers that name no live entity.
	ErrNotFound = errors.New("sandbox: entity not found")
)

type phase int

const (
	phaseIdle phase = iota
	phaseStep
	phaseRender
)

// Options configure a new core.
type Options struct {
	Settings config.Settings
	Textures level.TextureLoader // nil leaves sprites unset
	Logger   *log.Logger         // nil uses log.Default()
}

// Stats counts what happened during a session.
type Stats struct {
	Frames         int
	SimTime        float64 // seconds of simulated time
	ShotsFired     int
	ShotsDiscarded int
	Captures       int
}

// Core is one simulation instance. It is not safe for concurrent use.
type Core struct {
	settings config.Settings
	upm      float64
	logger   *log.Logger
	textures level.TextureLoader

	world    *physics.World
	registry *entity.Registry
	factory  *factory.Factory
	mat      *level.Materializer

	obstacles   []*entity.Entity
	hazards     []*entity.Entity
	launchers   []*entity.Entity
	projectiles []*entity.Entity
	byID        map[entity.ID]*entity.Entity

	projectileSprite core.Texture

	paused bool
	debug  bool
	phase  phase
	closed bool
	stats  Stats
}

// New creates an empty world from validated settings.
func New(opts Options) (*Core, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := opts.Settings
	world := physics.NewWorld(physics.Config{
		Gravity:       physics.Vec2{X: 0, Y: s.World.Gravity},
		SubSteps:      s.World.SubSteps,
		Iterations:    s.World.Iterations,
		CollisionSlop: physics.DefaultConfig().CollisionSlop,
	})
	registry := entity.NewRegistry()
	f := factory.New(world, registry, factory.Options{
		UnitsPerMeter:      s.World.UnitsPerMeter,
		ChargeRate:         s.Launcher.ChargeRate,
		LauncherHalfExtent: s.Launcher.ExtentPx,
	})

	c := &Core{
		settings: s,
		upm:      s.World.UnitsPerMeter,
		logger:   logger,
		textures: opts.Textures,
		world:    world,
		registry: registry,
		factory:  f,
		mat:      level.NewMaterializer(f, opts.Textures, logger),
		byID:     make(map[entity.ID]*entity.Entity),
	}
	if c.textures != nil {
		tex, err := c.textures.Load(texture.Box)
		if err != nil {
			logger.Warn("projectile texture unavailable", "path", texture.Box, "error", err)
		}
		c.projectileSprite = tex
	}
	return c, nil
}

// Load materializes a level into the buckets.
func (c *Core) Load(t *level.Tree) (level.Report, error) {
	if c.closed {
		return level.Report{}, ErrClosed
	}
	b, r := c.mat.Materialize(t)
	c.adopt(&c.obstacles, b.Obstacles)
	c.adopt(&c.hazards, b.Hazards)
	c.adopt(&c.launchers, b.Launchers)
	c.adopt(&c.projectiles, b.Projectiles)
	return r, nil
}

func (c *Core) adopt(bucket *[]*entity.Entity, es []*entity.Entity) {
	for _, e := range es {
		*bucket = append(*bucket, e)
		c.byID[e.ID] = e
	}
}

// SpawnBox adds a dynamic box at pos (pixels) with the configured
// projectile size.
func (c *Core) SpawnBox(pos core.Vec2, mat entity.Material, vis entity.VisualStyle) (*entity.Entity, error) {
	if c.closed {
		return nil, ErrClosed
	}
	half := c.settings.Projectile.HalfExtentPx
	e, err := c.factory.Box(factory.BoxSpec{
		Position:   pos,
		HalfExtent: core.V(half, half),
		Sprite:     c.projectileSprite,
		Visual:     vis,
		Material:   mat,
	})
	if err != nil {
		return nil, err
	}
	c.adopt(&c.projectiles, []*entity.Entity{e})
	return e, nil
}

// SpawnProjectile adds a box with the launcher projectile material.
func (c *Core) SpawnProjectile(pos core.Vec2) (*entity.Entity, error) {
	return c.SpawnBox(pos, entity.ProjectileMaterial(), entity.ProjectileVisual())
}

// Lookup returns the live entity for id.
func (c *Core) Lookup(id entity.ID) (*entity.Entity, bool) {
	if !c.registry.IsAlive(id) {
		return nil, false
	}
	e, ok := c.byID[id]
	return e, ok
}

// DestroyEntity removes an entity from its bucket and releases it. When a
// hazard goes, every projectile it holds is released in the same call.
func (c *Core) DestroyEntity(id entity.ID) error {
	if c.closed {
		return ErrClosed
	}
	if c.phase == phaseRender {
		return fmt.Errorf("%w: destroy during render", ErrInvariant)
	}
	e, ok := c.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	switch e.Kind {
	case entity.KindHazard:
		for _, p := range c.projectiles {
			if p.Capture.Hazard == id {
				c.world.DestroyJoint(p.Capture.Joint)
				p.Capture.Clear()
			}
		}
		c.hazards = remove(c.hazards, e)
	case entity.KindObstacle:
		c.obstacles = remove(c.obstacles, e)
	case entity.KindLauncher:
		c.launchers = remove(c.launchers, e)
	case entity.KindProjectile:
		c.projectiles = remove(c.projectiles, e)
	}

	delete(c.byID, id)
	c.factory.Destroy(e)
	return nil
}

func remove(bucket []*entity.Entity, e *entity.Entity) []*entity.Entity {
	return slices.DeleteFunc(bucket, func(x *entity.Entity) bool { return x == e })
}

// Close destroys every entity in reverse bucket order and then the world.
// Calling Close again is a no-op.
func (c *Core) Close() {
	if c.closed {
		return
	}
	buckets := [][]*entity.Entity{c.projectiles, c.launchers, c.hazards, c.obstacles}
	for _, b := range buckets {
		for i := len(b) - 1; i >= 0; i-- {
			c.factory.Destroy(b[i])
		}
	}
	c.obstacles, c.hazards, c.launchers, c.projectiles = nil, nil, nil, nil
	clear(c.byID)
	c.world.Destroy()
	c.closed = true
	c.logger.Debug("sandbox closed", "frames", c.stats.Frames)
}

// Closed reports whether Close has run.
func (c *Core) Closed() bool { return c.closed }

// Obstacles returns the obstacle bucket. Callers must not modify it.
func (c *Core) Obstacles() []*entity.Entity { return c.obstacles }

// Hazards returns the hazard bucket. Callers must not modify it.
func (c *Core) Hazards() []*entity.Entity { return c.hazards }

// Launchers returns the launcher bucket. Callers must not modify it.
func (c *Core) Launchers() []*entity.Entity { return c.launchers }

// Projectiles returns the projectile bucket. Callers must not modify it.
func (c *Core) Projectiles() []*entity.Entity { return c.projectiles }

// Counts returns the size of every bucket.
func (c *Core) Counts() (obstacles, hazards, launchers, projectiles int) {
	return len(c.obstacles), len(c.hazards), len(c.launchers), len(c.projectiles)
}

// World returns the physics world.
func (c *Core) World() *physics.World { return c.world }

// Registry returns the identifier registry.
func (c *Core) Registry() *entity.Registry { return c.registry }

// UnitsPerMeter returns the pixel to meter scale of this world.
func (c *Core) UnitsPerMeter() float64 { return c.upm }

// Settings returns the settings the core was created with.
func (c *Core) Settings() config.Settings { return c.settings }

// Paused reports whether the simulation is paused.
func (c *Core) Paused() bool { return c.paused }

// Debug reports whether the debug overlay is on.
func (c *Core) Debug() bool { return c.debug }

// Stats returns the session counters.
func (c *Core) Stats() Stats { return c.stats }
