package level

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/entity"
	"github.com/vovakirdan/hookshot/internal/factory"
	"github.com/vovakirdan/hookshot/internal/texture"
)

// Section names of a level document.
const (
	SectionObstacles = "obstacles"
	SectionSpikes    = "spikes"
	SectionThrower   = "thrower"
	SectionBoxes     = "boxes"
)

const defaultImpulseMultiplier = 8.0

// TextureLoader resolves texture paths to handles.
type TextureLoader interface {
	Load(path string) (core.Texture, error)
}

// Buckets are the entities a level produced, in document order.
type Buckets struct {
	Obstacles   []*entity.Entity
	Hazards     []*entity.Entity
	Launchers   []*entity.Entity
	Projectiles []*entity.Entity
}

// Len returns the size of every bucket.
func (b *Buckets) Len() (obstacles, hazards, launchers, projectiles int) {
	return len(b.Obstacles), len(b.Hazards), len(b.Launchers), len(b.Projectiles)
}

// Materializer turns a Tree into entities through a factory.
type Materializer struct {
	factory  *factory.Factory
	textures TextureLoader
	logger   *log.Logger
}

// NewMaterializer creates a materializer. A nil textures loader leaves
// sprites unset; a nil logger uses log.Default().
func NewMaterializer(f *factory.Factory, textures TextureLoader, logger *log.Logger) *Materializer {
	if logger == nil {
		logger = log.Default()
	}
	return &Materializer{factory: f, textures: textures, logger: logger}
}

// Materialize creates every valid record of t. Problems never abort the
// load; they are logged and listed in the report.
func (m *Materializer) Materialize(t *Tree) (Buckets, Report) {
	var b Buckets
	r := Report{Level: t.Name}

	for i, n := range m.section(&r, t.Root, SectionObstacles) {
		if e := m.obstacle(&r, record{node: n, section: SectionObstacles, index: i}); e != nil {
			b.Obstacles = append(b.Obstacles, e)
		}
	}
	for i, n := range m.section(&r, t.Root, SectionSpikes) {
		if e := m.spike(&r, record{node: n, section: SectionSpikes, index: i}); e != nil {
			b.Hazards = append(b.Hazards, e)
		}
	}
	if n, ok := t.Root.Get(SectionThrower); ok {
		if !n.IsTable() {
			m.report(&r, Diagnostic{
				Section: SectionThrower,
				Index:   -1,
				Err:     fmt.Errorf("%w: expected a table", ErrWrongType),
				Dropped: true,
			})
		} else if e := m.thrower(&r, record{node: n, section: SectionThrower, index: -1}); e != nil {
			b.Launchers = append(b.Launchers, e)
		}
	}
	for i, n := range m.section(&r, t.Root, SectionBoxes) {
		if e := m.box(&r, record{node: n, section: SectionBoxes, index: i}); e != nil {
			b.Projectiles = append(b.Projectiles, e)
		}
	}

	r.Obstacles, r.Hazards, r.Launchers, r.Boxes = b.Len()
	m.logger.Info("level materialized",
		"level", t.Name,
		"obstacles", r.Obstacles,
		"hazards", r.Hazards,
		"launchers", r.Launchers,
		"boxes", r.Boxes,
		"diagnostics", len(r.Diagnostics))
	return b, r
}

func (m *Materializer) section(r *Report, root Node, name string) []Node {
	n, ok := root.Get(name)
	if !ok {
		return nil
	}
	if !n.IsArray() {
		m.report(r, Diagnostic{Section: name, Index: -1, Err: fmt.Errorf("%w: expected an array", ErrWrongType), Dropped: true})
		return nil
	}
	return n.Items()
}

func (m *Materializer) report(r *Report, d Diagnostic) {
	r.add(d)
	if d.Dropped {
		m.logger.Warn("record dropped", "section", d.Section, "index", d.Index, "error", d.Err)
		return
	}
	m.logger.Warn("record field replaced by default", "section", d.Section, "index", d.Index, "error", d.Err)
}

// record reads fields of one document record, reporting wrong-typed
// optional fields and remembering the first missing required one.
type record struct {
	node    Node
	section string
	index   int
	failed  error
}

func (rec *record) required(key string) float64 {
	f, err := rec.node.Float(key)
	if err != nil && rec.failed == nil {
		rec.failed = err
	}
	return f
}

func (rec *record) float(m *Materializer, r *Report, key string, def float64) float64 {
	f, err := rec.node.FloatOr(key, def)
	if err != nil {
		m.report(r, Diagnostic{Section: rec.section, Index: rec.index, Err: err})
		return def
	}
	return f
}

func (rec *record) boolean(m *Materializer, r *Report, key string, def bool) bool {
	b, err := rec.node.BoolOr(key, def)
	if err != nil {
		m.report(r, Diagnostic{Section: rec.section, Index: rec.index, Err: err})
	}
	return b
}

func (rec *record) str(m *Materializer, r *Report, key, def string) string {
	s, err := rec.node.StringOr(key, def)
	if err != nil {
		m.report(r, Diagnostic{Section: rec.section, Index: rec.index, Err: err})
	}
	return s
}

func (rec *record) color(m *Materializer, r *Report, key string, def color.RGBA) color.RGBA {
	c, err := rec.node.ColorOr(key, def)
	if err != nil {
		m.report(r, Diagnostic{Section: rec.section, Index: rec.index, Err: err})
	}
	return c
}

func (rec *record) drop(m *Materializer, r *Report, err error) {
	m.report(r, Diagnostic{Section: rec.section, Index: rec.index, Err: err, Dropped: true})
}

func (m *Materializer) visual(r *Report, rec *record, tint color.RGBA) entity.VisualStyle {
	return entity.VisualStyle{
		Tint:       rec.color(m, r, "color", tint),
		Roundness:  core.ClampF(rec.float(m, r, "roundness", 0), 0, 1),
		UseTexture: rec.boolean(m, r, "useTexture", true),
	}
}

func (m *Materializer) material(r *Report, rec *record) entity.Material {
	def := entity.DefaultMaterial()
	return entity.Material{
		Density:        rec.float(m, r, "density", def.Density),
		Friction:       rec.float(m, r, "friction", def.Friction),
		Restitution:    rec.float(m, r, "restitution", def.Restitution),
		LinearDamping:  rec.float(m, r, "linearDamping", def.LinearDamping),
		AngularDamping: rec.float(m, r, "angularDamping", def.AngularDamping),
		Gravity:        rec.boolean(m, r, "gravity", def.Gravity),
	}
}

// sprite resolves the record's texture, substituting the kind default
// when the named one cannot be loaded.
func (m *Materializer) sprite(r *Report, rec *record, fallback string) core.Texture {
	if m.textures == nil {
		return nil
	}
	path := rec.str(m, r, "texture", fallback)
	tex, err := m.textures.Load(path)
	if err == nil {
		return tex
	}
	m.report(r, Diagnostic{Section: rec.section, Index: rec.index, Err: err})
	if path == fallback {
		return nil
	}
	tex, err = m.textures.Load(fallback)
	if err != nil {
		m.logger.Error("default texture unavailable", "path", fallback, "error", err)
		return nil
	}
	return tex
}

func (m *Materializer) obstacle(r *Report, rec record) *entity.Entity {
	x, y := rec.required("x"), rec.required("y")
	w, h := rec.required("w"), rec.required("h")
	if rec.failed != nil {
		rec.drop(m, r, rec.failed)
		return nil
	}

	e, err := m.factory.Obstacle(factory.ObstacleSpec{
		Position:   core.V(x, y),
		HalfExtent: core.V(w*0.5, h*0.5),
		Visual:     m.visual(r, &rec, core.ColorDarkGray),
		Sprite:     m.sprite(r, &rec, texture.Ground),
	})
	if err != nil {
		rec.drop(m, r, err)
		return nil
	}
	return e
}

func (m *Materializer) spike(r *Report, rec record) *entity.Entity {
	x, y, radius := rec.required("x"), rec.required("y"), rec.required("r")
	if rec.failed != nil {
		rec.drop(m, r, rec.failed)
		return nil
	}

	props := entity.DefaultHazardProps()
	if name := rec.str(m, r, "type", ""); name != "" {
		v, ok := entity.ParseHazardVariant(name)
		if !ok {
			m.logger.Debug("unknown spike type, using normal", "index", rec.index, "type", name)
		}
		props.Variant = v
	}
	props.RotationSpeed = rec.float(m, r, "rotationSpeed", 90)
	props.ChainLength = rec.float(m, r, "chainLength", 50)
	props.LinkLength = rec.float(m, r, "linkLengthPx", props.LinkLength)
	props.LinkThickness = rec.float(m, r, "linkThicknessPx", props.LinkThickness)
	props.LinkDensity = rec.float(m, r, "linkDensity", props.LinkDensity)
	props.LinkFriction = rec.float(m, r, "linkFriction", props.LinkFriction)
	props.LinkRestitution = rec.float(m, r, "linkRestitution", props.LinkRestitution)
	props.HookScaleW = rec.float(m, r, "hookScaleW", props.HookScaleW)
	props.HookScaleH = rec.float(m, r, "hookScaleH", props.HookScaleH)
	props.JointHertz = rec.float(m, r, "jointHertz", props.JointHertz)
	props.JointDamping = rec.float(m, r, "jointDamping", props.JointDamping)
	props.SelfCollide = rec.boolean(m, r, "chainSelfCollide", props.SelfCollide)

	e, err := m.factory.Hazard(factory.HazardSpec{
		Position: core.V(x, y),
		Radius:   radius,
		Visual:   m.visual(r, &rec, core.ColorRed),
		Sprite:   m.sprite(r, &rec, texture.Box),
		Props:    props,
	})
	if err != nil {
		rec.drop(m, r, err)
		return nil
	}
	return e
}

func (m *Materializer) thrower(r *Report, rec record) *entity.Entity {
	x, y, power := rec.required("x"), rec.required("y"), rec.required("power")
	if rec.failed != nil {
		rec.drop(m, r, rec.failed)
		return nil
	}

	e, err := m.factory.Launcher(factory.LauncherSpec{
		Position:          core.V(x, y),
		MaxPower:          power,
		ImpulseMultiplier: rec.float(m, r, "impulseMultiplier", defaultImpulseMultiplier),
		Sprite:            m.sprite(r, &rec, texture.Box),
	})
	if err != nil {
		rec.drop(m, r, err)
		return nil
	}
	return e
}

func (m *Materializer) box(r *Report, rec record) *entity.Entity {
	x, y := rec.required("x"), rec.required("y")
	w, h := rec.required("w"), rec.required("h")
	if rec.failed != nil {
		rec.drop(m, r, rec.failed)
		return nil
	}

	e, err := m.factory.Box(factory.BoxSpec{
		Position:   core.V(x, y),
		HalfExtent: core.V(w*0.5, h*0.5),
		Visual:     m.visual(r, &rec, core.ColorWhite),
		Material:   m.material(r, &rec),
		Sprite:     m.sprite(r, &rec, texture.Box),
	})
	if err != nil {
		rec.drop(m, r, err)
		return nil
	}
	return e
}

// IsMissingField reports whether a diagnostic was caused by an absent
// required field.
func IsMissingField(d Diagnostic) bool {
	return errors.Is(d.Err, ErrMissingField)
}
