package entity

import (
	"github.com/vovakirdan/hookshot/internal/core"
)

// Snapshot is the comparable, body-free view of an entity used by
// determinism and reload tests.
type Snapshot struct {
	Kind       Kind
	Position   core.Vec2 // pixels
	Angle      float64
	HalfExtent core.Vec2
	Sprite     string
	Visual     VisualStyle
	Material   Material
	Hazard     HazardProps
	Frozen     bool
	HookAt     core.Vec2 // pixels, chain hazards only
	Launcher   LauncherState
}

// Snapshot captures the entity's current attributes.
func (e *Entity) Snapshot(unitsPerMeter float64) Snapshot {
	s := Snapshot{
		Kind:       e.Kind,
		Position:   e.Position(unitsPerMeter),
		Angle:      e.Angle(),
		HalfExtent: e.HalfExtent,
		Visual:     e.Visual,
		Material:   e.Material,
		Hazard:     e.Hazard,
		Frozen:     e.Capture.Frozen,
	}
	if e.Sprite != nil {
		s.Sprite = e.Sprite.Key()
	}
	if e.Chain != nil {
		p := e.Chain.Hook.Position()
		s.HookAt = core.V(p.X*unitsPerMeter, p.Y*unitsPerMeter)
	}
	if e.Launcher != nil {
		s.Launcher = *e.Launcher
	}
	return s
}
