package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		World: WorldConfig{
			UnitsPerMeter: 50,
			Gravity:       9.8,
			SubSteps:      4,
			Iterations:    10,
		},
		Capture: CaptureConfig{
			Margin: 1.25,
		},
		Launcher: LauncherConfig{
			ChargeRate:    150,
			FireThreshold: 10,
			ExtentPx:      32,
		},
		Projectile: ProjectileConfig{
			HalfExtentPx: 16,
		},
		Viewport: ViewportConfig{
			Width:  1920,
			Height: 1080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "hookshot",
		},
	}
}
