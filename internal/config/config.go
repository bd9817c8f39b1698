// Package config provides YAML-based session settings for the sandbox:
// world constants, capture and launcher tuning, viewport and logging.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Settings is the full session configuration.
type Settings struct {
	World      WorldConfig      `yaml:"world"`
	Capture    CaptureConfig    `yaml:"capture"`
	Launcher   LauncherConfig   `yaml:"launcher"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Logging    LoggingConfig    `yaml:"logging"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// WorldConfig holds the constants fixed at world creation.
type WorldConfig struct {
	UnitsPerMeter float64 `yaml:"units_per_meter"` // pixels per meter
	Gravity       float64 `yaml:"gravity"`         // m/s², +y is down
	SubSteps      int     `yaml:"sub_steps"`
	Iterations    int     `yaml:"iterations"`
}

// CaptureConfig tunes the hazard capture test.
type CaptureConfig struct {
	Margin float64 `yaml:"margin"` // linear factor on the summed radii
}

// LauncherConfig tunes charge and fire.
type LauncherConfig struct {
	ChargeRate    float64 `yaml:"charge_rate"`    // charge per second
	FireThreshold float64 `yaml:"fire_threshold"` // shots at or below are discarded
	ExtentPx      float64 `yaml:"extent_px"`      // half size of the launcher box
}

// ProjectileConfig sizes launched boxes.
type ProjectileConfig struct {
	HalfExtentPx float64 `yaml:"half_extent_px"`
}

// ViewportConfig is the logical drawing area in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig configures the charm logger.
type LoggingConfig struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	Prefix string `yaml:"prefix"`
}

// AssetsConfig locates textures. An empty Dir serves built-in textures only.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid settings")

// Validate checks every value the sandbox relies on.
func (s Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(s.World.UnitsPerMeter > 0, "world.units_per_meter must be positive, got %v", s.World.UnitsPerMeter)
	check(s.World.SubSteps >= 1, "world.sub_steps must be at least 1, got %d", s.World.SubSteps)
	check(s.World.Iterations >= 1, "world.iterations must be at least 1, got %d", s.World.Iterations)
	check(s.Capture.Margin > 0, "capture.margin must be positive, got %v", s.Capture.Margin)
	check(s.Launcher.ChargeRate >= 0, "launcher.charge_rate must not be negative, got %v", s.Launcher.ChargeRate)
	check(s.Launcher.FireThreshold >= 0, "launcher.fire_threshold must not be negative, got %v", s.Launcher.FireThreshold)
	check(s.Launcher.ExtentPx > 0, "launcher.extent_px must be positive, got %v", s.Launcher.ExtentPx)
	check(s.Projectile.HalfExtentPx > 0, "projectile.half_extent_px must be positive, got %v", s.Projectile.HalfExtentPx)
	check(s.Viewport.Width > 0 && s.Viewport.Height > 0, "viewport must be positive, got %dx%d", s.Viewport.Width, s.Viewport.Height)
	if s.Logging.Level != "" {
		_, err := log.ParseLevel(s.Logging.Level)
		check(err == nil, "logging.level %q is not a level", s.Logging.Level)
	}

	return errors.Join(errs...)
}

// LogLevel returns the configured level, defaulting to info.
func (s Settings) LogLevel() log.Level {
	lvl, err := log.ParseLevel(s.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
