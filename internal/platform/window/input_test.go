package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/hookshot/internal/config"
	"github.com/vovakirdan/hookshot/internal/core"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want core.Action
	}{
		{ebiten.KeyP, core.ActionPause},
		{ebiten.KeyD, core.ActionDebug},
		{ebiten.KeyF3, core.ActionDebug},
		{ebiten.KeyR, core.ActionRestart},
		{ebiten.KeyQ, core.ActionQuit},
		{ebiten.KeyEscape, core.ActionQuit},
		{ebiten.KeyA, core.ActionNone},
	}
	for _, tt := range tests {
		if got := actionFor(tt.key); got != tt.want {
			t.Errorf("actionFor(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestViewport(t *testing.T) {
	opts := Options{Settings: config.DefaultSettings()}
	opts.Settings.Viewport.Width, opts.Settings.Viewport.Height = 1280, 720
	if w, h := viewport(opts); w != 1280 || h != 720 {
		t.Errorf("viewport from settings = %dx%d", w, h)
	}

	opts.Runtime.ViewportW, opts.Runtime.ViewportH = 800, 600
	if w, h := viewport(opts); w != 800 || h != 600 {
		t.Errorf("viewport from runtime = %dx%d", w, h)
	}

	opts = Options{}
	if w, h := viewport(opts); w != 1920 || h != 1080 {
		t.Errorf("default viewport = %dx%d", w, h)
	}
}
