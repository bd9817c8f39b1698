package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/hookshot/internal/core"
)

// keyActions maps keys to sandbox actions. Quit is handled by the game.
var keyActions = map[ebiten.Key]core.Action{
	ebiten.KeyP:      core.ActionPause,
	ebiten.KeyD:      core.ActionDebug,
	ebiten.KeyF3:     core.ActionDebug,
	ebiten.KeyR:      core.ActionRestart,
	ebiten.KeyQ:      core.ActionQuit,
	ebiten.KeyEscape: core.ActionQuit,
}

// actionFor returns the action bound to k.
func actionFor(k ebiten.Key) core.Action {
	if a, ok := keyActions[k]; ok {
		return a
	}
	return core.ActionNone
}

// pollInput collects this frame's key and mouse edges into f.
// The pointer is in layout coordinates, which are display pixels.
func pollInput(f *core.InputFrame) {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a := actionFor(k); a != core.ActionNone {
			f.Set(a)
		}
	}

	x, y := ebiten.CursorPosition()
	f.Pointer = core.V(float64(x), float64(y))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		f.Press(f.Pointer)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		f.Release(f.Pointer)
	}
}
