package window

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/platform"
	"github.com/vovakirdan/hookshot/internal/sandbox"
)

var background = color.RGBA{0x12, 0x14, 0x1c, 0xff}

// Options configure a window session.
type Options = platform.Options

// Game implements ebiten.Game over a platform session.
type Game struct {
	sess   *platform.Session
	canvas *Canvas
	clock  *core.FrameClock
	frame  core.InputFrame
	viewW  int
	viewH  int
	err    error
}

// NewGame opens a session for opts.
func NewGame(opts Options) (*Game, error) {
	sess, err := platform.NewSession(opts)
	if err != nil {
		return nil, err
	}
	w, h := viewport(sess.Options())
	return &Game{
		sess:   sess,
		canvas: NewCanvas(),
		clock:  core.NewFrameClock(ebiten.TPS()),
		frame:  core.NewInputFrame(),
		viewW:  w,
		viewH:  h,
	}, nil
}

// viewport returns the logical screen size used as layout.
func viewport(opts Options) (int, int) {
	w, h := int(opts.Runtime.ViewportW), int(opts.Runtime.ViewportH)
	if w <= 0 || h <= 0 {
		w, h = opts.Settings.Viewport.Width, opts.Settings.Viewport.Height
	}
	if w <= 0 || h <= 0 {
		def := core.DefaultConfig()
		w, h = int(def.ViewportW), int(def.ViewportH)
	}
	return w, h
}

// Update polls input and steps the world.
func (g *Game) Update() error {
	pollInput(&g.frame)
	defer g.frame.Clear()

	switch {
	case g.frame.Has(core.ActionQuit):
		return ebiten.Termination
	case g.frame.Has(core.ActionRestart):
		if err := g.sess.Restart(); err != nil {
			g.err = err
			return ebiten.Termination
		}
		g.clock.Reset()
		return nil
	}

	dt := g.clock.Tick(time.Now())
	_, err := g.sess.Step(g.frame, dt)
	if errors.Is(err, sandbox.ErrClosed) {
		return ebiten.Termination
	}
	if err != nil {
		g.sess.Logger().Error("sandbox stopped", "level", g.sess.LevelID(), "error", err)
		g.sess.Finish(platform.EndError)
		g.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw renders the world and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.canvas.Target(screen)
	if err := g.sess.Render(g.canvas); err != nil && !errors.Is(err, sandbox.ErrClosed) {
		g.sess.Logger().Error("render failed", "error", err)
	}
	ebitenutil.DebugPrintAt(screen, g.sess.StatusLine()+"  | click fire  p pause  d debug  r restart  q quit", 8, g.viewH-20)
}

// Layout keeps the logical viewport regardless of window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.viewW, g.viewH
}

// Run opens a window for opts and blocks until it closes.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}
	ebiten.SetWindowSize(g.viewW/2, g.viewH/2)
	ebiten.SetWindowTitle("hookshot - " + g.sess.LevelID())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	g.sess.Finish(platform.EndQuit)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.err
}
