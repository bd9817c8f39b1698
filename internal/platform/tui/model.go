package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/platform"
	"github.com/vovakirdan/hookshot/internal/sandbox"
)

// Colors of the status line.
var (
	statusFg = core.ColorGray
	pauseFg  = core.ColorYellow
)

// Options configure a terminal session.
type Options = platform.Options

// Model is the Bubble Tea model for one sandbox session.
type Model struct {
	sess   *platform.Session
	screen *core.Screen
	canvas *CellCanvas
	keys   *KeyMapper
	clock  *core.FrameClock
	config core.RuntimeConfig

	frame       core.InputFrame
	pointerDown bool
	last        sandbox.StepResult

	board    *RunsBoard
	quitting bool
	err      error
}

// NewModel builds the sandbox for opts and wraps it in a model.
func NewModel(opts Options) (Model, error) {
	sess, err := platform.NewSession(opts)
	if err != nil {
		return Model{}, err
	}
	return newModel(sess), nil
}

func newModel(sess *platform.Session) Model {
	opts := sess.Options()
	cfg := opts.Runtime
	def := core.DefaultConfig()
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.ViewportW <= 0 || cfg.ViewportH <= 0 {
		cfg.ViewportW = float64(opts.Settings.Viewport.Width)
		cfg.ViewportH = float64(opts.Settings.Viewport.Height)
	}
	if cfg.ViewportW <= 0 || cfg.ViewportH <= 0 {
		cfg.ViewportW, cfg.ViewportH = def.ViewportW, def.ViewportH
	}

	m := Model{
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   NewKeyMapper(),
		clock:  core.NewFrameClock(cfg.TickRate),
		config: cfg,
		frame:  core.NewInputFrame(),
	}
	m.canvas = NewCellCanvas(cfg.ScreenW, canvasRows(cfg.ScreenH), cfg.ViewportW, cfg.ViewportH)
	m.frame.Pointer = core.V(cfg.ViewportW/2, cfg.ViewportH/2)
	return m
}

// canvasRows leaves the bottom row for the status line.
func canvasRows(screenH int) int {
	return max(screenH-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsTrigger(msg) {
		m.trigger(!m.pointerDown)
		return m, nil
	}
	if d, ok := m.keys.Nudge(msg); ok {
		p := m.frame.Pointer.Add(d)
		m.frame.Pointer = core.V(core.ClampF(p.X, 0, m.config.ViewportW), core.ClampF(p.Y, 0, m.config.ViewportH))
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.sess.Finish(platform.EndQuit)
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionRestart:
		if err := m.sess.Restart(); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.pointerDown = false
		m.clock.Reset()
		return m, nil
	case action == core.ActionBoard:
		b := NewRunsBoard(m.sess.Options().Store, m.sess.LevelID(), m.screen.Width(), m.screen.Height())
		m.board = &b
		return m, nil
	case action != core.ActionNone:
		m.frame.Set(action)
	}
	return m, nil
}

// trigger records a primary press or release edge at the pointer.
func (m *Model) trigger(press bool) {
	if press {
		m.frame.Press(m.frame.Pointer)
	} else {
		m.frame.Release(m.frame.Pointer)
	}
	m.pointerDown = press
}

// handleMouse maps the left button and pointer motion onto the frame.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Y >= m.canvas.Rows() {
		return
	}
	m.frame.Pointer = m.canvas.ToDisplay(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.trigger(true)
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without a button.
		if m.pointerDown {
			m.trigger(false)
		}
	}
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, cmd := m.board.Update(msg)
	switch {
	case b.IsQuitting():
		m.sess.Finish(platform.EndQuit)
		m.quitting = true
		return m, tea.Quit
	case b.IsClosed():
		m.board = nil
	default:
		m.board = &b
	}
	return m, cmd
}

// handleResize processes window resize events. The world is kept; only
// the cell grid changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.canvas.Resize(msg.Width, canvasRows(msg.Height))
	if m.board != nil {
		m.board.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick advances the sandbox by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	dt := m.clock.Tick(now)

	res, err := m.sess.Step(m.frame, dt)
	m.frame.Clear()
	m.last = res
	if errors.Is(err, sandbox.ErrClosed) {
		// Finished from outside, e.g. by a server shutdown.
		m.quitting = true
		return m, tea.Quit
	}
	if err != nil {
		m.sess.Logger().Error("sandbox stopped", "level", m.sess.LevelID(), "error", err)
		m.sess.Finish(platform.EndError)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.screen.Clear()
	m.canvas.Reset()
	if err := m.sess.Render(m.canvas); err != nil && !errors.Is(err, sandbox.ErrClosed) {
		m.sess.Logger().Error("render failed", "error", err)
	}
	m.canvas.Flush(m.screen)
	m.drawStatus()

	return RenderScreen(m.screen)
}

// drawStatus fills the bottom row.
func (m Model) drawStatus() {
	fg := statusFg
	if m.sess.Paused() {
		fg = pauseFg
	}
	text := " " + m.sess.StatusLine() + "  | space/click fire  arrows aim  p pause  d debug  r restart  tab runs  q quit"
	m.screen.DrawText(0, m.screen.Height()-1, text, fg)
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for opts and blocks until the
// session ends.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	model.sess.Finish(platform.EndQuit)
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
