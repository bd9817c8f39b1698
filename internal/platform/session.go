// Package platform holds what the terminal and window front ends share:
// a Session owns one sandbox world built from a level, rebuilds it on
// restart and records a run summary when it ends.
package platform

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hookshot/internal/config"
	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/level"
	"github.com/vovakirdan/hookshot/internal/sandbox"
	"github.com/vovakirdan/hookshot/internal/storage"
)

// End reasons stored with run summaries.
const (
	EndQuit       = "quit"
	EndRestart    = "restart"
	EndDisconnect = "disconnect"
	EndError      = "error"
)

// ErrNoLevel is returned when a session is opened without a level.
var ErrNoLevel = errors.New("platform: no level")

// Options configure a session.
type Options struct {
	Level    *level.Tree
	LevelID  string // stored with the run; defaults to the level name
	Settings config.Settings
	Textures level.TextureLoader
	Store    *storage.Store // nil disables run summaries
	Logger   *log.Logger
	Player   string
	Runtime  core.RuntimeConfig
}

// Session owns the sandbox of one player. Step, Render and Finish are
// serialized, so Finish may be called from any goroutine. Core is for
// inspection from the goroutine that drives the session.
type Session struct {
	mu     sync.Mutex
	opts   Options
	core   *sandbox.Core
	report level.Report
	saved  bool
	closed bool
}

// NewSession builds the world for opts.Level.
func NewSession(opts Options) (*Session, error) {
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.LevelID == "" {
		opts.LevelID = opts.Level.Name
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	s := &Session{opts: opts}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	c, err := sandbox.New(sandbox.Options{
		Settings: s.opts.Settings,
		Textures: s.opts.Textures,
		Logger:   s.opts.Logger,
	})
	if err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	r, err := c.Load(s.opts.Level)
	if err != nil {
		c.Close()
		return fmt.Errorf("platform: %w", err)
	}
	s.core = c
	s.report = r
	s.saved = false
	return nil
}

// Core returns the current world. It changes after Restart.
func (s *Session) Core() *sandbox.Core {
	return s.core
}

// Report returns the materializer report of the current world.
func (s *Session) Report() level.Report {
	return s.report
}

// Options returns the options the session was opened with, with defaults
// filled in.
func (s *Session) Options() Options {
	return s.opts
}

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger {
	return s.opts.Logger
}

// LevelID returns the level identifier stored with runs.
func (s *Session) LevelID() string {
	return s.opts.LevelID
}

// Step advances the world by one frame. It returns sandbox.ErrClosed once
// the session has finished.
func (s *Session) Step(in core.InputFrame, dt float64) (sandbox.StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sandbox.StepResult{}, sandbox.ErrClosed
	}
	return s.core.Step(in, dt)
}

// Render draws the world onto cv.
func (s *Session) Render(cv core.Canvas) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sandbox.ErrClosed
	}
	return s.core.Render(cv)
}

// Paused reports whether the world is paused.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Paused()
}

// Closed reports whether Finish has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Finish stores the run summary once and tears the world down. Calling it
// again is a no-op.
func (s *Session) Finish(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.save(reason)
	s.core.Close()
	s.closed = true
}

// Restart saves the current run and materializes the level again.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sandbox.ErrClosed
	}
	s.save(EndRestart)
	s.core.Close()
	return s.build()
}

func (s *Session) save(reason string) {
	if s.saved || s.opts.Store == nil {
		return
	}
	s.saved = true

	st := s.core.Stats()
	if st.Frames == 0 {
		return
	}
	_, err := s.opts.Store.SaveRun(storage.Run{
		Level:          s.opts.LevelID,
		Player:         s.opts.Player,
		Frames:         st.Frames,
		ShotsFired:     st.ShotsFired,
		ShotsDiscarded: st.ShotsDiscarded,
		Captures:       st.Captures,
		Duration:       time.Duration(st.SimTime * float64(time.Second)),
		EndReason:      reason,
	})
	if err != nil {
		s.opts.Logger.Warn("could not save run", "level", s.opts.LevelID, "error", err)
	}
}

// StatusLine summarises the session for a one-line status bar.
func (s *Session) StatusLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.core.Stats()
	line := fmt.Sprintf("%s  fired %d  missed %d  captures %d", s.opts.LevelID, st.ShotsFired, st.ShotsDiscarded, st.Captures)
	if s.core.Paused() {
		line = "PAUSED  " + line
	}
	return line
}
