package platform

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hookshot/internal/config"
	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/level"
	"github.com/vovakirdan/hookshot/internal/sandbox"
	"github.com/vovakirdan/hookshot/internal/storage"
)

func openSession(t *testing.T, store *storage.Store) *Session {
	t.Helper()
	tree, err := level.ParseTOML([]byte("[[spikes]]\nx = 100\ny = 100\nr = 10\n"))
	if err != nil {
		t.Fatalf("ParseTOML() failed: %v", err)
	}
	tree.Name = "tiny"

	s, err := NewSession(Options{
		Level:    tree,
		Settings: config.DefaultSettings(),
		Store:    store,
		Logger:   log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	t.Cleanup(func() { s.Finish(EndQuit) })
	return s
}

func step(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := s.Core().Step(core.NewInputFrame(), 1.0/60); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
}

func TestNewSessionNeedsLevel(t *testing.T) {
	if _, err := NewSession(Options{}); !errors.Is(err, ErrNoLevel) {
		t.Errorf("NewSession() error = %v, expected ErrNoLevel", err)
	}
}

func TestSessionDefaults(t *testing.T) {
	s := openSession(t, nil)
	if s.LevelID() != "tiny" || s.Options().Player != "local" {
		t.Errorf("defaults: level %q player %q", s.LevelID(), s.Options().Player)
	}
	if s.Report().Hazards != 1 {
		t.Errorf("Report().Hazards = %d, expected 1", s.Report().Hazards)
	}
}

func TestSessionRestartAndFinish(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	s := openSession(t, store)
	first := s.Core()
	step(t, s, 3)

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if s.Core() == first || !first.Closed() {
		t.Fatal("restart should replace and close the world")
	}
	if _, h, _, _ := s.Core().Counts(); h != 1 {
		t.Errorf("restarted world has %d hazards, expected 1", h)
	}

	step(t, s, 5)
	s.Finish(EndDisconnect)
	s.Finish(EndQuit)

	if !s.Closed() || !s.Core().Closed() {
		t.Error("Finish should close the session and its world")
	}
	if err := s.Restart(); !errors.Is(err, sandbox.ErrClosed) {
		t.Errorf("Restart() after Finish = %v, expected ErrClosed", err)
	}

	runs, err := store.RecentRuns("tiny", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].EndReason != EndDisconnect || runs[0].Frames != 5 {
		t.Errorf("latest run = %+v", runs[0])
	}
	if runs[1].EndReason != EndRestart || runs[1].Frames != 3 {
		t.Errorf("first run = %+v", runs[1])
	}
}

func TestSessionSkipsEmptyRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	s := openSession(t, store)
	s.Finish(EndQuit)

	runs, _ := store.RecentRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("a run without frames should not be stored, got %d", len(runs))
	}
}

func TestSessionStatusLine(t *testing.T) {
	s := openSession(t, nil)
	if line := s.StatusLine(); !strings.HasPrefix(line, "tiny") {
		t.Errorf("StatusLine() = %q", line)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if _, err := s.Core().Step(in, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if line := s.StatusLine(); !strings.HasPrefix(line, "PAUSED") {
		t.Errorf("StatusLine() while paused = %q", line)
	}
}

func TestSessionFinishWhileStepping(t *testing.T) {
	s := openSession(t, nil)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		for i := 0; ; i++ {
			if i == 5 {
				close(started)
			}
			if _, err := s.Step(core.NewInputFrame(), 1.0/60); err != nil {
				done <- err
				return
			}
		}
	}()

	<-started
	s.Finish(EndDisconnect)
	if err := <-done; !errors.Is(err, sandbox.ErrClosed) {
		t.Errorf("Step() after Finish = %v, expected ErrClosed", err)
	}
	if err := s.Render(nil); !errors.Is(err, sandbox.ErrClosed) {
		t.Errorf("Render() after Finish = %v, expected ErrClosed", err)
	}
	if s.Paused() {
		t.Error("finished session should not report paused")
	}
}

func TestSessionOnEmptyLevel(t *testing.T) {
	s, err := NewSession(Options{
		Level:    level.Empty("broken"),
		Settings: config.DefaultSettings(),
		Logger:   log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	defer s.Finish(EndQuit)

	if r := s.Report(); r.Obstacles+r.Hazards+r.Launchers+r.Boxes != 0 || !r.OK() {
		t.Errorf("report = %+v, expected an empty clean load", r)
	}
	step(t, s, 5)
	if s.LevelID() != "broken" || s.Core().Stats().Frames != 5 {
		t.Errorf("level %q frames %d", s.LevelID(), s.Core().Stats().Frames)
	}
}
