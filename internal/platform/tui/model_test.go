package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/storage"
)

// stubGame records what the platform asks of it.
type stubGame struct {
	resets  int
	resized [2]int
	frames  []core.InputFrame
	score   int
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) State() core.GameState { return core.GameState{Score: g.score} }
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	frame.Clicks = append(frame.Clicks, in.Clicks...)
	g.frames = append(g.frames, frame)
	g.score++
	return core.StepResult{State: g.State()}
}

func newTestModel(g *stubGame) Model {
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelDeliversInputOnTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(g.frames) != 2 {
		t.Fatalf("game stepped %d times, want 2", len(g.frames))
	}
	first := g.frames[0]
	if !first.Has(core.ActionConfirm) || len(first.Clicks) != 1 || first.Clicks[0] != (core.Click{X: 3, Y: 4}) {
		t.Errorf("first frame = %+v, want confirm and click", first)
	}
	if second := g.frames[1]; second.Has(core.ActionConfirm) || len(second.Clicks) != 0 {
		t.Errorf("input leaked into the next tick: %+v", second)
	}
	if m.State().Score != 2 {
		t.Errorf("State().Score = %d, want 2", m.State().Score)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("game reset %d times, want only the initial reset", g.resets)
	}
	if g.resized != [2]int{100, 30} {
		t.Errorf("Resize got %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&stubGame{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&stubGame{})
	if !strings.Contains(m.View(), "stub") {
		t.Errorf("View() = %q, want game output", m.View())
	}
}

type savedScore struct {
	mode  string
	score int
}

type fakeSaver struct {
	saved []savedScore
	err   error
}

func (f *fakeSaver) SaveScore(mode string, score int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, savedScore{mode, score})
	return int64(len(f.saved)), nil
}

func TestScoreRecorder(t *testing.T) {
	saver := &fakeSaver{}
	rec := NewScoreRecorder(saver, "multi_life", nil)

	rec.RunEnded(0)
	rec.RunEnded(340)

	if len(saver.saved) != 1 || saver.saved[0] != (savedScore{"multi_life", 340}) {
		t.Errorf("saved = %+v, want one multi_life 340", saver.saved)
	}
	if rec.Saved() != 1 {
		t.Errorf("Saved() = %d", rec.Saved())
	}

	saver.err = errors.New("disk full")
	rec.RunEnded(10)
	if rec.Saved() != 1 {
		t.Error("failed save should not be counted")
	}

	NewScoreRecorder(nil, "x", nil).RunEnded(5)
}

func TestScoreRecorderWithStore(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/scores.db")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	NewScoreRecorder(store, "single_life", nil).RunEnded(75)

	best, err := store.HighScore("single_life")
	if err != nil || best != 75 {
		t.Errorf("HighScore = %d, %v; want 75", best, err)
	}
}
