package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

// fakeGame records inputs and ends after a fixed number of steps.
type fakeGame struct {
	resets  int
	steps   int
	endAt   int
	paused  bool
	lastIn  core.InputFrame
	summary storage.RunSummary
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) RunSummary(source string) storage.RunSummary {
	s := g.summary
	s.GameID = g.ID()
	s.Source = source
	return s
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = in.Clone()
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && !g.over() {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) over() bool {
	return g.endAt > 0 && g.steps >= g.endAt
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, GameOver: g.over(), Paused: g.paused}
}

var testCfg = core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func TestGameModelMouseReachesGame(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, testCfg)
	m.Init()

	m = update(t, m, tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if !game.lastIn.Has(core.ActionSuckStart) {
		t.Error("game should receive SuckStart")
	}
	if !game.lastIn.HasPointer || game.lastIn.Pointer != (core.Pointer{X: 7, Y: 3}) {
		t.Errorf("pointer = %+v, expected {7 3}", game.lastIn.Pointer)
	}

	// Input is cleared after each tick
	update(t, m, TickMsg{})
	if game.lastIn.Has(core.ActionSuckStart) || game.lastIn.HasPointer {
		t.Error("input should be cleared between ticks")
	}
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	game := &fakeGame{endAt: 3, summary: storage.RunSummary{Deleted: 4, Seed: 99}}
	m := NewGameModel(game, store, testCfg)
	m.Init()

	for i := 0; i < 6; i++ {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.AllScores("fake")
	if err != nil {
		t.Fatalf("AllScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 30 {
		t.Errorf("scores = %+v, expected one score of 30", scores)
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, expected 1", len(runs))
	}
	if runs[0].Source != storage.SourcePlay || runs[0].Deleted != 4 || runs[0].Seed != 99 {
		t.Errorf("run = %+v, expected play source with 4 deleted and seed 99", runs[0])
	}

	// Restart clears the saved flag
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if m.gameState.GameOver {
		t.Error("restart should clear game over")
	}
}

func TestGameModelBack(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, testCfg)
	m.Init()

	// Back is ignored while playing
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Error("back while playing should be ignored")
	}
	m = update(t, m, TickMsg{})

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("game should be paused")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back while paused should return to menu")
	}
	if m.IsQuitting() {
		t.Error("session models should not quit on back")
	}
}

func TestGameModelStandaloneBackQuits(t *testing.T) {
	game := &fakeGame{endAt: 1}
	m := NewGameModel(game, nil, testCfg)
	m.standalone = true
	m.Init()
	m = update(t, m, TickMsg{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Error("standalone back should return a quit command")
	}
	if !next.(GameModel).IsQuitting() {
		t.Error("standalone back should quit")
	}
}

func TestGameModelQuitKey(t *testing.T) {
	m := NewGameModel(&fakeGame{}, nil, testCfg)
	m.Init()

	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestGameModelResizeResets(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, testCfg)
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("screen = %dx%d, expected 60x20", m.screen.Width(), m.screen.Height())
	}
}
