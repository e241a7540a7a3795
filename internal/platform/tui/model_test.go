package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/core"
	"github.com/vovakirdan/runway/internal/storage"
)

type fakeGame struct {
	resets  int
	resized [2]int
	steps   []core.InputFrame
	state   core.GameState
}

func (g *fakeGame) ID() string { return "fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake", core.ColorDefault)
}

func (g *fakeGame) State() core.GameState { return g.state }

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{}
	frames := 0
	m := NewModel(g, core.DefaultConfig()).WithFrameHook(func() { frames++ })
	m.Init()
	if g.resets != 1 {
		t.Fatalf("expected Init to reset the game, got %d resets", g.resets)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, TickMsg(time.Now()))

	if len(g.steps) != 1 {
		t.Fatalf("expected one step, got %d", len(g.steps))
	}
	got := g.steps[0].Actions()
	if len(got) != 2 || got[0] != core.ActionLeft || got[1] != core.ActionJump {
		t.Errorf("unexpected actions: %v", got)
	}
	if frames != 1 {
		t.Errorf("expected frame hook once, got %d", frames)
	}

	m = press(t, m, TickMsg(time.Now()))
	if !g.steps[1].Empty() {
		t.Error("input should be cleared after each tick")
	}
}

func TestModelResizeDoesNotReset(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.DefaultConfig())
	m.Init()

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("resize not forwarded: %v", g.resized)
	}
	if g.resets != 1 {
		t.Errorf("resize should not reset, got %d resets", g.resets)
	}
	if !strings.Contains(m.View(), "fake") {
		t.Error("expected game output in view")
	}
}

func TestModelBackOnlyWhenSafe(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, core.DefaultConfig())
	m.Init()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back during a live run should be ignored")
	}

	g.state.GameOver = true
	m = press(t, m, TickMsg(time.Now()))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("expected back to menu after game over")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, core.DefaultConfig())
	m.Init()
	g.state.GameOver = true

	m = press(t, m, TickMsg(time.Now()))
	m = press(t, m, runeKey("r"))
	m = press(t, m, TickMsg(time.Now()))

	if g.resets != 2 {
		t.Errorf("expected restart to reset the game, got %d resets", g.resets)
	}
	if m.State().GameOver {
		t.Error("expected fresh state after restart")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, core.DefaultConfig())
	m = press(t, m, runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("expected quit with empty view")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorGray)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q: %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected two rows, got %q", out)
	}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuDefaultsAndSelection(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{Player: "ada", Difficulty: "hard", Score: 70, Duration: 9 * time.Second}); err != nil {
		t.Fatalf("save: %v", err)
	}

	game := config.DefaultRunwayConfig()
	game.DefaultDifficulty = "hard"
	m := NewMenuModel(store, core.DefaultConfig(), game, "ada")

	if m.items[m.cursor].Preset != config.DifficultyHard {
		t.Errorf("expected cursor on hard, got %s", m.items[m.cursor].Preset)
	}
	if m.items[m.cursor].Best != 70 {
		t.Errorf("expected best 70 on hard, got %d", m.items[m.cursor].Best)
	}
	if !strings.Contains(m.View(), "best 70") {
		t.Error("expected best score in menu view")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := next.(MenuModel).result()
	if res.Quit || res.Difficulty != config.DifficultyNormal {
		t.Errorf("expected normal selected, got %+v", res)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), config.DefaultRunwayConfig(), "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).result().WantsScoreboard {
		t.Error("expected tab to open scoreboard")
	}

	next, _ = m.Update(runeKey("q"))
	if !next.(MenuModel).result().Quit {
		t.Error("expected quit")
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{Player: "ada", Difficulty: "easy", Score: 30},
		{Player: "bob", Difficulty: "hard", Score: 90},
		{Player: "ada", Difficulty: "hard", Score: 50},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.rows) != 3 {
		t.Fatalf("expected 3 runs on the first tab, got %d", len(m.rows))
	}
	if m.stats == nil || m.stats.HighScore != 90 {
		t.Errorf("unexpected stats: %+v", m.stats)
	}

	// All -> Easy -> Normal -> Hard
	for i := 0; i < 3; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
	}
	if len(m.rows) != 2 || m.rows[0][1] != "bob" {
		t.Errorf("unexpected hard rows: %v", m.rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "HIGH SCORES - Players") {
		t.Error("expected players tab title")
	}
	if len(m.rows) != 2 || m.rows[0][1] != "bob" || m.rows[1][3] != "2" {
		t.Errorf("unexpected leaderboard rows: %v", m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("expected esc to go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("expected empty message")
	}
}
