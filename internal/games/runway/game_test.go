package runway

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/core"
	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Reset(testRuntime())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// singleLaneConfig puts every entity in the player's lane.
func singleLaneConfig() config.RunwayConfig {
	cfg := config.DefaultRunwayConfig()
	cfg.Lanes.Positions = []float64{0.5}
	cfg.Player.StartLane = 0
	return cfg
}

func runUntilGameOver(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for i := 0; i < 5000; i++ {
		res := g.Step(frame())
		if res.State.GameOver {
			return res
		}
	}
	t.Fatal("run never ended")
	return core.StepResult{}
}

func TestResetStartsRun(t *testing.T) {
	g := newTestGame(t, Options{})

	if g.ctrl.State() != sim.StateRunning {
		t.Fatalf("expected running after Reset, got %v", g.ctrl.State())
	}
	st := g.State()
	if st.Difficulty != "normal" {
		t.Errorf("expected normal difficulty, got %q", st.Difficulty)
	}
	if st.Score != 0 || st.GameOver || st.Paused {
		t.Errorf("unexpected fresh state: %+v", st)
	}
	if w := g.ctrl.Lanes().Width(); w != 800 {
		t.Errorf("expected 80 cells to map to width 800, got %v", w)
	}
}

func TestDifficultyOverride(t *testing.T) {
	g := newTestGame(t, Options{Difficulty: config.DifficultyHard})
	if got := g.State().Difficulty; got != "hard" {
		t.Errorf("expected hard, got %q", got)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := config.DefaultRunwayConfig()
	cfg.Render.CellWidth = 0
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("expected error for zero cell width")
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		switch {
		case i%90 == 0:
			inputs[i] = frame(core.ActionJump)
		case i%200 == 50:
			inputs[i] = frame(core.ActionLeft)
		case i%200 == 150:
			inputs[i] = frame(core.ActionRight)
		default:
			inputs[i] = frame()
		}
	}

	run := func() (core.GameState, uint64, int) {
		g := newTestGame(t, Options{Seed: 12345})
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.State(), g.ctrl.Session().ElapsedTicks, len(g.ctrl.Entities())
	}

	s1, ticks1, n1 := run()
	s2, ticks2, n2 := run()
	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if ticks1 != ticks2 || n1 != n2 {
		t.Errorf("Determinism failed: ticks %d/%d, entities %d/%d", ticks1, ticks2, n1, n2)
	}
}

func TestLaneInput(t *testing.T) {
	g := newTestGame(t, Options{})

	g.Step(frame(core.ActionLeft))
	if lane := g.ctrl.Player().Lane; lane != 0 {
		t.Fatalf("expected lane 0, got %d", lane)
	}
	g.Step(frame(core.ActionLeft))
	if lane := g.ctrl.Player().Lane; lane != 0 {
		t.Errorf("expected lane clamped at 0, got %d", lane)
	}
	g.Step(frame(core.ActionRight, core.ActionRight))
	if lane := g.ctrl.Player().Lane; lane != 2 {
		t.Errorf("expected both presses applied in order, got lane %d", lane)
	}
}

func TestJumpInput(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Step(frame(core.ActionJump))
	if !g.ctrl.Player().Jump.Airborne() {
		t.Error("expected player airborne after jump")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, Options{})
	for i := 0; i < 10; i++ {
		g.Step(frame())
	}

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	ticks := g.ctrl.Session().ElapsedTicks
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionLeft))
	}
	if got := g.ctrl.Session().ElapsedTicks; got != ticks {
		t.Errorf("simulation advanced while paused: %d -> %d", ticks, got)
	}
	if lane := g.ctrl.Player().Lane; lane != 1 {
		t.Errorf("input applied while paused, lane %d", lane)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resume on second pause")
	}
}

func TestVolumeKeys(t *testing.T) {
	g := newTestGame(t, Options{})
	if v := g.State().Volume; math.Abs(v-0.7) > 1e-9 {
		t.Fatalf("expected configured volume 0.7, got %v", v)
	}

	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionVolumeUp))
	}
	if v := g.State().Volume; v != 1 {
		t.Errorf("expected volume clamped at 1, got %v", v)
	}

	g.Step(frame(core.ActionVolumeDown))
	if v := g.State().Volume; math.Abs(v-0.9) > 1e-9 {
		t.Errorf("expected 0.9, got %v", v)
	}

	g.Step(frame(core.ActionMute))
	if !g.State().Muted {
		t.Error("expected muted")
	}
	g.Step(frame(core.ActionMute))
	if g.State().Muted {
		t.Error("expected unmuted")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, Options{})
	for i := 0; i < 20; i++ {
		g.Step(frame())
	}
	ticks := g.ctrl.Session().ElapsedTicks

	g.Resize(100, 30)
	if w := g.ctrl.Lanes().Width(); w != 1000 {
		t.Errorf("expected width 1000, got %v", w)
	}
	if g.ctrl.State() != sim.StateRunning || g.ctrl.Session().ElapsedTicks != ticks {
		t.Error("resize should not restart the run")
	}

	g.Resize(0, 30)
	if w := g.ctrl.Lanes().Width(); w != 1000 {
		t.Errorf("invalid size should be ignored, width %v", w)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, Options{Config: singleLaneConfig()})
	res := runUntilGameOver(t, g)
	if !res.Finished {
		t.Error("expected Finished on the game over frame")
	}

	ticks := g.ctrl.Session().ElapsedTicks
	g.Step(frame(core.ActionJump))
	if g.ctrl.Session().ElapsedTicks != ticks {
		t.Error("steps after game over should not advance")
	}

	oldID := g.ctrl.Session().ID
	g.Reset(testRuntime())
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("expected fresh run after Reset, got %+v", g.State())
	}
	if g.ctrl.Session().ID == oldID {
		t.Error("expected a new session id")
	}
}

func TestRenderFrame(t *testing.T) {
	g := newTestGame(t, Options{})
	for i := 0; i < 180; i++ {
		g.Step(frame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Score: 0") || !strings.Contains(row, "normal") {
		t.Errorf("HUD missing from top row: %q", row)
	}
	if !strings.ContainsRune(screen.String(), HorizonChar) {
		t.Error("expected horizon line")
	}
	if !strings.ContainsRune(screen.Row(20), LeftEdgeChar) || !strings.ContainsRune(screen.Row(20), RightEdgeChar) {
		t.Errorf("expected runway edges on row 20: %q", screen.Row(20))
	}
	if !strings.ContainsRune(screen.Row(23), PlayerBodyChar) {
		t.Errorf("expected player on the bottom row: %q", screen.Row(23))
	}
	if strings.Contains(screen.String(), "EXTREME") {
		t.Error("EXTREME shown at starting speed")
	}
}

func TestRenderPlayerFollowsLane(t *testing.T) {
	g := newTestGame(t, Options{})
	screen := core.NewScreen(80, 24)

	column := func() int {
		g.Render(screen)
		for x, r := range []rune(screen.Row(22)) {
			if r == PlayerHeadChar {
				return x
			}
		}
		return -1
	}

	center := column()
	g.Step(frame(core.ActionLeft))
	for i := 0; i < 30; i++ {
		g.Step(frame())
	}
	left := column()
	if center < 0 || left < 0 || left >= center {
		t.Errorf("expected head to move left: center=%d left=%d", center, left)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, Options{})
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}

	over := newTestGame(t, Options{Config: singleLaneConfig()})
	runUntilGameOver(t, over)
	over.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected game over overlay")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(t, Options{})
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 3}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen)
	}
}
