// Package runway adapts the lane-runner simulation to the terminal platform:
// it maps platform actions onto the session controller and draws the
// projected runway into a cell screen.
package runway

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/core"
	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// volumeStep is how much one volume key press changes the level.
const volumeStep = 0.1

// Options configures a Game.
type Options struct {
	// Config is the full tuning. A zero value loads the built-in defaults.
	Config config.RunwayConfig
	// Difficulty overrides Config.DefaultDifficulty when set.
	Difficulty config.DifficultyPreset
	Seed       int64
	Logger     *log.Logger
	Sinks      []sim.EventSink
	Audio      sim.AudioBridge
}

// Game drives one sim.Controller from platform input frames.
type Game struct {
	cfg        config.RunwayConfig
	difficulty sim.Difficulty
	ctrl       *sim.Controller
	logger     *log.Logger
	runtime    core.RuntimeConfig
	dt         time.Duration

	paused  bool
	scroll  float64 // Distance travelled, drives the lane dashes
	extreme float64 // Speed above which the HUD flags EXTREME
}

// New creates a game with an idle controller. Call Reset to start a run.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg.Lanes.Positions == nil && cfg.Difficulties == nil {
		cfg = config.DefaultRunwayConfig()
	}
	if opts.Difficulty != "" {
		config.ApplyPreset(&cfg, opts.Difficulty)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runway: %w", err)
	}
	preset, err := config.ParsePreset(cfg.DefaultDifficulty)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctrl, err := sim.New(sim.Options{
		Config: cfg.SimConfig(),
		Seed:   opts.Seed,
		Logger: logger,
		Sinks:  opts.Sinks,
		Audio:  opts.Audio,
	})
	if err != nil {
		return nil, fmt.Errorf("runway: %w", err)
	}
	ctrl.SetVolume(cfg.Audio.Volume)
	ctrl.SetMuted(cfg.Audio.Muted)

	hard := cfg.Difficulties[string(config.DifficultyHard)]
	return &Game{
		cfg:        cfg,
		difficulty: preset.SimDifficulty(),
		ctrl:       ctrl,
		logger:     logger,
		runtime:    core.DefaultConfig(),
		dt:         sim.FrameDuration,
		extreme:    hard.ForwardSpeed + 1,
	}, nil
}

// ID returns the identifier used for score storage and logs.
func (g *Game) ID() string {
	return "runway"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Runway"
}

// Controller exposes the underlying session controller for observers such
// as the spectator feed.
func (g *Game) Controller() *sim.Controller {
	return g.ctrl
}

// Config returns the tuning the game was built with.
func (g *Game) Config() config.RunwayConfig {
	return g.cfg
}

// Reset sizes the runway to the terminal and starts a fresh run. A run in
// progress is discarded.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if runtime.TickRate > 0 {
		g.dt = time.Second / time.Duration(runtime.TickRate)
	}
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	g.paused = false
	g.scroll = 0
	g.ctrl.Start(g.difficulty)
}

// Resize maps a terminal size onto the virtual viewport without restarting
// the run.
func (g *Game) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.ctrl.Resize(float64(w)*g.cfg.Render.CellWidth, float64(h)*g.cfg.Render.CellHeight)
}

// Step applies the frame's input and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Actions() {
		switch a {
		case core.ActionVolumeUp:
			g.adjustVolume(volumeStep)
		case core.ActionVolumeDown:
			g.adjustVolume(-volumeStep)
		case core.ActionMute:
			_, muted := g.ctrl.Volume()
			g.ctrl.SetMuted(!muted)
		}
	}

	if g.ctrl.State() != sim.StateRunning {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		switch a {
		case core.ActionJump, core.ActionUp:
			g.ctrl.RequestJump()
		case core.ActionLeft:
			g.ctrl.MoveLeft()
		case core.ActionRight:
			g.ctrl.MoveRight()
		}
	}

	speed := g.ctrl.Session().Speed
	if err := g.ctrl.Tick(g.dt); err != nil {
		g.logger.Error("tick failed", "err", err)
		return core.StepResult{State: g.State()}
	}
	g.scroll += speed * g.cfg.Progression.BaseRate * float64(g.dt) / float64(sim.FrameDuration)

	return core.StepResult{
		State:    g.State(),
		Finished: g.ctrl.State() == sim.StateGameOver,
	}
}

func (g *Game) adjustVolume(delta float64) {
	level, _ := g.ctrl.Volume()
	g.ctrl.SetVolume(core.ClampF(level+delta, 0, 1))
}

// State returns the platform-visible status.
func (g *Game) State() core.GameState {
	s := g.ctrl.Session()
	volume, muted := g.ctrl.Volume()
	return core.GameState{
		Score:      s.Score,
		Speed:      s.Speed,
		Difficulty: s.Difficulty.String(),
		GameOver:   s.State == sim.StateGameOver,
		Paused:     g.paused,
		Muted:      muted,
		Volume:     volume,
	}
}

// Close tears the controller down. The game cannot be reused afterwards.
func (g *Game) Close() {
	g.ctrl.Destroy()
}
