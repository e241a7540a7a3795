package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrDestroyed is returned by Tick once the controller has been destroyed.
var ErrDestroyed = errors.New("sim: controller destroyed")

// Session is a snapshot of the current run.
type Session struct {
	ID           uuid.UUID
	Difficulty   Difficulty
	State        State
	Score        int
	Speed        float64
	ElapsedTicks uint64
	Elapsed      time.Duration
}

// Options configures a Controller.
type Options struct {
	// Config is the simulation tuning. The zero value selects DefaultConfig.
	Config Config
	// Rand picks spawn lanes. Nil uses a math/rand source seeded with Seed.
	Rand   LaneRand
	Seed   int64
	Logger *log.Logger
	Sinks  []EventSink
	Audio  AudioBridge
}

// Controller owns the session state machine and drives one tick at a time
// through player update, spawning, advance, collision and reaping.
// It is not safe for concurrent use.
type Controller struct {
	cfg    Config
	rng    LaneRand
	logger *log.Logger
	sinks  []EventSink
	audio  AudioBridge

	lanes     *LaneField
	projector Projector
	detector  CollisionDetector

	state      State
	session    Session
	pool       *EntityPool
	spawner    *SpawnScheduler
	player     *PlayerController
	speedTimer countdown
	tick       uint64

	volume float64
	muted  bool
}

// New creates an idle controller.
func New(opts Options) (*Controller, error) {
	cfg := opts.Config
	if cfg.LanePositions == nil && cfg.Difficulties == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lanes, err := NewLaneField(cfg.LanePositions, cfg.Geometry, cfg.ViewportW, cfg.ViewportH)
	if err != nil {
		return nil, fmt.Errorf("sim: lane field: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Controller{
		cfg:       cfg,
		rng:       rng,
		logger:    logger,
		sinks:     append([]EventSink(nil), opts.Sinks...),
		audio:     opts.Audio,
		lanes:     lanes,
		projector: NewProjector(lanes, cfg.ReferenceDepth, cfg.ScaleFactor),
		detector:  NewCollisionDetector(cfg.NearBound, cfg.FarBound, cfg.PointValue),
		state:     StateIdle,
		volume:    1,
	}
	c.player = NewPlayerController(lanes, cfg.StartLane, cfg.JumpDuration, cfg.LaneChangeDuration)
	c.session = Session{Difficulty: DifficultyNormal, Speed: cfg.Difficulties[DifficultyNormal].ForwardSpeed}
	return c, nil
}

// AddSink attaches another event sink.
func (c *Controller) AddSink(sink EventSink) {
	if c.state == StateDestroyed || sink == nil {
		return
	}
	c.sinks = append(c.sinks, sink)
}

// Start begins a new session at the given difficulty, replacing any session
// in progress. It is ignored after Destroy.
func (c *Controller) Start(d Difficulty) {
	if c.state == StateDestroyed {
		return
	}
	c.begin(d)
}

// Restart discards the current session and starts a fresh one at the last
// used difficulty. Works from Idle after Stop as well.
func (c *Controller) Restart() {
	if c.state == StateDestroyed {
		return
	}
	c.logger.Debug("session restart", "id", c.session.ID, "score", c.session.Score)
	c.begin(c.session.Difficulty)
}

// Stop abandons the current session and returns to Idle without a game over.
func (c *Controller) Stop() {
	if c.state != StateRunning && c.state != StateGameOver {
		return
	}
	c.logger.Debug("session stopped", "id", c.session.ID, "score", c.session.Score)
	c.teardownSession()
	c.state = StateIdle
}

// Destroy tears the controller down. Afterwards no events are emitted and
// Tick reports ErrDestroyed. Calling it again has no effect.
func (c *Controller) Destroy() {
	if c.state == StateDestroyed {
		return
	}
	c.teardownSession()
	c.state = StateDestroyed
	c.sinks = nil
	c.audio = nil
	c.logger.Debug("controller destroyed")
}

// Resize updates the viewport. Invalid dimensions are rejected and the
// previous geometry kept. Works in every state.
func (c *Controller) Resize(width, height float64) bool {
	if c.state == StateDestroyed {
		return false
	}
	if !c.lanes.Resize(width, height) {
		c.logger.Debug("resize rejected", "width", width, "height", height)
		return false
	}
	if c.pool != nil {
		c.pool.Reproject()
	}
	return true
}

// RequestJump starts a jump if the session is running and the player is grounded.
func (c *Controller) RequestJump() bool {
	if c.state != StateRunning || !c.player.Jump() {
		return false
	}
	c.emit(JumpedEvent{})
	return true
}

// MoveLeft shifts the player one lane left while running.
func (c *Controller) MoveLeft() bool {
	return c.move(c.player.MoveLeft)
}

// MoveRight shifts the player one lane right while running.
func (c *Controller) MoveRight() bool {
	return c.move(c.player.MoveRight)
}

func (c *Controller) move(shift func() bool) bool {
	if c.state != StateRunning {
		return false
	}
	from := c.player.State().Lane
	if !shift() {
		return false
	}
	c.emit(LaneChangedEvent{From: from, To: c.player.State().Lane})
	return true
}

// SetVolume forwards a volume level to the audio bridge.
func (c *Controller) SetVolume(level float64) {
	if c.state == StateDestroyed {
		return
	}
	c.volume = level
	if c.audio != nil {
		c.audio.SetVolume(level)
	}
}

// SetMuted forwards the mute flag to the audio bridge.
func (c *Controller) SetMuted(muted bool) {
	if c.state == StateDestroyed {
		return
	}
	c.muted = muted
	if c.audio != nil {
		c.audio.SetMuted(muted)
	}
}

// Volume returns the last forwarded volume level and mute flag.
func (c *Controller) Volume() (level float64, muted bool) {
	return c.volume, c.muted
}

// Tick advances the simulation by dt. Long frames are split into steps of at
// most Config.MaxStep. Ticks outside the Running state do nothing.
func (c *Controller) Tick(dt time.Duration) error {
	if c.state == StateDestroyed {
		return ErrDestroyed
	}
	for dt > 0 && c.state == StateRunning {
		step := dt
		if step > c.cfg.MaxStep {
			step = c.cfg.MaxStep
		}
		c.step(step)
		dt -= step
	}
	return nil
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Session returns a snapshot of the current or last session.
func (c *Controller) Session() Session {
	s := c.session
	s.State = c.state
	return s
}

// Player returns the player's lane and jump phase.
func (c *Controller) Player() PlayerState {
	return c.player.State()
}

// PlayerPosition returns the player's eased normalized lane position.
func (c *Controller) PlayerPosition() float64 {
	return c.player.VisualPosition()
}

// JumpHeight returns the player's lift in [0,1].
func (c *Controller) JumpHeight() float64 {
	return c.player.JumpHeight()
}

// Entities returns a copy of the live entity records, or nil without a session.
func (c *Controller) Entities() []Entity {
	if c.pool == nil {
		return nil
	}
	return c.pool.Snapshot()
}

// Lanes returns the lane field. Callers must not resize it directly.
func (c *Controller) Lanes() *LaneField {
	return c.lanes
}

// Projector returns the depth projector bound to the current geometry.
func (c *Controller) Projector() Projector {
	return c.projector
}

// Config returns the tuning the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) begin(d Difficulty) {
	settings, ok := c.cfg.Difficulties[d]
	if !ok {
		c.logger.Warn("unknown difficulty, using normal", "difficulty", int(d))
		d = DifficultyNormal
		settings = c.cfg.Difficulties[d]
	}

	c.teardownSession()
	c.tick = 0
	c.pool = NewEntityPool(c.projector, c.cfg.BaseRate, c.cfg.ConsumeGrace)
	c.spawner = NewSpawnScheduler(settings, c.lanes.LaneCount(), c.cfg.MaxSpawnDepth, c.rng)
	c.player = NewPlayerController(c.lanes, c.cfg.StartLane, c.cfg.JumpDuration, c.cfg.LaneChangeDuration)
	c.speedTimer = newCountdown(c.cfg.SpeedInterval)
	c.session = Session{
		ID:         uuid.New(),
		Difficulty: d,
		Speed:      settings.ForwardSpeed,
	}
	if c.cfg.Prewarm > 0 {
		c.spawner.Prewarm(c.pool, c.cfg.Prewarm, c.tick)
	}
	c.state = StateRunning

	c.logger.Debug("session started", "id", c.session.ID, "difficulty", d, "speed", settings.ForwardSpeed)
	c.emit(StartedEvent{SessionID: c.session.ID, Difficulty: d})
}

func (c *Controller) teardownSession() {
	if c.spawner != nil {
		c.spawner.Cancel()
	}
	c.speedTimer.cancel()
	c.spawner = nil
	c.pool = nil
}

func (c *Controller) step(dt time.Duration) {
	if c.pool == nil || c.spawner == nil {
		panic("sim: running session without entity pool")
	}

	c.tick++
	c.session.ElapsedTicks = c.tick
	c.session.Elapsed += dt

	c.player.Update(dt)
	c.spawner.Advance(dt, c.pool, c.tick)

	deltaTicks := float64(dt) / float64(FrameDuration)
	c.pool.Advance(deltaTicks, c.session.Speed, c.tick)

	for _, p := range c.detector.Detect(c.pool.Snapshot(), c.player.State()) {
		c.apply(p)
		if c.state != StateRunning {
			break
		}
	}
	// A sink may have stopped or destroyed the session.
	if c.pool == nil {
		return
	}
	c.pool.Reap(c.session.Elapsed)

	if c.state == StateRunning && c.speedTimer.advance(dt) {
		c.raiseSpeed()
	}
}

func (c *Controller) apply(p Proposal) {
	if !c.pool.Consume(p.EntityID, c.session.Elapsed) {
		return
	}
	switch p.Outcome {
	case OutcomeCollect:
		c.session.Score += p.Points
		c.emit(ScoreDeltaEvent{Points: p.Points, Score: c.session.Score})
	case OutcomeHit:
		c.gameOver()
	}
}

func (c *Controller) gameOver() {
	if c.state != StateRunning {
		return
	}
	c.state = StateGameOver
	c.spawner.Cancel()
	c.speedTimer.cancel()

	c.logger.Debug("game over", "id", c.session.ID, "score", c.session.Score, "elapsed", c.session.Elapsed)
	c.emit(HitEvent{Lane: c.player.State().Lane})
	c.emit(GameOverEvent{
		SessionID:  c.session.ID,
		FinalScore: c.session.Score,
		Difficulty: c.session.Difficulty,
		Elapsed:    c.session.Elapsed,
	})
}

func (c *Controller) raiseSpeed() {
	next := c.session.Speed + c.cfg.SpeedStep
	if next > c.cfg.SpeedCap {
		next = c.cfg.SpeedCap
	}
	if next <= c.session.Speed {
		return
	}
	c.session.Speed = next
	c.logger.Debug("speed up", "speed", next)
	c.emit(SpeedChangedEvent{Speed: next, AtCap: next >= c.cfg.SpeedCap})
}

func (c *Controller) emit(e Event) {
	if c.state == StateDestroyed {
		return
	}
	for _, sink := range c.sinks {
		sink.HandleEvent(e)
	}
}
