package sim

import "time"

// countdown is a repeating interval timer driven by simulated time.
type countdown struct {
	interval  time.Duration
	remaining time.Duration
	active    bool
}

func newCountdown(interval time.Duration) countdown {
	return countdown{interval: interval, remaining: interval, active: interval > 0}
}

// advance consumes dt and reports whether the timer fired.
// On firing the timer restarts at the full interval; any overshoot is dropped.
func (c *countdown) advance(dt time.Duration) bool {
	if !c.active {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.remaining = c.interval
	return true
}

func (c *countdown) cancel() {
	c.active = false
	c.remaining = 0
}

// SpawnScheduler creates entities on two independent interval timers.
type SpawnScheduler struct {
	obstacle    countdown
	collectible countdown
	laneCount   int
	maxDepth    float64
	rng         LaneRand
}

// NewSpawnScheduler creates a scheduler for the given difficulty row.
func NewSpawnScheduler(settings DifficultySettings, laneCount int, maxDepth float64, rng LaneRand) *SpawnScheduler {
	return &SpawnScheduler{
		obstacle:    newCountdown(settings.ObstacleInterval),
		collectible: newCountdown(settings.CollectibleInterval),
		laneCount:   laneCount,
		maxDepth:    maxDepth,
		rng:         rng,
	}
}

// Advance runs both timers and inserts an entity for each one that fires.
// It returns the number of entities spawned.
func (s *SpawnScheduler) Advance(dt time.Duration, pool *EntityPool, tick uint64) int {
	spawned := 0
	if s.obstacle.advance(dt) && s.spawn(pool, KindObstacle, s.maxDepth, tick) {
		spawned++
	}
	if s.collectible.advance(dt) && s.spawn(pool, KindCollectible, s.maxDepth, tick) {
		spawned++
	}
	return spawned
}

// Prewarm seeds n entities at staggered depths so a run does not start on an
// empty runway. Every third entity is an obstacle.
func (s *SpawnScheduler) Prewarm(pool *EntityPool, n int, tick uint64) {
	for i := 0; i < n; i++ {
		depth := 200 + float64(i)*100
		kind := KindCollectible
		if i%3 == 0 {
			kind = KindObstacle
		}
		s.spawn(pool, kind, depth, tick)
	}
}

// Cancel stops both timers permanently.
func (s *SpawnScheduler) Cancel() {
	s.obstacle.cancel()
	s.collectible.cancel()
}

// Remaining returns the time left on the obstacle and collectible timers.
func (s *SpawnScheduler) Remaining() (obstacle, collectible time.Duration) {
	return s.obstacle.remaining, s.collectible.remaining
}

func (s *SpawnScheduler) spawn(pool *EntityPool, kind Kind, depth float64, tick uint64) bool {
	if s.laneCount <= 0 || s.rng == nil {
		return false
	}
	lane := s.rng.Intn(s.laneCount)
	_, ok := pool.Insert(kind, lane, depth, tick)
	return ok
}
