// Package sim implements the runway simulation: depth projection, lane
// geometry, entity spawning and reaping, collision detection, player
// locomotion and the session state machine.
//
// The package has no terminal, audio or storage dependencies. Collaborators
// observe it through EventSink and AudioBridge and read projected state
// through the Controller accessors.
package sim

import (
	"fmt"
	"time"
)

// Difficulty selects forward speed and spawn intervals from the difficulty table.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// String returns the lowercase name used in configs and storage.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a name to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	switch name {
	case "easy":
		return DifficultyEasy, nil
	case "normal", "":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("sim: unknown difficulty %q", name)
	}
}

// DifficultySettings is one row of the difficulty table.
type DifficultySettings struct {
	ForwardSpeed        float64       // Initial speed multiplier
	ObstacleInterval    time.Duration // Time between obstacle spawns
	CollectibleInterval time.Duration // Time between collectible spawns
}

// Kind distinguishes hazards from pickups.
type Kind int

const (
	KindObstacle Kind = iota
	KindCollectible
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// JumpState is the player's vertical phase.
type JumpState int

const (
	Grounded JumpState = iota
	Ascending
	Descending
)

// String returns a human-readable name for the jump state.
func (j JumpState) String() string {
	switch j {
	case Grounded:
		return "grounded"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unknown"
	}
}

// Airborne reports whether the player is off the ground.
func (j JumpState) Airborne() bool {
	return j == Ascending || j == Descending
}

// State is the session lifecycle state owned by the Controller.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
	StateDestroyed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// LaneRand is the random source used for lane selection.
// *math/rand.Rand satisfies it; tests supply deterministic sequences.
type LaneRand interface {
	Intn(n int) int
}
