package sim

import (
	"math"
	"time"
)

// PlayerState is the collision-relevant part of the player.
type PlayerState struct {
	Lane int
	Jump JumpState
}

// PlayerController owns the player's lane and jump state machine.
type PlayerController struct {
	state     PlayerState
	laneCount int

	jumpDuration time.Duration
	jumpElapsed  time.Duration // Time spent in the current airborne phase sequence

	// Visual lane tween; the logical lane switches immediately.
	lanes         *LaneField
	tweenDuration time.Duration
	tweenElapsed  time.Duration
	tweenFrom     float64
	tweenTo       float64
	tweenInFlight bool
}

// NewPlayerController creates a grounded player in the given lane.
// The start lane is clamped into range.
func NewPlayerController(lanes *LaneField, startLane int, jumpDuration, laneChangeDuration time.Duration) *PlayerController {
	count := lanes.LaneCount()
	lane := clampLane(startLane, count)
	pos, _ := lanes.Position(lane)
	return &PlayerController{
		state:         PlayerState{Lane: lane, Jump: Grounded},
		laneCount:     count,
		jumpDuration:  jumpDuration,
		lanes:         lanes,
		tweenDuration: laneChangeDuration,
		tweenFrom:     pos,
		tweenTo:       pos,
	}
}

func clampLane(lane, count int) int {
	if count <= 0 {
		return 0
	}
	if lane < 0 {
		return 0
	}
	if lane > count-1 {
		return count - 1
	}
	return lane
}

// State returns the current player state.
func (pc *PlayerController) State() PlayerState {
	return pc.state
}

// Jump starts a jump if grounded. Requests while airborne are ignored.
func (pc *PlayerController) Jump() bool {
	if pc.state.Jump != Grounded {
		return false
	}
	pc.state.Jump = Ascending
	pc.jumpElapsed = 0
	return true
}

// MoveLeft shifts one lane left. At the left edge it is a no-op.
func (pc *PlayerController) MoveLeft() bool {
	return pc.shift(-1)
}

// MoveRight shifts one lane right. At the right edge it is a no-op.
func (pc *PlayerController) MoveRight() bool {
	return pc.shift(1)
}

func (pc *PlayerController) shift(delta int) bool {
	target := pc.state.Lane + delta
	if target < 0 || target >= pc.laneCount {
		return false
	}

	// Start the tween from wherever the player currently appears
	pc.tweenFrom = pc.VisualPosition()
	pc.tweenTo, _ = pc.lanes.Position(target)
	pc.tweenElapsed = 0
	pc.tweenInFlight = pc.tweenDuration > 0
	pc.state.Lane = target
	return true
}

// Update advances the jump state machine and the lane tween by dt.
func (pc *PlayerController) Update(dt time.Duration) {
	if pc.state.Jump != Grounded {
		pc.jumpElapsed += dt
		half := pc.jumpDuration / 2
		switch {
		case pc.jumpElapsed >= pc.jumpDuration:
			pc.state.Jump = Grounded
			pc.jumpElapsed = 0
		case pc.jumpElapsed >= half:
			pc.state.Jump = Descending
		}
	}

	if pc.tweenInFlight {
		pc.tweenElapsed += dt
		if pc.tweenElapsed >= pc.tweenDuration {
			pc.tweenInFlight = false
			pc.tweenFrom = pc.tweenTo
		}
	}
}

// VisualPosition returns the normalized lane position the player appears
// at, interpolated with a sine ease-in-out while changing lanes.
func (pc *PlayerController) VisualPosition() float64 {
	if !pc.tweenInFlight || pc.tweenDuration <= 0 {
		return pc.tweenTo
	}
	t := float64(pc.tweenElapsed) / float64(pc.tweenDuration)
	if t > 1 {
		t = 1
	}
	eased := -(math.Cos(math.Pi*t) - 1) / 2
	return pc.tweenFrom + (pc.tweenTo-pc.tweenFrom)*eased
}

// JumpHeight returns the jump lift as a fraction of the peak height in [0,1].
// The arc eases out on the way up and mirrors on the way down.
func (pc *PlayerController) JumpHeight() float64 {
	if pc.state.Jump == Grounded || pc.jumpDuration <= 0 {
		return 0
	}
	half := float64(pc.jumpDuration) / 2
	elapsed := float64(pc.jumpElapsed)
	var t float64
	if elapsed < half {
		t = elapsed / half
	} else {
		t = (float64(pc.jumpDuration) - elapsed) / half
	}
	if t < 0 {
		t = 0
	}
	return math.Sin(t * math.Pi / 2)
}
