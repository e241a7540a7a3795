package sim

import (
	"time"

	"github.com/google/uuid"
)

// Event is something the controller reports to its collaborators.
type Event interface {
	simEvent()
}

// EventSink consumes controller events. Sinks run synchronously on the
// simulation goroutine. A sink may Stop or Destroy the controller; the tick
// in progress then ends without touching the released session.
type EventSink interface {
	HandleEvent(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// HandleEvent calls f(e).
func (f EventSinkFunc) HandleEvent(e Event) { f(e) }

// AudioBridge receives volume settings. The controller forwards them
// untouched and never reads them back.
type AudioBridge interface {
	SetVolume(level float64)
	SetMuted(muted bool)
}

// StartedEvent is sent when a new session begins running.
type StartedEvent struct {
	SessionID  uuid.UUID
	Difficulty Difficulty
}

func (StartedEvent) simEvent() {}

// ScoreDeltaEvent is sent once per collected entity.
type ScoreDeltaEvent struct {
	Points int
	Score  int // Score after applying Points
}

func (ScoreDeltaEvent) simEvent() {}

// HitEvent is sent when an obstacle is struck, right before GameOverEvent.
type HitEvent struct {
	Lane int
}

func (HitEvent) simEvent() {}

// GameOverEvent is sent exactly once per session.
type GameOverEvent struct {
	SessionID  uuid.UUID
	FinalScore int
	Difficulty Difficulty
	Elapsed    time.Duration
}

func (GameOverEvent) simEvent() {}

// JumpedEvent is sent when a jump request is accepted.
type JumpedEvent struct{}

func (JumpedEvent) simEvent() {}

// LaneChangedEvent is sent when a lane change request is accepted.
type LaneChangedEvent struct {
	From int
	To   int
}

func (LaneChangedEvent) simEvent() {}

// SpeedChangedEvent is sent when speed progression raises the multiplier.
type SpeedChangedEvent struct {
	Speed float64
	AtCap bool
}

func (SpeedChangedEvent) simEvent() {}
