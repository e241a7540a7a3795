// Package spectate streams projected runway frames to websocket viewers.
package spectate

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// ProtocolVersion is sent with every frame.
const ProtocolVersion = 1

// Frame is one projected snapshot of a session, as sent to viewers.
type Frame struct {
	Ver        int           `json:"ver"`
	Type       string        `json:"type"`
	Seq        uint64        `json:"seq"`
	SessionID  string        `json:"sessionId,omitempty"`
	State      string        `json:"state"`
	Difficulty string        `json:"difficulty"`
	Score      int           `json:"score"`
	Speed      float64       `json:"speed"`
	ElapsedMS  int64         `json:"elapsedMs"`
	Viewport   Viewport      `json:"viewport"`
	Player     PlayerFrame   `json:"player"`
	Entities   []EntityFrame `json:"entities"`
	Events     []string      `json:"events,omitempty"`
}

// Viewport describes the coordinate space of the projected values.
type Viewport struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	HorizonY float64 `json:"horizonY"`
	FloorY   float64 `json:"floorY"`
}

// PlayerFrame is the player's visual state.
type PlayerFrame struct {
	Lane     int     `json:"lane"`
	Position float64 `json:"position"` // Eased normalized lane position
	Jump     string  `json:"jump"`
	Lift     float64 `json:"lift"`
}

// EntityFrame is one projected entity. Only visible entities are sent.
type EntityFrame struct {
	ID       uint64  `json:"id"`
	Kind     string  `json:"kind"`
	Lane     int     `json:"lane"`
	Depth    float64 `json:"depth"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Alpha    float64 `json:"alpha"`
	Consumed bool    `json:"consumed,omitempty"`
}

// Source is the read side of a session controller.
type Source interface {
	Session() sim.Session
	Player() sim.PlayerState
	PlayerPosition() float64
	JumpHeight() float64
	Entities() []sim.Entity
	Lanes() *sim.LaneField
}

// Snapshot builds a frame from a controller. Seq and Events are filled in
// by the hub on publish.
func Snapshot(src Source) Frame {
	s := src.Session()
	lanes := src.Lanes()
	p := src.Player()

	f := Frame{
		Ver:        ProtocolVersion,
		Type:       "frame",
		State:      s.State.String(),
		Difficulty: s.Difficulty.String(),
		Score:      s.Score,
		Speed:      s.Speed,
		ElapsedMS:  s.Elapsed.Milliseconds(),
		Viewport: Viewport{
			Width:    lanes.Width(),
			Height:   lanes.Height(),
			HorizonY: lanes.HorizonY(),
			FloorY:   lanes.FloorY(),
		},
		Player: PlayerFrame{
			Lane:     p.Lane,
			Position: src.PlayerPosition(),
			Jump:     p.Jump.String(),
			Lift:     src.JumpHeight(),
		},
		Entities: []EntityFrame{},
	}
	if s.ID != uuid.Nil {
		f.SessionID = s.ID.String()
	}

	for _, e := range src.Entities() {
		if !e.Visible {
			continue
		}
		x, _ := lanes.LaneCenterX(e.Lane, e.Screen.RoadWidth, e.Screen.LaneLeftX)
		f.Entities = append(f.Entities, EntityFrame{
			ID:       e.ID,
			Kind:     e.Kind.String(),
			Lane:     e.Lane,
			Depth:    e.Depth,
			X:        x,
			Y:        e.Screen.Y,
			Scale:    e.Screen.Scale,
			Alpha:    e.Screen.Alpha,
			Consumed: e.Consumed,
		})
	}
	return f
}
