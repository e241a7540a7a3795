package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

const (
	sendBuffer   = 8
	writeTimeout = 2 * time.Second
	maxPending   = 32
)

type viewer struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// Hub fans frames out to connected viewers. Publish never blocks the game
// loop: a viewer whose buffer is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	viewers map[*viewer]struct{}
	last    []byte
	seq     uint64
	pending []string
	closed  bool

	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		viewers: make(map[*viewer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and streams frames until the viewer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "spectating closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectate upgrade failed", "err", err)
		return
	}

	v := &viewer{conn: conn, remote: r.RemoteAddr, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.viewers[v] = struct{}{}
	if h.last != nil {
		v.send <- h.last
	}
	count := len(h.viewers)
	h.mu.Unlock()
	h.logger.Info("viewer joined", "remote", r.RemoteAddr, "viewers", count)

	go h.writeLoop(v)

	// Viewers never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(v)
	h.logger.Info("viewer left", "remote", r.RemoteAddr)
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for msg := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(v)
			return
		}
	}
	v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// remove drops a viewer. The send channel is closed exactly once, by
// whoever deletes the map entry.
func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.send)
	}
}

// HandleEvent implements sim.EventSink. Event names ride along with the
// next published frame.
func (h *Hub) HandleEvent(e sim.Event) {
	name := eventName(e)
	if name == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) < maxPending {
		h.pending = append(h.pending, name)
	}
}

// Publish stamps the frame with the next sequence number and the pending
// events, then queues it for every viewer.
func (h *Hub) Publish(f Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}

	h.seq++
	f.Seq = h.seq
	f.Events = h.pending
	h.pending = nil

	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	h.last = data

	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			h.logger.Warn("dropping slow viewer", "remote", v.remote)
			delete(h.viewers, v)
			close(v.send)
		}
	}
	return nil
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Close disconnects every viewer and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.send)
	}
}

func eventName(e sim.Event) string {
	switch e.(type) {
	case sim.StartedEvent:
		return "started"
	case sim.ScoreDeltaEvent:
		return "score"
	case sim.HitEvent:
		return "hit"
	case sim.GameOverEvent:
		return "gameover"
	case sim.JumpedEvent:
		return "jump"
	case sim.LaneChangedEvent:
		return "lane"
	case sim.SpeedChangedEvent:
		return "speed"
	default:
		return ""
	}
}
