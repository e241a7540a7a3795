package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// RunSaver persists finished runs. *Store implements it.
type RunSaver interface {
	SaveRun(Run) (bool, error)
}

// Recorder is a sim.EventSink that stores a run when a session ends.
// Save failures are logged and otherwise ignored so play continues.
type Recorder struct {
	saver  RunSaver
	player string
	logger *log.Logger
	last   *Run
}

// NewRecorder creates a recorder saving runs under the given player name.
func NewRecorder(saver RunSaver, player string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == "" {
		player = "anonymous"
	}
	return &Recorder{saver: saver, player: player, logger: logger}
}

// HandleEvent implements sim.EventSink.
func (r *Recorder) HandleEvent(e sim.Event) {
	over, ok := e.(sim.GameOverEvent)
	if !ok || r.saver == nil {
		return
	}

	run := Run{
		RunID:      over.SessionID,
		Player:     r.player,
		Difficulty: over.Difficulty.String(),
		Score:      over.FinalScore,
		Duration:   over.Elapsed,
	}
	inserted, err := r.saver.SaveRun(run)
	if err != nil {
		r.logger.Warn("failed to save run", "run", over.SessionID, "err", err)
		return
	}
	if !inserted {
		r.logger.Debug("run already recorded", "run", over.SessionID)
		return
	}
	r.last = &run
	r.logger.Info("run saved", "player", r.player, "score", run.Score, "difficulty", run.Difficulty)
}

// LastSaved returns the most recently stored run, if any.
func (r *Recorder) LastSaved() (Run, bool) {
	if r.last == nil {
		return Run{}, false
	}
	return *r.last, true
}

// Player returns the name runs are saved under.
func (r *Recorder) Player() string {
	return r.player
}
