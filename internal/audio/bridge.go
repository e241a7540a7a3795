package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// MaxVoices bounds the number of cues mixed at once. Further cues are dropped.
const MaxVoices = 16

// Bridge plays cues for simulation events. It implements sim.AudioBridge
// and sim.EventSink. Until Open is called cues are mixed but never reach a
// device.
type Bridge struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	master *effects.Volume
	level  float64
	muted  bool
	opened bool
	logger *log.Logger
}

// NewBridge creates a bridge with the given initial volume in [0,1].
func NewBridge(level float64, muted bool, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Bridge{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	b.master = &effects.Volume{Streamer: b.mixer, Base: 2}
	b.level = clampLevel(level)
	b.muted = muted
	b.applyGain()
	return b
}

// Open initializes the speaker and starts playback. Calling it twice is a no-op.
func (b *Bridge) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.opened {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.master)
	b.opened = true
	b.logger.Debug("audio opened", "rate", int(SampleRate))
	return nil
}

// Close stops every cue. The speaker stays initialized.
func (b *Bridge) Close() {
	b.withLock(func() {
		b.mixer.Clear()
	})
}

// SetVolume implements sim.AudioBridge. Levels are clamped to [0,1].
func (b *Bridge) SetVolume(level float64) {
	b.withLock(func() {
		b.level = clampLevel(level)
		b.applyGain()
	})
}

// SetMuted implements sim.AudioBridge.
func (b *Bridge) SetMuted(muted bool) {
	b.withLock(func() {
		b.muted = muted
		b.applyGain()
	})
}

// Level returns the current volume and mute flag.
func (b *Bridge) Level() (level float64, muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level, b.muted
}

// HandleEvent implements sim.EventSink.
func (b *Bridge) HandleEvent(e sim.Event) {
	b.Play(CueFor(e))
}

// Play mixes a cue. It reports false if the cue is empty or the mixer is full.
func (b *Bridge) Play(c Cue) bool {
	s := Synthesize(c)
	if s == nil {
		return false
	}
	played := false
	b.withLock(func() {
		if b.mixer.Len() >= MaxVoices {
			return
		}
		b.mixer.Add(s)
		played = true
	})
	if !played {
		b.logger.Debug("audio cue dropped", "cue", c)
	}
	return played
}

// Voices returns the number of cues still mixing.
func (b *Bridge) Voices() int {
	n := 0
	b.withLock(func() { n = b.mixer.Len() })
	return n
}

// Output returns the master stream. The speaker reads it after Open; tests
// and offline renderers can pull samples from it directly.
func (b *Bridge) Output() beep.Streamer {
	return lockedStreamer{b: b}
}

type lockedStreamer struct{ b *Bridge }

func (l lockedStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	l.b.withLock(func() { n, ok = l.b.master.Stream(samples) })
	return n, ok
}

func (l lockedStreamer) Err() error { return nil }

func (b *Bridge) withLock(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.opened {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// applyGain maps the linear level onto the base-2 volume effect.
// log2(0) is -Inf, so zero is expressed as silence.
func (b *Bridge) applyGain() {
	if b.muted || b.level <= 0 {
		b.master.Silent = true
		b.master.Volume = 0
		return
	}
	b.master.Silent = false
	b.master.Volume = math.Log2(b.level)
}

func clampLevel(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
