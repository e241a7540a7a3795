// Package audio synthesizes short sound cues for runway events and mixes
// them through a master volume control.
package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Cue identifies a synthesized sound.
type Cue int

const (
	CueNone Cue = iota
	CueJump
	CueLane
	CueCollect
	CueHit
	CueGameOver
	CueSpeedUp
	CueStart
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLane:
		return "lane"
	case CueCollect:
		return "collect"
	case CueHit:
		return "hit"
	case CueGameOver:
		return "game over"
	case CueSpeedUp:
		return "speed up"
	case CueStart:
		return "start"
	default:
		return "none"
	}
}

// CueFor maps a simulation event to its cue.
func CueFor(e sim.Event) Cue {
	switch e.(type) {
	case sim.JumpedEvent:
		return CueJump
	case sim.LaneChangedEvent:
		return CueLane
	case sim.ScoreDeltaEvent:
		return CueCollect
	case sim.HitEvent:
		return CueHit
	case sim.GameOverEvent:
		return CueGameOver
	case sim.SpeedChangedEvent:
		return CueSpeedUp
	case sim.StartedEvent:
		return CueStart
	default:
		return CueNone
	}
}

type note struct {
	freq float64 // 0 is noise
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueJump:     {{440, 40 * time.Millisecond}, {587.33, 40 * time.Millisecond}, {880, 60 * time.Millisecond}},
	CueLane:     {{329.63, 30 * time.Millisecond}},
	CueCollect:  {{880, 60 * time.Millisecond}, {1318.51, 120 * time.Millisecond}},
	CueHit:      {{0, 150 * time.Millisecond}},
	CueGameOver: {{440, 150 * time.Millisecond}, {329.63, 150 * time.Millisecond}, {220, 300 * time.Millisecond}},
	CueSpeedUp:  {{659.25, 50 * time.Millisecond}, {0, 20 * time.Millisecond}, {659.25, 50 * time.Millisecond}},
	CueStart:    {{523.25, 80 * time.Millisecond}, {783.99, 120 * time.Millisecond}},
}

// Synthesize builds a finite streamer for a cue, or nil for CueNone.
func Synthesize(c Cue) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if s := tone(n); s != nil {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}

// Duration returns the total length of a cue.
func Duration(c Cue) time.Duration {
	var total time.Duration
	for _, n := range cueNotes[c] {
		total += n.dur
	}
	return total
}

func tone(n note) beep.Streamer {
	samples := SampleRate.N(n.dur)
	var src beep.Streamer
	if n.freq == 0 {
		src = noise()
	} else {
		sine, err := generators.SineTone(SampleRate, n.freq)
		if err != nil {
			return nil
		}
		src = sine
	}
	return &envelope{
		streamer: beep.Take(samples, src),
		total:    samples,
		attack:   SampleRate.N(5 * time.Millisecond),
		release:  samples / 3,
	}
}

func noise() beep.Streamer {
	rng := rand.New(rand.NewSource(1))
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}

// envelope applies a linear attack and release to a finite stream so notes
// do not click.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain *= float64(left) / float64(e.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
