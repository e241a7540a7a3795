package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Max(math.Abs(s[0]), math.Abs(s[1])))
	}
	return m
}

func TestCueForEvents(t *testing.T) {
	tests := []struct {
		event sim.Event
		want  Cue
	}{
		{sim.JumpedEvent{}, CueJump},
		{sim.LaneChangedEvent{From: 0, To: 1}, CueLane},
		{sim.ScoreDeltaEvent{Points: 10}, CueCollect},
		{sim.HitEvent{}, CueHit},
		{sim.GameOverEvent{}, CueGameOver},
		{sim.SpeedChangedEvent{Speed: 1.7}, CueSpeedUp},
		{sim.StartedEvent{}, CueStart},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CueFor(tt.event), "event %T", tt.event)
	}
}

func TestSynthesizeLengthAndRange(t *testing.T) {
	for _, c := range []Cue{CueJump, CueLane, CueCollect, CueHit, CueGameOver, CueSpeedUp, CueStart} {
		s := Synthesize(c)
		require.NotNil(t, s, "cue %s", c)

		want := 0
		for _, n := range cueNotes[c] {
			want += SampleRate.N(n.dur)
		}

		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := s.Stream(buf)
			total += n
			assert.LessOrEqual(t, peak(buf[:n]), 1.0, "cue %s clips", c)
			if !ok {
				break
			}
		}
		assert.Equal(t, want, total, "cue %s length", c)
		assert.Positive(t, Duration(c))
	}
	assert.Nil(t, Synthesize(CueNone))
}

func TestBridgeMixesAndDrains(t *testing.T) {
	b := NewBridge(1, false, nil)

	b.HandleEvent(sim.ScoreDeltaEvent{Points: 10, Score: 10})
	b.HandleEvent(sim.JumpedEvent{})
	assert.Equal(t, 2, b.Voices())

	out := b.Output()
	buf := make([][2]float64, SampleRate.N(50*time.Millisecond))
	n, ok := out.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)
	assert.Greater(t, peak(buf), 0.0, "cues should be audible")

	// Pull past the longest cue
	for i := 0; i < 20; i++ {
		out.Stream(buf)
	}
	assert.Equal(t, 0, b.Voices(), "finished cues should leave the mixer")
}

func TestBridgeMutedIsSilent(t *testing.T) {
	b := NewBridge(0.7, false, nil)
	b.SetMuted(true)
	b.Play(CueCollect)

	buf := make([][2]float64, 1024)
	b.Output().Stream(buf)
	assert.Equal(t, 0.0, peak(buf))

	level, muted := b.Level()
	assert.Equal(t, 0.7, level)
	assert.True(t, muted)
}

func TestBridgeVolumeScalesOutput(t *testing.T) {
	render := func(level float64) float64 {
		b := NewBridge(level, false, nil)
		b.Play(CueCollect)
		buf := make([][2]float64, SampleRate.N(40*time.Millisecond))
		b.Output().Stream(buf)
		return peak(buf)
	}

	full := render(1)
	half := render(0.5)
	require.Greater(t, full, 0.0)
	assert.InDelta(t, full/2, half, 1e-9)
	assert.Equal(t, 0.0, render(0))
}

func TestBridgeClampsVolume(t *testing.T) {
	b := NewBridge(2, false, nil)
	level, _ := b.Level()
	assert.Equal(t, 1.0, level)

	b.SetVolume(-3)
	level, _ = b.Level()
	assert.Equal(t, 0.0, level)

	b.SetVolume(math.NaN())
	level, _ = b.Level()
	assert.Equal(t, 0.0, level)
}

func TestBridgeVoiceLimit(t *testing.T) {
	b := NewBridge(1, false, nil)
	for i := 0; i < MaxVoices; i++ {
		require.True(t, b.Play(CueLane))
	}
	assert.False(t, b.Play(CueLane))
	assert.Equal(t, MaxVoices, b.Voices())

	b.Close()
	assert.Equal(t, 0, b.Voices())
}

func TestBridgeAsControllerCollaborator(t *testing.T) {
	b := NewBridge(1, false, nil)
	ctrl, err := sim.New(sim.Options{Audio: b, Sinks: []sim.EventSink{b}})
	require.NoError(t, err)

	ctrl.SetVolume(0.25)
	ctrl.SetMuted(true)
	level, muted := b.Level()
	assert.Equal(t, 0.25, level)
	assert.True(t, muted)

	ctrl.Start(sim.DifficultyNormal)
	assert.Equal(t, 1, b.Voices(), "start cue")
}
