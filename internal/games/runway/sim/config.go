package sim

import (
	"errors"
	"fmt"
	"time"
)

// FrameDuration is the reference frame length: BaseRate is expressed in
// depth units per frame of this length.
const FrameDuration = time.Second / 60

// Config holds every tunable of the simulation.
type Config struct {
	LanePositions []float64
	Geometry      Geometry
	ViewportW     float64
	ViewportH     float64

	ReferenceDepth float64 // K in ratio = K/depth
	ScaleFactor    float64

	MaxSpawnDepth float64
	Prewarm       int // Entities seeded at session start

	NearBound    float64
	FarBound     float64
	PointValue   int
	ConsumeGrace time.Duration

	StartLane          int
	JumpDuration       time.Duration
	LaneChangeDuration time.Duration

	BaseRate      float64 // Depth units per frame at speed 1
	SpeedInterval time.Duration
	SpeedStep     float64
	SpeedCap      float64

	MaxStep time.Duration // Longest single simulation step; larger ticks are subdivided

	Difficulties map[Difficulty]DifficultySettings
}

// DefaultDifficulties returns the built-in difficulty table.
func DefaultDifficulties() map[Difficulty]DifficultySettings {
	return map[Difficulty]DifficultySettings{
		DifficultyEasy:   {ForwardSpeed: 1.2, ObstacleInterval: 2500 * time.Millisecond, CollectibleInterval: 1200 * time.Millisecond},
		DifficultyNormal: {ForwardSpeed: 1.5, ObstacleInterval: 2000 * time.Millisecond, CollectibleInterval: 1000 * time.Millisecond},
		DifficultyHard:   {ForwardSpeed: 2.0, ObstacleInterval: 1500 * time.Millisecond, CollectibleInterval: 800 * time.Millisecond},
	}
}

// DefaultConfig returns the reference tuning on an 800x600 viewport.
func DefaultConfig() Config {
	return Config{
		LanePositions: EvenLanePositions(3),
		Geometry: Geometry{
			HorizonRatio:    0.35,
			FloorWidthRatio: 0.8,
			HorizonWidth:    60,
		},
		ViewportW: 800,
		ViewportH: 600,

		ReferenceDepth: 40,
		ScaleFactor:    3.0,

		MaxSpawnDepth: 1000,

		NearBound:    30,
		FarBound:     50,
		PointValue:   10,
		ConsumeGrace: 50 * time.Millisecond,

		StartLane:          1,
		JumpDuration:       500 * time.Millisecond,
		LaneChangeDuration: 200 * time.Millisecond,

		BaseRate:      1,
		SpeedInterval: 10 * time.Second,
		SpeedStep:     0.2,
		SpeedCap:      5.0,

		MaxStep: 50 * time.Millisecond,

		Difficulties: DefaultDifficulties(),
	}
}

// Validate checks the configuration for values the simulation cannot run with.
func (c Config) Validate() error {
	if err := ValidateLanePositions(c.LanePositions); err != nil {
		return err
	}
	if c.ReferenceDepth <= 0 {
		return errors.New("sim: reference depth must be positive")
	}
	if c.ScaleFactor <= 0 {
		return errors.New("sim: scale factor must be positive")
	}
	if c.MaxSpawnDepth <= c.FarBound {
		return fmt.Errorf("sim: spawn depth %v must lie beyond the collision band", c.MaxSpawnDepth)
	}
	if c.NearBound < 0 || c.NearBound > c.FarBound {
		return fmt.Errorf("sim: invalid collision band [%v, %v]", c.NearBound, c.FarBound)
	}
	if c.BaseRate <= 0 {
		return errors.New("sim: base rate must be positive")
	}
	if c.JumpDuration <= 0 {
		return errors.New("sim: jump duration must be positive")
	}
	if c.MaxStep <= 0 {
		return errors.New("sim: max step must be positive")
	}
	for _, d := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		s, ok := c.Difficulties[d]
		if !ok {
			return fmt.Errorf("sim: difficulty %s missing from table", d)
		}
		if s.ForwardSpeed <= 0 || s.ObstacleInterval <= 0 || s.CollectibleInterval <= 0 {
			return fmt.Errorf("sim: difficulty %s has non-positive settings", d)
		}
		if c.SpeedCap < s.ForwardSpeed {
			return fmt.Errorf("sim: speed cap %v below %s forward speed %v", c.SpeedCap, d, s.ForwardSpeed)
		}
	}
	return nil
}
