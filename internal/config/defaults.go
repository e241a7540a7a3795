package config

import (
	_ "embed"
)

//go:embed defaults/runway.yaml
var defaultRunwayYAML []byte

// DefaultRunwayConfig returns the built-in configuration. It matches
// defaults/runway.yaml and is used when the embedded file cannot be parsed.
func DefaultRunwayConfig() RunwayConfig {
	return RunwayConfig{
		DefaultDifficulty: string(DifficultyNormal),
		Lanes: LanesConfig{
			Positions:       []float64{0.25, 0.5, 0.75},
			HorizonRatio:    0.35,
			FloorWidthRatio: 0.8,
			HorizonWidth:    60,
		},
		Projection: ProjectionConfig{
			ReferenceDepth: 40,
			ScaleFactor:    3.0,
		},
		Spawn: SpawnConfig{
			MaxDepth: 1000,
		},
		Collision: CollisionConfig{
			Near:           30,
			Far:            50,
			PointValue:     10,
			ConsumeGraceMS: 50,
		},
		Player: PlayerConfig{
			StartLane:    1,
			JumpMS:       500,
			LaneChangeMS: 200,
		},
		Progression: ProgressionConfig{
			BaseRate:   1,
			IntervalMS: 10000,
			Step:       0.2,
			Cap:        5.0,
		},
		Timing: TimingConfig{
			MaxStepMS: 50,
		},
		Render: RenderConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Audio: AudioConfig{
			Volume: 0.7,
		},
		Difficulties: map[string]DifficultyConfig{
			string(DifficultyEasy):   {ForwardSpeed: 1.2, ObstacleIntervalMS: 2500, CollectibleIntervalMS: 1200},
			string(DifficultyNormal): {ForwardSpeed: 1.5, ObstacleIntervalMS: 2000, CollectibleIntervalMS: 1000},
			string(DifficultyHard):   {ForwardSpeed: 2.0, ObstacleIntervalMS: 1500, CollectibleIntervalMS: 800},
		},
	}
}
