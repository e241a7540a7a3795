// Package config provides YAML-based configuration loading and difficulty
// presets for the runway game.
package config

// RunwayConfig is the full tuning of a runway session as read from YAML.
// Durations are integer milliseconds so files stay hand-editable.
type RunwayConfig struct {
	DefaultDifficulty string                      `yaml:"default_difficulty"`
	Lanes             LanesConfig                 `yaml:"lanes"`
	Projection        ProjectionConfig            `yaml:"projection"`
	Spawn             SpawnConfig                 `yaml:"spawn"`
	Collision         CollisionConfig             `yaml:"collision"`
	Player            PlayerConfig                `yaml:"player"`
	Progression       ProgressionConfig           `yaml:"progression"`
	Timing            TimingConfig                `yaml:"timing"`
	Render            RenderConfig                `yaml:"render"`
	Audio             AudioConfig                 `yaml:"audio"`
	Difficulties      map[string]DifficultyConfig `yaml:"difficulties"`
}

// LanesConfig defines the lane layout and runway geometry ratios.
type LanesConfig struct {
	Positions       []float64 `yaml:"positions"`         // Normalized, strictly increasing
	HorizonRatio    float64   `yaml:"horizon_ratio"`     // Horizon row as a fraction of height
	FloorWidthRatio float64   `yaml:"floor_width_ratio"` // Road width at the floor as a fraction of width
	HorizonWidth    float64   `yaml:"horizon_width"`     // Road width at the horizon
}

// ProjectionConfig defines the perspective divide.
type ProjectionConfig struct {
	ReferenceDepth float64 `yaml:"reference_depth"`
	ScaleFactor    float64 `yaml:"scale_factor"`
}

// SpawnConfig defines where entities appear.
type SpawnConfig struct {
	MaxDepth float64 `yaml:"max_depth"`
	Prewarm  int     `yaml:"prewarm"`
}

// CollisionConfig defines the collision band and scoring.
type CollisionConfig struct {
	Near           float64 `yaml:"near"`
	Far            float64 `yaml:"far"`
	PointValue     int     `yaml:"point_value"`
	ConsumeGraceMS int     `yaml:"consume_grace_ms"`
}

// PlayerConfig defines player timing.
type PlayerConfig struct {
	StartLane    int `yaml:"start_lane"`
	JumpMS       int `yaml:"jump_ms"`
	LaneChangeMS int `yaml:"lane_change_ms"`
}

// ProgressionConfig defines forward speed progression.
type ProgressionConfig struct {
	BaseRate   float64 `yaml:"base_rate"`   // Depth units per 1/60s at speed 1
	IntervalMS int     `yaml:"interval_ms"` // 0 disables progression
	Step       float64 `yaml:"step"`
	Cap        float64 `yaml:"cap"`
}

// TimingConfig defines simulation stepping.
type TimingConfig struct {
	MaxStepMS int `yaml:"max_step_ms"`
}

// RenderConfig maps terminal cells to the virtual viewport the simulation
// projects into.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// AudioConfig holds the initial volume settings.
type AudioConfig struct {
	Volume float64 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
}

// DifficultyConfig is one row of the difficulty table.
type DifficultyConfig struct {
	ForwardSpeed          float64 `yaml:"forward_speed"`
	ObstacleIntervalMS    int     `yaml:"obstacle_interval_ms"`
	CollectibleIntervalMS int     `yaml:"collectible_interval_ms"`
}
