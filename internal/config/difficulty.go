package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/runway/internal/games/runway/sim"
)

// DifficultyPreset is a named row of the difficulty table.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset maps a case-insensitive name to a preset. An empty name
// selects normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(name))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyNormal, "":
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// SimDifficulty converts a preset to the simulation enum.
func (p DifficultyPreset) SimDifficulty() sim.Difficulty {
	d, err := sim.ParseDifficulty(string(p))
	if err != nil {
		return sim.DifficultyNormal
	}
	return d
}

// ApplyPreset makes the preset the default difficulty.
func ApplyPreset(cfg *RunwayConfig, preset DifficultyPreset) {
	cfg.DefaultDifficulty = string(preset)
}

// Validate rejects values the game cannot run with.
func (c RunwayConfig) Validate() error {
	if _, err := ParsePreset(c.DefaultDifficulty); err != nil {
		return fmt.Errorf("default_difficulty: %w", err)
	}
	if c.Lanes.HorizonRatio < 0 || c.Lanes.HorizonRatio >= 1 {
		return fmt.Errorf("lanes.horizon_ratio %v outside [0,1)", c.Lanes.HorizonRatio)
	}
	if c.Lanes.FloorWidthRatio <= 0 || c.Lanes.FloorWidthRatio > 1 {
		return fmt.Errorf("lanes.floor_width_ratio %v outside (0,1]", c.Lanes.FloorWidthRatio)
	}
	if c.Lanes.HorizonWidth < 0 {
		return errors.New("lanes.horizon_width must not be negative")
	}
	if c.Player.StartLane < 0 || c.Player.StartLane >= len(c.Lanes.Positions) {
		return fmt.Errorf("player.start_lane %d outside the %d configured lanes", c.Player.StartLane, len(c.Lanes.Positions))
	}
	if c.Player.LaneChangeMS < 0 || c.Collision.ConsumeGraceMS < 0 || c.Progression.IntervalMS < 0 {
		return errors.New("durations must not be negative")
	}
	if c.Spawn.Prewarm < 0 {
		return errors.New("spawn.prewarm must not be negative")
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		return errors.New("render cell size must be positive")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume %v outside [0,1]", c.Audio.Volume)
	}
	for _, p := range Presets() {
		if _, ok := c.Difficulties[string(p)]; !ok {
			return fmt.Errorf("difficulties.%s is missing", p)
		}
	}

	return c.SimConfig().Validate()
}

// SimConfig converts the YAML configuration to simulation tuning.
// The viewport starts at 80x24 cells and is replaced by the first resize.
func (c RunwayConfig) SimConfig() sim.Config {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	difficulties := make(map[sim.Difficulty]sim.DifficultySettings, len(c.Difficulties))
	for name, row := range c.Difficulties {
		d, err := sim.ParseDifficulty(name)
		if err != nil || name == "" {
			continue
		}
		difficulties[d] = sim.DifficultySettings{
			ForwardSpeed:        row.ForwardSpeed,
			ObstacleInterval:    ms(row.ObstacleIntervalMS),
			CollectibleInterval: ms(row.CollectibleIntervalMS),
		}
	}

	return sim.Config{
		LanePositions: append([]float64(nil), c.Lanes.Positions...),
		Geometry: sim.Geometry{
			HorizonRatio:    c.Lanes.HorizonRatio,
			FloorWidthRatio: c.Lanes.FloorWidthRatio,
			HorizonWidth:    c.Lanes.HorizonWidth,
		},
		ViewportW: 80 * c.Render.CellWidth,
		ViewportH: 24 * c.Render.CellHeight,

		ReferenceDepth: c.Projection.ReferenceDepth,
		ScaleFactor:    c.Projection.ScaleFactor,

		MaxSpawnDepth: c.Spawn.MaxDepth,
		Prewarm:       c.Spawn.Prewarm,

		NearBound:    c.Collision.Near,
		FarBound:     c.Collision.Far,
		PointValue:   c.Collision.PointValue,
		ConsumeGrace: ms(c.Collision.ConsumeGraceMS),

		StartLane:          c.Player.StartLane,
		JumpDuration:       ms(c.Player.JumpMS),
		LaneChangeDuration: ms(c.Player.LaneChangeMS),

		BaseRate:      c.Progression.BaseRate,
		SpeedInterval: ms(c.Progression.IntervalMS),
		SpeedStep:     c.Progression.Step,
		SpeedCap:      c.Progression.Cap,

		MaxStep: ms(c.Timing.MaxStepMS),

		Difficulties: difficulties,
	}
}
