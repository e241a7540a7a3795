package sim

import (
	"errors"
	"fmt"
	"math"
)

// Geometry holds the ratios used to derive runway extents from a viewport.
type Geometry struct {
	HorizonRatio    float64 // horizonY as a fraction of viewport height
	FloorWidthRatio float64 // Road width at the floor as a fraction of viewport width
	HorizonWidth    float64 // Road width at the horizon, in screen units
}

// LaneField is the fixed lane layout plus the runway extents for the
// current viewport. Only Resize mutates it.
type LaneField struct {
	positions []float64
	geometry  Geometry

	width        float64
	height       float64
	horizonY     float64
	floorY       float64
	horizonWidth float64
	floorWidth   float64
}

// EvenLanePositions spreads n lanes evenly, away from the road edges.
// Three lanes yield 0.25, 0.5, 0.75.
func EvenLanePositions(n int) []float64 {
	if n <= 0 {
		return nil
	}
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = float64(i+1) / float64(n+1)
	}
	return positions
}

// ValidateLanePositions checks that positions are strictly increasing in [0,1].
func ValidateLanePositions(positions []float64) error {
	if len(positions) == 0 {
		return errors.New("sim: at least one lane is required")
	}
	for i, p := range positions {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("sim: lane %d position %v outside [0,1]", i, p)
		}
		if i > 0 && p <= positions[i-1] {
			return fmt.Errorf("sim: lane positions must be strictly increasing (lane %d)", i)
		}
	}
	return nil
}

// NewLaneField creates a lane field for the given viewport.
// Positions are copied; an invalid layout or viewport is an error.
func NewLaneField(positions []float64, geometry Geometry, width, height float64) (*LaneField, error) {
	if err := ValidateLanePositions(positions); err != nil {
		return nil, err
	}
	lf := &LaneField{
		positions: append([]float64(nil), positions...),
		geometry:  geometry,
	}
	if !lf.Resize(width, height) {
		return nil, fmt.Errorf("sim: invalid viewport %vx%v", width, height)
	}
	return lf, nil
}

// Resize recomputes the runway extents from a new viewport.
// Non-positive dimensions are rejected and the last valid geometry is kept.
func (lf *LaneField) Resize(width, height float64) bool {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return false
	}

	lf.width = width
	lf.height = height
	lf.horizonY = height * lf.geometry.HorizonRatio
	lf.floorY = height
	lf.floorWidth = width * lf.geometry.FloorWidthRatio
	lf.horizonWidth = math.Min(lf.geometry.HorizonWidth, lf.floorWidth)
	return true
}

// LaneCount returns the number of lanes.
func (lf *LaneField) LaneCount() int {
	return len(lf.positions)
}

// Position returns the normalized position of a lane.
func (lf *LaneField) Position(lane int) (float64, bool) {
	if lane < 0 || lane >= len(lf.positions) {
		return 0, false
	}
	return lf.positions[lane], true
}

// LaneCenterX combines a lane's normalized position with projected road geometry.
func (lf *LaneField) LaneCenterX(lane int, roadWidth, laneLeftX float64) (float64, bool) {
	pos, ok := lf.Position(lane)
	if !ok {
		return 0, false
	}
	return laneLeftX + roadWidth*pos, true
}

// Width returns the viewport width.
func (lf *LaneField) Width() float64 { return lf.width }

// Height returns the viewport height.
func (lf *LaneField) Height() float64 { return lf.height }

// HorizonY returns the screen Y of the horizon.
func (lf *LaneField) HorizonY() float64 { return lf.horizonY }

// FloorY returns the screen Y of the floor.
func (lf *LaneField) FloorY() float64 { return lf.floorY }

// HorizonWidth returns the road width at the horizon.
func (lf *LaneField) HorizonWidth() float64 { return lf.horizonWidth }

// FloorWidth returns the road width at the floor.
func (lf *LaneField) FloorWidth() float64 { return lf.floorWidth }

// RoadAtY returns the road width and left edge at a screen row between the
// horizon and the floor. Used for drawing the runway itself.
func (lf *LaneField) RoadAtY(y float64) (roadWidth, left float64) {
	span := lf.floorY - lf.horizonY
	t := 0.0
	if span > 0 {
		t = (y - lf.horizonY) / span
	}
	roadWidth = lf.horizonWidth + (lf.floorWidth-lf.horizonWidth)*t
	left = (lf.width - roadWidth) / 2
	return roadWidth, left
}
