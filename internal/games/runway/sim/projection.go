package sim

import "math"

// Projection is the screen placement of a depth value.
type Projection struct {
	Y         float64 // Screen row/pixel of the object base
	LaneLeftX float64 // Left edge of the road at this depth
	RoadWidth float64 // Road width at this depth
	Scale     float64 // Size multiplier relative to the base sprite size
	Alpha     float64 // Opacity in [0,1]
}

// Projector maps depth to screen attributes. It holds no state of its own
// beyond a reference to the lane field and two constants.
type Projector struct {
	lanes          *LaneField
	referenceDepth float64 // K: depth at which the perspective ratio is 1
	scaleFactor    float64
}

// NewProjector creates a projector over the given lane field.
func NewProjector(lanes *LaneField, referenceDepth, scaleFactor float64) Projector {
	return Projector{
		lanes:          lanes,
		referenceDepth: referenceDepth,
		scaleFactor:    scaleFactor,
	}
}

// Ratio returns K/depth, the perspective divide.
func (p Projector) Ratio(depth float64) (float64, bool) {
	if !(depth > 0) || math.IsInf(depth, 0) {
		return 0, false
	}
	return p.referenceDepth / depth, true
}

// Project maps a depth to screen attributes. Non-positive depths are rejected.
func (p Projector) Project(depth float64) (Projection, bool) {
	ratio, ok := p.Ratio(depth)
	if !ok || p.lanes == nil {
		return Projection{}, false
	}

	lf := p.lanes
	roadWidth := lf.horizonWidth + (lf.floorWidth-lf.horizonWidth)*ratio
	return Projection{
		Y:         lf.horizonY + (lf.floorY-lf.horizonY)*ratio,
		LaneLeftX: (lf.width - roadWidth) / 2,
		RoadWidth: roadWidth,
		Scale:     ratio * p.scaleFactor,
		Alpha:     math.Min(1, ratio*2),
	}, true
}

// LaneX returns the screen X of a lane center at the given depth.
func (p Projector) LaneX(lane int, depth float64) (float64, bool) {
	proj, ok := p.Project(depth)
	if !ok {
		return 0, false
	}
	return p.lanes.LaneCenterX(lane, proj.RoadWidth, proj.LaneLeftX)
}

// DepthAtY inverts the Y mapping: it returns the depth whose projection lands
// on screen row y. Rows at or above the horizon have no finite depth.
func (p Projector) DepthAtY(y float64) (float64, bool) {
	if p.lanes == nil {
		return 0, false
	}
	dy := y - p.lanes.horizonY
	span := p.lanes.floorY - p.lanes.horizonY
	if dy <= 0 || span <= 0 {
		return 0, false
	}
	return p.referenceDepth * span / dy, true
}

// ReferenceDepth returns K.
func (p Projector) ReferenceDepth() float64 {
	return p.referenceDepth
}
