package sim

import (
	"math"
	"testing"
)

func newTestLanes(t *testing.T) *LaneField {
	t.Helper()
	cfg := DefaultConfig()
	lf, err := NewLaneField(cfg.LanePositions, cfg.Geometry, 800, 600)
	if err != nil {
		t.Fatalf("NewLaneField() failed: %v", err)
	}
	return lf
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProjectKnownDepths(t *testing.T) {
	p := NewProjector(newTestLanes(t), 40, 3)

	tests := []struct {
		depth float64
		want  Projection
	}{
		{40, Projection{Y: 600, LaneLeftX: 80, RoadWidth: 640, Scale: 3, Alpha: 1}},
		{80, Projection{Y: 405, LaneLeftX: 225, RoadWidth: 350, Scale: 1.5, Alpha: 1}},
		{1000, Projection{Y: 225.6, LaneLeftX: 358.4, RoadWidth: 83.2, Scale: 0.12, Alpha: 0.08}},
	}

	for _, tt := range tests {
		got, ok := p.Project(tt.depth)
		if !ok {
			t.Fatalf("Project(%v) rejected", tt.depth)
		}
		if !approx(got.Y, tt.want.Y) || !approx(got.LaneLeftX, tt.want.LaneLeftX) ||
			!approx(got.RoadWidth, tt.want.RoadWidth) || !approx(got.Scale, tt.want.Scale) ||
			!approx(got.Alpha, tt.want.Alpha) {
			t.Errorf("Project(%v) = %+v, want %+v", tt.depth, got, tt.want)
		}
	}
}

func TestProjectRejectsInvalidDepth(t *testing.T) {
	p := NewProjector(newTestLanes(t), 40, 3)

	for _, depth := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, ok := p.Project(depth); ok {
			t.Errorf("Project(%v) should be rejected", depth)
		}
	}
}

func TestProjectMonotonic(t *testing.T) {
	p := NewProjector(newTestLanes(t), 40, 3)

	prev, _ := p.Project(1000)
	for depth := 990.0; depth > 0; depth -= 10 {
		cur, ok := p.Project(depth)
		if !ok {
			t.Fatalf("Project(%v) rejected", depth)
		}
		if cur.Y <= prev.Y {
			t.Errorf("Y should increase as depth shrinks: depth=%v y=%v prev=%v", depth, cur.Y, prev.Y)
		}
		if cur.Scale <= prev.Scale {
			t.Errorf("Scale should increase as depth shrinks: depth=%v", depth)
		}
		if cur.RoadWidth <= prev.RoadWidth {
			t.Errorf("RoadWidth should increase as depth shrinks: depth=%v", depth)
		}
		if cur.Alpha < prev.Alpha || cur.Alpha > 1 {
			t.Errorf("Alpha out of order at depth=%v: %v (prev %v)", depth, cur.Alpha, prev.Alpha)
		}
		prev = cur
	}
}

func TestLaneXAndDepthAtY(t *testing.T) {
	lanes := newTestLanes(t)
	p := NewProjector(lanes, 40, 3)

	x, ok := p.LaneX(1, 40)
	if !ok || !approx(x, 400) {
		t.Errorf("LaneX(1, 40) = %v, %v; want 400", x, ok)
	}
	if _, ok := p.LaneX(3, 40); ok {
		t.Error("LaneX should reject an out-of-range lane")
	}

	proj, _ := p.Project(120)
	depth, ok := p.DepthAtY(proj.Y)
	if !ok || math.Abs(depth-120) > 1e-6 {
		t.Errorf("DepthAtY(%v) = %v, want 120", proj.Y, depth)
	}
	if _, ok := p.DepthAtY(lanes.HorizonY()); ok {
		t.Error("DepthAtY at the horizon should have no depth")
	}
}

func TestLaneFieldResize(t *testing.T) {
	lf := newTestLanes(t)

	if lf.HorizonY() != 210 || lf.FloorY() != 600 || lf.FloorWidth() != 640 || lf.HorizonWidth() != 60 {
		t.Errorf("unexpected geometry: horizon=%v floor=%v floorW=%v horizonW=%v",
			lf.HorizonY(), lf.FloorY(), lf.FloorWidth(), lf.HorizonWidth())
	}

	for _, size := range [][2]float64{{0, 0}, {-1, 100}, {100, 0}, {math.NaN(), 100}} {
		if lf.Resize(size[0], size[1]) {
			t.Errorf("Resize(%v, %v) should be rejected", size[0], size[1])
		}
	}
	if lf.Width() != 800 || lf.Height() != 600 {
		t.Errorf("rejected resize changed geometry: %vx%v", lf.Width(), lf.Height())
	}

	// A narrow viewport caps the horizon width at the floor width
	if !lf.Resize(50, 40) {
		t.Fatal("Resize(50, 40) rejected")
	}
	if lf.FloorWidth() != 40 || lf.HorizonWidth() != 40 {
		t.Errorf("narrow viewport: floorW=%v horizonW=%v, want 40/40", lf.FloorWidth(), lf.HorizonWidth())
	}
}

func TestLanePositions(t *testing.T) {
	got := EvenLanePositions(3)
	want := []float64{0.25, 0.5, 0.75}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("EvenLanePositions(3)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	invalid := [][]float64{
		nil,
		{0.5, 0.5},
		{0.7, 0.3},
		{-0.1, 0.5},
		{0.5, 1.2},
	}
	for _, positions := range invalid {
		if err := ValidateLanePositions(positions); err == nil {
			t.Errorf("ValidateLanePositions(%v) should fail", positions)
		}
	}
}
