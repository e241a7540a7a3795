package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
		{"above rect", 2, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 20, 4)
	if r.X != 30 || r.Y != 10 || r.Right() != 50 || r.Bottom() != 14 {
		t.Errorf("unexpected rect: %+v", r)
	}

	// Wider than the screen goes negative rather than clipping
	r = CenteredRect(10, 4, 20, 4)
	if r.X != -5 {
		t.Errorf("expected X=-5, got %d", r.X)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, want 1", got)
	}
	if got := ClampF(-0.2, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.2, 0, 1) = %v, want 0", got)
	}
}

func TestToCell(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{2.7, 3},
		{-0.4, 0},
		{-0.6, -1},
	}
	for _, tt := range tests {
		if got := ToCell(tt.v); got != tt.want {
			t.Errorf("ToCell(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
