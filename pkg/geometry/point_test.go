package geometry

import "testing"

func TestPointArithmetic(t *testing.T) {
	a := Point{X: 10, Y: 20}
	b := Point{X: 3, Y: -4}

	if got := a.Add(b); got != (Point{X: 13, Y: 16}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (Point{X: 7, Y: 24}) {
		t.Errorf("Sub() = %v", got)
	}
	if !(Point{}).IsZero() || a.IsZero() {
		t.Error("IsZero() wrong")
	}
}

func TestRectNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already normal", Rect{X: 1, Y: 2, W: 3, H: 4}, Rect{X: 1, Y: 2, W: 3, H: 4}},
		{"negative width", Rect{X: 10, Y: 0, W: -4, H: 2}, Rect{X: 6, Y: 0, W: 4, H: 2}},
		{"negative both", Rect{X: 10, Y: 10, W: -4, H: -6}, Rect{X: 6, Y: 4, W: 4, H: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 80}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 50, Y: 40}, true},
		{Point{X: 0, Y: 0}, true},
		{Point{X: 100, Y: 80}, true},
		{Point{X: 101, Y: 40}, false},
		{Point{X: 50, Y: -1}, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectUnionAndTranslate(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 20, Y: -5, W: 5, H: 5}

	if got := a.Union(b); got != (Rect{X: 0, Y: -5, W: 25, H: 15}) {
		t.Errorf("Union() = %v", got)
	}
	if got := a.Translate(Point{X: 3, Y: 4}); got != (Rect{X: 3, Y: 4, W: 10, H: 10}) {
		t.Errorf("Translate() = %v", got)
	}
	if got := a.Center(); got != (Point{X: 5, Y: 5}) {
		t.Errorf("Center() = %v", got)
	}
}

func TestSegmentDistance(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 100, Y: 0}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above the middle", Point{X: 50, Y: 30}, 30},
		{"past the end", Point{X: 103, Y: 4}, 5},
		{"before the start", Point{X: -6, Y: -8}, 10},
		{"on the segment", Point{X: 20, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentDistance(tt.p, a, b); got != tt.want {
				t.Errorf("SegmentDistance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
	if got := SegmentDistance(Point{X: 3, Y: 4}, a, a); got != 5 {
		t.Errorf("degenerate segment: %v, want 5", got)
	}
}
