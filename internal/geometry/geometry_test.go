package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Pt(3, 4), Pt(3, 4), 0},
		{"3-4-5", Pt(0, 0), Pt(3, 4), 5},
		{"negative", Pt(-1, -1), Pt(2, 3), 5},
		{"horizontal", Pt(10, 7), Pt(0, 7), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, tt.b.Distance(tt.a), 1e-9, "distance is symmetric")
		})
	}
}

func TestRectContainsHalfOpen(t *testing.T) {
	r := Square(Pt(100, 50), 40)

	assert.True(t, r.Contains(Pt(100, 50)), "min corner is inside")
	assert.True(t, r.Contains(Pt(139, 89)))
	assert.False(t, r.Contains(Pt(140, 50)), "far x edge is outside")
	assert.False(t, r.Contains(Pt(100, 90)), "far y edge is outside")
	assert.False(t, r.Contains(Pt(99, 60)))
	assert.True(t, RectangleContains(r, Pt(120, 70)))
}

func TestRectOverlaps(t *testing.T) {
	a := Square(Pt(0, 0), 40)

	assert.True(t, a.Overlaps(Square(Pt(39, 39), 40)))
	assert.True(t, a.Overlaps(Square(Pt(10, 10), 5)), "contained square overlaps")
	assert.False(t, a.Overlaps(Square(Pt(40, 0), 40)), "edge contact is not overlap")
	assert.False(t, a.Overlaps(Square(Pt(0, 40), 40)))
	assert.False(t, a.Overlaps(Square(Pt(100, 100), 40)))
}

func TestTowardStepsExactlyAlongBearing(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		want     Point
	}{
		{"east", Pt(0, 0), Pt(100, 0), Pt(10, 0)},
		{"north", Pt(5, 5), Pt(5, 200), Pt(5, 15)},
		{"west", Pt(50, 50), Pt(0, 50), Pt(40, 50)},
		// 10*cos(pi/4) = 7.07 truncates to 7.
		{"diagonal truncates", Pt(0, 0), Pt(100, 100), Pt(7, 7)},
		// -7.07 truncates toward zero to -7, not -8.
		{"negative truncates toward zero", Pt(0, 0), Pt(-100, -100), Pt(-7, -7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toward(tt.from, tt.to, 10)
			require.Equal(t, tt.want, got)
			// Truncation can shorten each axis by less than one unit.
			assert.InDelta(t, 10, tt.from.Distance(got), math.Sqrt2)
		})
	}
}

func TestInterpolate(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 5)

	assert.Equal(t, a, Interpolate(a, b, 0))
	assert.Equal(t, b, Interpolate(a, b, 1))
	assert.Equal(t, Pt(5, 2), Interpolate(a, b, 0.5))
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, PathLength(nil))
	assert.Zero(t, PathLength([]Point{Pt(1, 1)}))
	assert.InDelta(t, 15, PathLength([]Point{Pt(0, 0), Pt(3, 4), Pt(3, 14)}), 1e-9)
}
