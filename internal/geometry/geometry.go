// Package geometry holds the integer 2D primitives shared by the workspace,
// the tree store and the search engine.
package geometry

import (
	"fmt"
	"math"
)

// Point is an integer coordinate pair. It is comparable and used as a map key.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance is the free-function form of Point.Distance.
func Distance(a, b Point) float64 {
	return a.Distance(b)
}

// Toward moves from `from` toward `to` by exactly step along the bearing
// atan2(dy, dx). Coordinates are truncated toward zero, never rounded.
func Toward(from, to Point, step float64) Point {
	angle := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
	return Point{
		X: int(float64(from.X) + step*math.Cos(angle)),
		Y: int(float64(from.Y) + step*math.Sin(angle)),
	}
}

// Interpolate returns the point at parameter t in [0, 1] on segment a->b,
// truncated toward zero.
func Interpolate(a, b Point, t float64) Point {
	return Point{
		X: int(float64(a.X)*(1-t) + float64(b.X)*t),
		Y: int(float64(a.Y)*(1-t) + float64(b.Y)*t),
	}
}

// PathLength sums the segment lengths along a polyline.
func PathLength(path []Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += path[i].Distance(path[i+1])
	}
	return total
}
