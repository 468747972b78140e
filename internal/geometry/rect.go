package geometry

// Rect is an axis-aligned square anchored at its minimum corner. It covers
// the half-open region [Min.X, Min.X+Size) x [Min.Y, Min.Y+Size).
type Rect struct {
	Min  Point `json:"min"`
	Size int   `json:"size"`
}

// Square builds a Rect of side size anchored at p.
func Square(p Point, size int) Rect {
	return Rect{Min: p, Size: size}
}

// Max returns the exclusive far corner.
func (r Rect) Max() Point {
	return Point{X: r.Min.X + r.Size, Y: r.Min.Y + r.Size}
}

// Contains reports whether p lies inside r. A point on the far edge is
// outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Min.X+r.Size &&
		p.Y >= r.Min.Y && p.Y < r.Min.Y+r.Size
}

// Overlaps reports whether r and other share any interior point. Squares that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	rMax, oMax := r.Max(), other.Max()
	return r.Min.X < oMax.X && other.Min.X < rMax.X &&
		r.Min.Y < oMax.Y && other.Min.Y < rMax.Y
}

// RectangleContains is the free-function form of Rect.Contains.
func RectangleContains(r Rect, p Point) bool {
	return r.Contains(p)
}
