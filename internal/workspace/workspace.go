// Package workspace models the bounded square free-space region and its
// fixed-size square obstacles, and answers point and segment collision
// queries against it.
package workspace

import (
	"github.com/pkg/errors"

	"rrt-planner/internal/geometry"
)

// DefaultSegmentSamples is the number of intervals IsSegmentFree splits a
// segment into. Obstacles thinner than one interval can be missed.
const DefaultSegmentSamples = 20

// Rand is the random source consumed by the workspace and the search engine.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithSegmentSamples overrides the segment collision-check density.
func WithSegmentSamples(n int) Option {
	return func(w *Workspace) {
		w.segmentSamples = n
	}
}

// Workspace is the square [0, size) x [0, size) with a set of square
// obstacles. It is immutable once built.
type Workspace struct {
	size           int
	obstacleSize   int
	segmentSamples int
	obstacles      []geometry.Rect
	index          *Index
}

// New builds a workspace from obstacle anchors. Anchors must keep every
// obstacle inside the space and obstacles must not overlap.
func New(size, obstacleSize int, anchors []geometry.Point, opts ...Option) (*Workspace, error) {
	if !validDimensions(size, obstacleSize) {
		return nil, errors.Wrapf(ErrInvalidDimensions, "space %d, obstacle %d", size, obstacleSize)
	}

	w := &Workspace{
		size:           size,
		obstacleSize:   obstacleSize,
		segmentSamples: DefaultSegmentSamples,
		obstacles:      make([]geometry.Rect, 0, len(anchors)),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.segmentSamples < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "segment samples %d", w.segmentSamples)
	}

	idx, err := NewIndex(nil)
	if err != nil {
		return nil, err
	}
	limit := size - obstacleSize
	for _, a := range anchors {
		if a.X < 0 || a.Y < 0 || a.X > limit || a.Y > limit {
			return nil, errors.Wrapf(ErrObstacleOutside, "anchor %s", a)
		}
		r := geometry.Square(a, obstacleSize)
		if hits := idx.Overlapping(r); len(hits) > 0 {
			return nil, errors.Wrapf(ErrObstacleOverlap, "anchor %s overlaps %s", a, hits[0].Min)
		}
		if err := idx.Insert(r); err != nil {
			return nil, errors.Wrapf(err, "index anchor %s", a)
		}
		w.obstacles = append(w.obstacles, r)
	}
	w.index = idx

	if w.FreeArea() == 0 {
		return nil, ErrNoFreeSpace
	}
	return w, nil
}

// validDimensions requires an obstacle strictly smaller than the space, so
// anchors can be drawn from a non-empty range.
func validDimensions(size, obstacleSize int) bool {
	return size > 0 && obstacleSize > 0 && obstacleSize < size
}

// Size returns the side length of the space.
func (w *Workspace) Size() int { return w.size }

// ObstacleSize returns the side length of every obstacle.
func (w *Workspace) ObstacleSize() int { return w.obstacleSize }

// SegmentSamples returns the collision-check density.
func (w *Workspace) SegmentSamples() int { return w.segmentSamples }

// Obstacles returns a copy of the obstacle squares in insertion order.
func (w *Workspace) Obstacles() []geometry.Rect {
	out := make([]geometry.Rect, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// FreeArea is the number of integer cells not covered by an obstacle.
func (w *Workspace) FreeArea() int {
	covered := len(w.obstacles) * w.obstacleSize * w.obstacleSize
	return w.size*w.size - covered
}

// InBounds reports whether p lies in [0, size) x [0, size).
func (w *Workspace) InBounds(p geometry.Point) bool {
	return p.X >= 0 && p.X < w.size && p.Y >= 0 && p.Y < w.size
}

// IsFree reports whether p is inside the space and outside every obstacle.
func (w *Workspace) IsFree(p geometry.Point) bool {
	if !w.InBounds(p) {
		return false
	}
	return len(w.index.Containing(p)) == 0
}

// IsSegmentFree samples segmentSamples+1 equally spaced points on a->b,
// both endpoints included, and requires every one of them to be free.
func (w *Workspace) IsSegmentFree(a, b geometry.Point) bool {
	steps := w.segmentSamples
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if !w.IsFree(geometry.Interpolate(a, b, t)) {
			return false
		}
	}
	return true
}

// RandomFreePoint draws x then y uniformly from [0, size) until the point is
// free. New guarantees free space exists, so the loop terminates.
func (w *Workspace) RandomFreePoint(rng Rand) geometry.Point {
	for {
		p := geometry.Point{X: rng.IntN(w.size), Y: rng.IntN(w.size)}
		if w.IsFree(p) {
			return p
		}
	}
}

// CheckFree returns nil when p may serve as a start or goal.
func (w *Workspace) CheckFree(p geometry.Point) error {
	if !w.InBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "point %s in space of size %d", p, w.size)
	}
	if hits := w.index.Containing(p); len(hits) > 0 {
		return errors.Wrapf(ErrPointNotFree, "point %s inside obstacle at %s", p, hits[0].Min)
	}
	return nil
}
