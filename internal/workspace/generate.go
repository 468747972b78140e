package workspace

import (
	"context"

	"github.com/pkg/errors"

	"rrt-planner/internal/geometry"
)

// attemptsPerObstacle bounds the rejection sampling in Generate.
const attemptsPerObstacle = 1000

// MaxObstacles is the largest obstacle count whose total area stays below
// the area of the space. Larger counts can never leave free space.
func MaxObstacles(size, obstacleSize int) int {
	if !validDimensions(size, obstacleSize) {
		return 0
	}
	return (size*size - 1) / (obstacleSize * obstacleSize)
}

// CheckCount rejects obstacle counts that are negative or above MaxObstacles.
func CheckCount(size, obstacleSize, count int) error {
	if count < 0 {
		return errors.Wrapf(ErrInvalidDimensions, "obstacle count %d", count)
	}
	if limit := MaxObstacles(size, obstacleSize); count > limit {
		return errors.Wrapf(ErrOverfull, "%d obstacles of size %d exceed the %d that fit in space %d", count, obstacleSize, limit, size)
	}
	return nil
}

// Generate places count non-overlapping obstacles at random. Anchors are
// drawn from [0, size-obstacleSize) so no obstacle crosses the boundary.
// ctx is checked before every placement attempt.
func Generate(ctx context.Context, rng Rand, size, obstacleSize, count int, opts ...Option) (*Workspace, error) {
	if !validDimensions(size, obstacleSize) {
		return nil, errors.Wrapf(ErrInvalidDimensions, "space %d, obstacle %d", size, obstacleSize)
	}
	if err := CheckCount(size, obstacleSize, count); err != nil {
		return nil, err
	}

	idx, err := NewIndex(nil)
	if err != nil {
		return nil, err
	}

	anchors := make([]geometry.Point, 0, count)
	maxAttempts := count * attemptsPerObstacle
	for attempts := 0; len(anchors) < count; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "placed %d of %d after %d attempts", len(anchors), count, attempts)
		}
		if attempts >= maxAttempts {
			return nil, errors.Wrapf(ErrOverfull, "placed %d of %d after %d attempts", len(anchors), count, attempts)
		}
		p := geometry.Point{X: rng.IntN(size - obstacleSize), Y: rng.IntN(size - obstacleSize)}
		r := geometry.Square(p, obstacleSize)
		if len(idx.Overlapping(r)) > 0 {
			continue
		}
		if err := idx.Insert(r); err != nil {
			return nil, err
		}
		anchors = append(anchors, p)
	}

	return New(size, obstacleSize, anchors, opts...)
}
