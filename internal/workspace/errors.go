package workspace

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds indicates a point outside [0, size) x [0, size).
	ErrOutOfBounds = errors.New("workspace: point out of bounds")
	// ErrPointNotFree indicates a point inside an obstacle.
	ErrPointNotFree = errors.New("workspace: point is inside an obstacle")
	// ErrObstacleOverlap indicates two obstacles share interior area.
	ErrObstacleOverlap = errors.New("workspace: obstacles overlap")
	// ErrObstacleOutside indicates an obstacle that extends past the space boundary.
	ErrObstacleOutside = errors.New("workspace: obstacle extends past the space boundary")
	// ErrNoFreeSpace indicates obstacles cover the whole space.
	ErrNoFreeSpace = errors.New("workspace: no free space left")
	// ErrOverfull indicates the generator could not place the requested obstacle count.
	ErrOverfull = errors.New("workspace: cannot place requested obstacles")
	// ErrInvalidDimensions indicates a non-positive size, an obstacle not smaller
	// than the space, or a negative obstacle count.
	ErrInvalidDimensions = errors.New("workspace: invalid dimensions")
)
