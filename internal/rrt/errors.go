package rrt

import "github.com/pkg/errors"

var (
	// ErrNoPath indicates the iteration budget ran out before the goal was connected.
	ErrNoPath = errors.New("rrt: no path found within iteration budget")
	// ErrInvalidOptions indicates a non-positive step size or a negative threshold.
	ErrInvalidOptions = errors.New("rrt: invalid options")
)
