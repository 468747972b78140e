package rrt

import (
	"time"

	"rrt-planner/internal/geometry"
	"rrt-planner/internal/tree"
)

// Result is a read-only snapshot of a run for rendering and reporting.
type Result struct {
	ID               string           `json:"id"`
	State            State            `json:"state"`
	Success          bool             `json:"success"`
	Message          string           `json:"message,omitempty"`
	Iterations       int              `json:"iterations"`
	SpaceSize        int              `json:"spaceSize"`
	ObstacleSize     int              `json:"obstacleSize"`
	CollisionSamples int              `json:"collisionSamples"`
	Start            geometry.Point   `json:"start"`
	Goal             geometry.Point   `json:"goal"`
	Obstacles        []geometry.Rect  `json:"obstacles"`
	Nodes            []geometry.Point `json:"nodes"`
	Edges            []tree.Edge      `json:"edges"`
	Path             []geometry.Point `json:"path"`
	PathLength       float64          `json:"pathLength"`
	Elapsed          time.Duration    `json:"elapsedNs"`
}

// Result snapshots the run. Slices are copies; the path is empty until the
// goal is connected.
func (s *Search) Result() *Result {
	path := make([]geometry.Point, len(s.path))
	copy(path, s.path)

	res := &Result{
		ID:               s.id,
		State:            s.state,
		Success:          s.state == StateGoalConnected,
		Iterations:       s.iterations,
		SpaceSize:        s.ws.Size(),
		ObstacleSize:     s.ws.ObstacleSize(),
		CollisionSamples: s.ws.SegmentSamples(),
		Start:            s.tree.Root(),
		Goal:             s.goal,
		Obstacles:        s.ws.Obstacles(),
		Nodes:            s.tree.Nodes(),
		Edges:            s.tree.Edges(),
		Path:             path,
		PathLength:       geometry.PathLength(path),
		Elapsed:          s.elapsed,
	}
	if s.err != nil {
		res.Message = s.err.Error()
	}
	return res
}
