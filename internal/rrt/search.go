// Package rrt grows a Rapidly-exploring Random Tree from a start point until
// the goal can be attached, then extracts the start to goal path.
//
// A Search is single-threaded and owns its tree. Draws from the injected
// random source happen in a fixed order (x then y of each sample, resampled
// until free), so the same seed replays the same tree and path.
package rrt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rrt-planner/internal/geometry"
	"rrt-planner/internal/tree"
	"rrt-planner/internal/workspace"
)

// Rand is the random source driving sampling.
type Rand = workspace.Rand

// Search is one run binding a workspace, a tree, and a start/goal pair.
type Search struct {
	id    string
	ws    *workspace.Workspace
	tree  *tree.Tree
	rng   Rand
	goal  geometry.Point
	opts  Options
	log   *zap.SugaredLogger

	state      State
	iterations int
	path       []geometry.Point
	err        error
	began      time.Time
	elapsed    time.Duration
	eligible   bool
}

// New validates start and goal against ws and returns a search whose tree
// holds only start.
func New(ws *workspace.Workspace, start, goal geometry.Point, rng Rand, opts Options) (*Search, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := ws.CheckFree(start); err != nil {
		return nil, errors.Wrap(err, "invalid start")
	}
	if err := ws.CheckFree(goal); err != nil {
		return nil, errors.Wrap(err, "invalid goal")
	}

	id := uuid.NewString()
	return &Search{
		id:    id,
		ws:    ws,
		tree:  tree.New(start),
		rng:   rng,
		goal:  goal,
		opts:  opts,
		log:   opts.logger().With("run", id),
		state: StateGrowing,
	}, nil
}

// ID identifies the run in logs and results.
func (s *Search) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Search) State() State { return s.state }

// Iterations returns the number of iterations executed.
func (s *Search) Iterations() int { return s.iterations }

// Start returns the tree root.
func (s *Search) Start() geometry.Point { return s.tree.Root() }

// Goal returns the point the search is trying to reach.
func (s *Search) Goal() geometry.Point { return s.goal }

// Tree exposes the tree store. It must not be mutated by callers.
func (s *Search) Tree() *tree.Tree { return s.tree }

// Err returns the failure reason once the run is in StateFailed.
func (s *Search) Err() error { return s.err }

// Step runs exactly one iteration: sample, find nearest, steer, extend, and
// try the goal connection once the tree is large enough.
func (s *Search) Step() Outcome {
	if s.state.Terminal() {
		return OutcomeIdle
	}
	if s.began.IsZero() {
		s.began = time.Now()
	}
	if s.opts.MaxIterations > 0 && s.iterations >= s.opts.MaxIterations {
		s.fail(errors.Wrapf(ErrNoPath, "%d iterations, %d nodes", s.iterations, s.tree.Len()))
		return OutcomeExhausted
	}
	s.iterations++

	outcome := OutcomeDiscarded
	randPoint := s.ws.RandomFreePoint(s.rng)
	nearest, _ := s.tree.Nearest(randPoint)
	newPoint := s.steer(nearest, randPoint)

	// A point already in the tree would get a second parent.
	if newPoint != nearest && !s.tree.Contains(newPoint) && s.ws.IsSegmentFree(nearest, newPoint) {
		s.tree.AddNode(newPoint)
		s.tree.AddEdge(nearest, newPoint)
		s.tree.SetParent(newPoint, nearest)
		outcome = OutcomeExtended
	}

	if s.tree.Len() > s.opts.MinExpansion {
		if !s.eligible {
			s.eligible = true
			s.log.Debugw("goal connection check enabled", "nodes", s.tree.Len(), "iteration", s.iterations)
		}
		if s.tryConnect() {
			return OutcomeConnected
		}
	}
	return outcome
}

// Run steps until the goal is connected, the budget is exhausted, or ctx is
// done. The returned result is always non-nil.
func (s *Search) Run(ctx context.Context) (*Result, error) {
	for !s.state.Terminal() {
		if err := ctx.Err(); err != nil {
			s.fail(errors.Wrapf(err, "rrt: search cancelled after %d iterations", s.iterations))
			break
		}
		s.Step()
	}
	return s.Result(), s.err
}

// steer moves STEP_SIZE from `from` toward `to`. A blocked target point
// yields `from` unchanged.
func (s *Search) steer(from, to geometry.Point) geometry.Point {
	p := geometry.Toward(from, to, float64(s.opts.StepSize))
	if !s.ws.IsFree(p) {
		return from
	}
	return p
}

func (s *Search) tryConnect() bool {
	closest, dist := s.tree.Nearest(s.goal)
	if dist >= float64(s.opts.StepSize) || !s.ws.IsSegmentFree(closest, s.goal) {
		return false
	}

	// The goal may already be a node when an extension landed on it.
	if closest != s.goal {
		s.tree.SetParent(s.goal, closest)
		s.tree.AddEdge(closest, s.goal)
	}

	path, err := s.tree.ReconstructPath(s.goal)
	if err != nil {
		s.fail(errors.Wrap(err, "rrt: extract path"))
		return false
	}

	s.path = path
	s.state = StateGoalConnected
	s.finish()
	s.log.Debugw("goal connected",
		"iterations", s.iterations,
		"nodes", s.tree.Len(),
		"waypoints", len(path),
		"length", geometry.PathLength(path),
	)
	return true
}

func (s *Search) fail(err error) {
	s.err = err
	s.state = StateFailed
	s.finish()
	s.log.Debugw("search failed", "iterations", s.iterations, "nodes", s.tree.Len(), "error", err)
}

func (s *Search) finish() {
	if !s.began.IsZero() {
		s.elapsed = time.Since(s.began)
	}
}
