// Package session prepares planning environments and drives searches over
// them. Each environment owns one PCG seeded from (seed, environment index)
// and consumes it in a fixed order: obstacle generation, start, goal, then
// the search itself.
package session

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rrt-planner/internal/config"
	"rrt-planner/internal/geometry"
	"rrt-planner/internal/rrt"
	"rrt-planner/internal/workspace"
)

// Rand returns the random source for environment env.
func Rand(seed uint64, env int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(env)))
}

// Environment describes one planning problem. Nil Start or Goal is drawn at random from
// the free space; nil Obstacles means Count obstacles are generated.
type Environment struct {
	Index     int
	Count     int
	Obstacles []geometry.Point
	Start     *geometry.Point
	Goal      *geometry.Point
}

// Prepare builds the workspace described by e and returns a search ready
// to run on it. Obstacle generation stops when ctx is done.
func Prepare(ctx context.Context, cfg config.Config, e Environment, log *zap.SugaredLogger) (*rrt.Search, error) {
	rng := Rand(cfg.Seed, e.Index)

	var (
		ws  *workspace.Workspace
		err error
	)
	if e.Obstacles != nil {
		ws, err = workspace.New(cfg.SpaceSize, cfg.ObstacleSize, e.Obstacles, cfg.WorkspaceOptions()...)
	} else {
		ws, err = workspace.Generate(ctx, rng, cfg.SpaceSize, cfg.ObstacleSize, e.Count, cfg.WorkspaceOptions()...)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "environment %d", e.Index)
	}

	start := pick(ws, rng, e.Start)
	goal := pick(ws, rng, e.Goal)

	s, err := rrt.New(ws, start, goal, rng, cfg.SearchOptions(log))
	if err != nil {
		return nil, errors.Wrapf(err, "environment %d", e.Index)
	}
	return s, nil
}

func pick(ws *workspace.Workspace, rng *rand.Rand, fixed *geometry.Point) geometry.Point {
	if fixed != nil {
		return *fixed
	}
	return ws.RandomFreePoint(rng)
}

// Report is the outcome of one environment. Err is set when the search
// failed or the environment could not be built; Result may still be present.
type Report struct {
	Env    int
	Result *rrt.Result
	Err    error
}

// Runner executes a sequence of environments.
type Runner struct {
	Config config.Config
	Log    *zap.SugaredLogger
	// OnReport is called after every environment. Returning an error stops
	// the session.
	OnReport func(Report) error
}

// Environments returns one generated environment per configured obstacle count.
func Environments(cfg config.Config) []Environment {
	envs := make([]Environment, len(cfg.ObstacleCounts))
	for i, n := range cfg.ObstacleCounts {
		envs[i] = Environment{Index: i, Count: n}
	}
	return envs
}

// Run prepares and searches every environment in order, pausing cfg.Pause between
// environments. A failed search does not stop the session; cancellation
// of ctx does.
func (r *Runner) Run(ctx context.Context, envs []Environment) error {
	log := r.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	for i, e := range envs {
		if i > 0 && r.Config.Pause > 0 {
			if err := sleep(ctx, r.Config.Pause); err != nil {
				return err
			}
		}

		report := r.one(ctx, e, log)
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "session")
		}
		if r.OnReport != nil {
			if err := r.OnReport(report); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) one(ctx context.Context, e Environment, log *zap.SugaredLogger) Report {
	envLog := log.With("env", e.Index)
	s, err := Prepare(ctx, r.Config, e, envLog)
	if err != nil {
		envLog.Warnw("environment skipped", "error", err)
		return Report{Env: e.Index, Err: err}
	}

	envLog.Infow("search started", "run", s.ID(), "start", s.Start(), "goal", s.Goal())
	res, err := s.Run(ctx)
	if err != nil {
		envLog.Infow("search failed", "run", res.ID, "iterations", res.Iterations, "error", err)
	} else {
		envLog.Infow("path found", "run", res.ID, "iterations", res.Iterations,
			"nodes", len(res.Nodes), "waypoints", len(res.Path), "length", res.PathLength)
	}
	return Report{Env: e.Index, Result: res, Err: err}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "session")
	case <-t.C:
		return nil
	}
}
