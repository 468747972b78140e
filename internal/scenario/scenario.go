// Package scenario reads TOML files that pin down a workspace, a start and
// goal pair, and the search parameters for a reproducible run.
//
// Example:
//
//	space_size = 300
//	obstacle_size = 40
//	step_size = 10
//	seed = 7
//	start = { x = 0, y = 0 }
//	goal = { x = 299, y = 299 }
//
//	[[obstacles]]
//	x = 60
//	y = 40
package scenario

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"rrt-planner/internal/config"
	"rrt-planner/internal/geometry"
	"rrt-planner/internal/session"
	"rrt-planner/internal/workspace"
)

// Scenario is a single reproducible planning problem. Zero-valued numeric
// fields fall back to the session configuration.
type Scenario struct {
	Name             string           `toml:"name"`
	SpaceSize        int              `toml:"space_size"`
	ObstacleSize     int              `toml:"obstacle_size"`
	StepSize         int              `toml:"step_size"`
	MinExpansion     *int             `toml:"min_expansion"`
	CollisionSamples int              `toml:"collision_samples"`
	MaxIterations    int              `toml:"max_iterations"`
	Seed             *uint64          `toml:"seed"`
	Start            *geometry.Point  `toml:"start"`
	Goal             *geometry.Point  `toml:"goal"`
	Obstacles        []geometry.Point `toml:"obstacles"`
	ObstaclesFile    string           `toml:"obstacles_file"`
}

// Load reads and parses a scenario file. A relative obstacles_file is
// resolved against the scenario's directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: read %s", path)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: %s", path)
	}
	if sc.ObstaclesFile != "" {
		file := resolve(path, sc.ObstaclesFile)
		anchors, err := workspace.LoadObstaclesFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "scenario: obstacles_file")
		}
		sc.Obstacles = append(sc.Obstacles, anchors...)
	}
	return sc, nil
}

// Parse decodes scenario TOML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	return &sc, nil
}

// Apply overlays the scenario's explicit values onto cfg.
func (sc *Scenario) Apply(cfg config.Config) config.Config {
	if sc.SpaceSize > 0 {
		cfg.SpaceSize = sc.SpaceSize
	}
	if sc.ObstacleSize > 0 {
		cfg.ObstacleSize = sc.ObstacleSize
	}
	if sc.StepSize > 0 {
		cfg.StepSize = sc.StepSize
	}
	if sc.MinExpansion != nil {
		cfg.MinExpansion = *sc.MinExpansion
	}
	if sc.CollisionSamples > 0 {
		cfg.CollisionSamples = sc.CollisionSamples
	}
	if sc.MaxIterations > 0 {
		cfg.MaxIterations = sc.MaxIterations
	}
	if sc.Seed != nil {
		cfg.Seed = *sc.Seed
	}
	cfg.ObstacleCounts = []int{len(sc.Obstacles)}
	return cfg
}

// Environment describes the scenario as a session environment. The obstacle set
// is always fixed, even when empty.
func (sc *Scenario) Environment() session.Environment {
	obstacles := sc.Obstacles
	if obstacles == nil {
		obstacles = []geometry.Point{}
	}
	return session.Environment{
		Count:     len(obstacles),
		Obstacles: obstacles,
		Start:     sc.Start,
		Goal:      sc.Goal,
	}
}

func resolve(scenarioPath, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(scenarioPath), ref)
}
