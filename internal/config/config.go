package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rrt-planner/internal/rrt"
	"rrt-planner/internal/workspace"
)

// Config holds all runtime configuration for a planning session.
// Values are populated from .rrt.yaml, RRT_* env vars, and CLI flags.
type Config struct {
	SpaceSize        int           `mapstructure:"space_size"`
	ObstacleSize     int           `mapstructure:"obstacle_size"`
	ObstacleCounts   []int         `mapstructure:"obstacle_counts"`
	StepSize         int           `mapstructure:"step_size"`
	MinExpansion     int           `mapstructure:"min_expansion"`
	CollisionSamples int           `mapstructure:"collision_samples"`
	Seed             uint64        `mapstructure:"seed"`
	MaxIterations    int           `mapstructure:"max_iterations"`
	Pause            time.Duration `mapstructure:"pause"`
	OutputDir        string        `mapstructure:"output_dir"`
	Listen           string        `mapstructure:"listen"`
	Verbose          bool          `mapstructure:"verbose"`
}

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("space_size", 300)
	v.SetDefault("obstacle_size", 40)
	v.SetDefault("obstacle_counts", []int{5, 5, 10})
	v.SetDefault("step_size", rrt.DefaultStepSize)
	v.SetDefault("min_expansion", rrt.DefaultMinExpansion)
	v.SetDefault("collision_samples", workspace.DefaultSegmentSamples)
	v.SetDefault("seed", 1)
	v.SetDefault("max_iterations", rrt.DefaultMaxIterations)
	v.SetDefault("pause", 2*time.Second)
	v.SetDefault("output_dir", "")
	v.SetDefault("listen", ":8080")
	v.SetDefault("verbose", false)
}

// Load reads configuration from the global viper instance, applying built-in
// defaults for any values not set by config file, environment, or flags.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load against an explicit viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if c.SpaceSize <= 0 {
		err = multierr.Append(err, errors.Errorf("space_size must be positive, got %d", c.SpaceSize))
	}
	if c.ObstacleSize <= 0 || c.ObstacleSize >= c.SpaceSize {
		err = multierr.Append(err, errors.Errorf("obstacle_size must be in (0, space_size), got %d", c.ObstacleSize))
	}
	if len(c.ObstacleCounts) == 0 {
		err = multierr.Append(err, errors.New("obstacle_counts needs at least one environment"))
	}
	dims := c.SpaceSize > 0 && c.ObstacleSize > 0 && c.ObstacleSize < c.SpaceSize
	for i, n := range c.ObstacleCounts {
		switch {
		case n < 0:
			err = multierr.Append(err, errors.Errorf("obstacle_counts[%d] must not be negative, got %d", i, n))
		case dims && n > workspace.MaxObstacles(c.SpaceSize, c.ObstacleSize):
			err = multierr.Append(err, errors.Wrapf(workspace.ErrOverfull, "obstacle_counts[%d] must be at most %d, got %d",
				i, workspace.MaxObstacles(c.SpaceSize, c.ObstacleSize), n))
		}
	}
	if c.StepSize <= 0 {
		err = multierr.Append(err, errors.Errorf("step_size must be positive, got %d", c.StepSize))
	}
	if c.MinExpansion < 0 {
		err = multierr.Append(err, errors.Errorf("min_expansion must not be negative, got %d", c.MinExpansion))
	}
	if c.CollisionSamples < 1 {
		err = multierr.Append(err, errors.Errorf("collision_samples must be at least 1, got %d", c.CollisionSamples))
	}
	if c.MaxIterations < 1 {
		err = multierr.Append(err, errors.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations))
	}
	if c.Pause < 0 {
		err = multierr.Append(err, errors.Errorf("pause must not be negative, got %s", c.Pause))
	}
	return err
}

// SearchOptions maps the configuration onto engine options.
func (c Config) SearchOptions(log *zap.SugaredLogger) rrt.Options {
	return rrt.Options{
		StepSize:      c.StepSize,
		MinExpansion:  c.MinExpansion,
		MaxIterations: c.MaxIterations,
		Logger:        log,
	}
}

// WorkspaceOptions maps the configuration onto workspace options.
func (c Config) WorkspaceOptions() []workspace.Option {
	return []workspace.Option{workspace.WithSegmentSamples(c.CollisionSamples)}
}
