package rrt

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultStepSize is the fixed extension length.
	DefaultStepSize = 10
	// DefaultMinExpansion is the node count the tree must exceed before the
	// goal connection check runs.
	DefaultMinExpansion = 300
	// DefaultMaxIterations bounds a run so an unreachable goal fails instead
	// of looping forever.
	DefaultMaxIterations = 200000
)

// Options tunes a search run.
type Options struct {
	// StepSize is the exact length of every extension.
	StepSize int
	// MinExpansion forces broad exploration: goal connection is only tried
	// once the tree holds more than MinExpansion nodes.
	MinExpansion int
	// MaxIterations is the iteration budget. Zero means unbounded.
	MaxIterations int
	// Logger receives milestone events. Nil disables logging.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the stock step size and expansion threshold with a
// finite iteration budget.
func DefaultOptions() Options {
	return Options{
		StepSize:      DefaultStepSize,
		MinExpansion:  DefaultMinExpansion,
		MaxIterations: DefaultMaxIterations,
	}
}

func (o Options) validate() error {
	if o.StepSize <= 0 {
		return errors.Wrapf(ErrInvalidOptions, "step size %d", o.StepSize)
	}
	if o.MinExpansion < 0 {
		return errors.Wrapf(ErrInvalidOptions, "min expansion %d", o.MinExpansion)
	}
	if o.MaxIterations < 0 {
		return errors.Wrapf(ErrInvalidOptions, "max iterations %d", o.MaxIterations)
	}
	return nil
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger
}
