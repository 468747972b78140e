package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"rrt-planner/internal/geometry"
	"rrt-planner/internal/rrt"
	"rrt-planner/internal/session"
	"rrt-planner/internal/workspace"
)

func TestEnvironmentCard_Connected(t *testing.T) {
	card := EnvironmentCard(session.Report{
		Env: 0,
		Result: &rrt.Result{
			ID:               "run-1",
			State:            rrt.StateGoalConnected,
			Success:          true,
			Iterations:       812,
			CollisionSamples: 17,
			Start:            geometry.Pt(3, 4),
			Goal:             geometry.Pt(250, 260),
			Nodes:            make([]geometry.Point, 301),
			Path:             make([]geometry.Point, 40),
			PathLength:       391.4,
			Elapsed:          1500 * time.Microsecond,
		},
	})

	checks := []struct {
		name   string
		substr string
	}{
		{"title", "Environment 1"},
		{"state", "goal_connected"},
		{"icon", iconDone},
		{"start", "(3, 4)"},
		{"goal", "(250, 260)"},
		{"iterations", "812"},
		{"nodes", "301"},
		{"samples label", "samples"},
		{"samples", "17"},
		{"waypoints", "40"},
		{"length", "391.4"},
		{"elapsed", "1.5ms"},
	}
	for _, c := range checks {
		assert.Contains(t, card, c.substr, c.name)
	}
	assert.NotContains(t, card, "error")
}

func TestEnvironmentCard_Failed(t *testing.T) {
	card := EnvironmentCard(session.Report{
		Env: 2,
		Result: &rrt.Result{
			State:   rrt.StateFailed,
			Message: rrt.ErrNoPath.Error(),
		},
		Err: rrt.ErrNoPath,
	})

	assert.Contains(t, card, "Environment 3")
	assert.Contains(t, card, iconFailed+" failed")
	assert.Contains(t, card, "iteration budget")
	assert.NotContains(t, card, "waypoints")
}

func TestEnvironmentCard_NotBuilt(t *testing.T) {
	card := EnvironmentCard(session.Report{
		Env: 1,
		Err: errors.Wrap(workspace.ErrOverfull, "environment 1"),
	})

	assert.Contains(t, card, "not built")
	assert.Contains(t, card, "environment 1")
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Out: &buf}

	p.Banner(3, 42)
	p.Saved([]string{"out/env-0.png"})
	p.Totals(2, 3)
	p.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "3 environment(s)")
	assert.Contains(t, out, "seed 42")
	assert.Contains(t, out, "wrote out/env-0.png")
	assert.Contains(t, out, "2/3 environments connected")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "boom"))
}
