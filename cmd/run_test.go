package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rrt-planner/internal/config"
	"rrt-planner/internal/geometry"
	"rrt-planner/internal/rrt"
	"rrt-planner/internal/session"
	"rrt-planner/internal/ui"
	"rrt-planner/internal/workspace"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	return cfg
}

func TestApplyFlagOverrides(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Uint64("seed", 0, "")
	cmd.Flags().IntSlice("obstacles", nil, "")
	cmd.Flags().Duration("pause", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--seed", "0", "--obstacles", "1,2", "--pause", "0s"}))

	cfg := defaultConfig(t)
	applyFlagOverrides(cmd, &cfg)

	assert.Equal(t, uint64(0), cfg.Seed, "explicit zero seed is honored")
	assert.Equal(t, []int{1, 2}, cfg.ObstacleCounts)
	assert.Equal(t, time.Duration(0), cfg.Pause)
}

func TestApplyFlagOverrides_Unchanged(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Uint64("seed", 0, "")
	cmd.Flags().IntSlice("obstacles", nil, "")
	cmd.Flags().Duration("pause", 0, "")

	cfg := defaultConfig(t)
	applyFlagOverrides(cmd, &cfg)
	assert.Equal(t, defaultConfig(t), cfg)
}

func TestApplyFlagOverrides_ObstacleCountBound(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().IntSlice("obstacles", nil, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--obstacles", "5,1125899906842624"}))

	cfg := defaultConfig(t)
	applyFlagOverrides(cmd, &cfg)

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, workspace.ErrOverfull))
}

func TestScenarioEnvironments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed = 11
start = { x = 5, y = 5 }

[[obstacles]]
x = 100
y = 100
`), 0o644))

	cfg, envs, err := scenarioEnvironments(path, defaultConfig(t))
	require.NoError(t, err)
	assert.Equal(t, uint64(11), cfg.Seed)
	require.Len(t, envs, 1)
	assert.Equal(t, []geometry.Point{geometry.Pt(100, 100)}, envs[0].Obstacles)
	assert.Nil(t, envs[0].Goal)

	_, _, err = scenarioEnvironments(filepath.Join(t.TempDir(), "missing.toml"), defaultConfig(t))
	assert.Error(t, err)
}

func TestReportTo(t *testing.T) {
	var buf bytes.Buffer
	printer := &ui.Printer{Out: &buf}
	dir := t.TempDir()
	connected := 0

	report := reportTo(printer, dir, &connected)
	res := &rrt.Result{
		State:     rrt.StateGoalConnected,
		Success:   true,
		SpaceSize: 50,
		Start:     geometry.Pt(1, 1),
		Goal:      geometry.Pt(40, 40),
		Path:      []geometry.Point{geometry.Pt(1, 1), geometry.Pt(40, 40)},
	}
	require.NoError(t, report(session.Report{Env: 0, Result: res}))
	require.NoError(t, report(session.Report{Env: 1, Err: assert.AnError}))

	assert.Equal(t, 1, connected)
	assert.FileExists(t, filepath.Join(dir, "env-0.png"))
	assert.FileExists(t, filepath.Join(dir, "env-0.geojson"))
	assert.FileExists(t, filepath.Join(dir, "env-0.json"))
	assert.NoFileExists(t, filepath.Join(dir, "env-1.png"))
	assert.Contains(t, buf.String(), "wrote "+filepath.Join(dir, "env-0.png"))
}
