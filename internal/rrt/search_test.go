package rrt

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rrt-planner/internal/geometry"
	"rrt-planner/internal/workspace"
)

// scriptedRand replays fixed draws, then falls back to a seeded generator.
type scriptedRand struct {
	values   []int
	next     int
	fallback *rand.Rand
}

func newScripted(values ...int) *scriptedRand {
	return &scriptedRand{values: values, fallback: rand.New(rand.NewPCG(1, 1))}
}

func (r *scriptedRand) IntN(n int) int {
	if r.next < len(r.values) {
		v := r.values[r.next]
		r.next++
		return v % n
	}
	return r.fallback.IntN(n)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func fiveObstacles(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(300, 40, []geometry.Point{
		geometry.Pt(60, 40),
		geometry.Pt(150, 20),
		geometry.Pt(40, 180),
		geometry.Pt(130, 130),
		geometry.Pt(220, 200),
	})
	require.NoError(t, err)
	return ws
}

func TestSearch_EndToEnd(t *testing.T) {
	ws := fiveObstacles(t)
	start, goal := geometry.Pt(0, 0), geometry.Pt(299, 299)
	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t).Sugar()

	s, err := New(ws, start, goal, seeded(2024), opts)
	require.NoError(t, err)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateGoalConnected, res.State)
	require.True(t, res.Success)
	require.NotEmpty(t, res.Path)
	require.Equal(t, start, res.Path[0])
	require.Equal(t, goal, res.Path[len(res.Path)-1])
	require.Greater(t, len(res.Nodes), opts.MinExpansion, "goal check waits for exploration")

	for i := 0; i+1 < len(res.Path); i++ {
		a, b := res.Path[i], res.Path[i+1]
		assert.True(t, ws.IsSegmentFree(a, b), "segment %s -> %s", a, b)
		assert.True(t, s.Tree().HasEdge(a, b), "edge %s -> %s", a, b)
		assert.Less(t, a.Distance(b), float64(opts.StepSize)+math.Sqrt2)
	}
	assert.InDelta(t, geometry.PathLength(res.Path), res.PathLength, 1e-9)
	assert.Equal(t, start, res.Start)
	assert.Equal(t, start, s.Start())
	assert.Equal(t, workspace.DefaultSegmentSamples, res.CollisionSamples)
}

func TestSearch_ResultReportsCollisionSamples(t *testing.T) {
	ws, err := workspace.New(300, 40, nil, workspace.WithSegmentSamples(7))
	require.NoError(t, err)

	s, err := New(ws, geometry.Pt(1, 2), geometry.Pt(200, 200), seeded(1), DefaultOptions())
	require.NoError(t, err)
	res := s.Result()
	assert.Equal(t, 7, res.CollisionSamples)
	assert.Equal(t, geometry.Pt(1, 2), res.Start)
}

func TestSearch_SameSeedReplaysIdentically(t *testing.T) {
	ws := fiveObstacles(t)
	run := func() *Result {
		s, err := New(ws, geometry.Pt(0, 0), geometry.Pt(299, 299), seeded(99), DefaultOptions())
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Edges, b.Edges)
	assert.Equal(t, a.Path, b.Path)
	assert.Equal(t, a.Iterations, b.Iterations)
	assert.NotEqual(t, a.ID, b.ID, "each run gets its own id")
}

func TestSearch_TreeInvariants(t *testing.T) {
	ws := fiveObstacles(t)
	s, err := New(ws, geometry.Pt(10, 10), geometry.Pt(280, 150), seeded(5), DefaultOptions())
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	tr := s.Tree()
	nodes := tr.Nodes()
	seen := make(map[geometry.Point]bool, len(nodes))
	for i, n := range nodes {
		require.False(t, seen[n], "duplicate node %s", n)
		seen[n] = true
		require.True(t, ws.IsFree(n))

		parent, ok := tr.Parent(n)
		if i == 0 {
			require.False(t, ok, "root has no parent")
			continue
		}
		require.True(t, ok, "node %s has a parent", n)
		require.True(t, seen[parent], "parent %s inserted before child %s", parent, n)
	}
	for _, e := range tr.Edges() {
		require.True(t, tr.Contains(e.From), "edge source %s is a node", e.From)
	}
}

func TestSearch_ConnectsImmediatelyWithoutMinExpansion(t *testing.T) {
	ws, err := workspace.New(300, 40, nil)
	require.NoError(t, err)
	start, goal := geometry.Pt(100, 100), geometry.Pt(105, 100)

	opts := DefaultOptions()
	opts.MinExpansion = 0
	// The first sample lies west, so the extension moves away from the goal.
	s, err := New(ws, start, goal, newScripted(0, 100), opts)
	require.NoError(t, err)

	require.Equal(t, OutcomeConnected, s.Step())
	res := s.Result()
	assert.Equal(t, StateGoalConnected, res.State)
	assert.Equal(t, []geometry.Point{start, goal}, res.Path)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []geometry.Point{start, geometry.Pt(90, 100)}, res.Nodes)
	assert.Equal(t, OutcomeIdle, s.Step(), "terminal runs do nothing")
}

func TestSearch_DiscardsExtensionOntoExistingNode(t *testing.T) {
	ws, err := workspace.New(300, 40, nil)
	require.NoError(t, err)
	start := geometry.Pt(50, 50)

	// Sample (0, 50) adds (40, 50). Sample (40, 50) coincides with that node,
	// the bearing is 0 and the step lands back on the root.
	s, err := New(ws, start, geometry.Pt(250, 250), newScripted(0, 50, 40, 50), DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, OutcomeExtended, s.Step())
	require.Equal(t, OutcomeDiscarded, s.Step())
	assert.Equal(t, 2, s.Tree().Len())
	_, ok := s.Tree().Parent(start)
	assert.False(t, ok, "root never gains a parent")
}

func TestSearch_BlockedSteerIsDiscarded(t *testing.T) {
	ws, err := workspace.New(300, 40, []geometry.Point{geometry.Pt(105, 80)})
	require.NoError(t, err)

	s, err := New(ws, geometry.Pt(100, 100), geometry.Pt(250, 250), newScripted(200, 100), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, geometry.Pt(100, 100), s.steer(geometry.Pt(100, 100), geometry.Pt(200, 100)))
	assert.Equal(t, OutcomeDiscarded, s.Step())
	assert.Equal(t, 1, s.Tree().Len())
}

func TestSearch_SteerUnobstructed(t *testing.T) {
	ws, err := workspace.New(300, 40, nil)
	require.NoError(t, err)
	s, err := New(ws, geometry.Pt(150, 150), geometry.Pt(0, 0), seeded(1), DefaultOptions())
	require.NoError(t, err)

	rng := seeded(3)
	for i := 0; i < 200; i++ {
		from := geometry.Pt(20+rng.IntN(260), 20+rng.IntN(260))
		to := geometry.Pt(rng.IntN(300), rng.IntN(300))
		if to == from {
			continue
		}
		got := s.steer(from, to)
		require.InDelta(t, 10, from.Distance(got), math.Sqrt2, "from %s to %s got %s", from, to, got)

		want := math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
		bearing := math.Atan2(float64(got.Y-from.Y), float64(got.X-from.X))
		require.InDelta(t, 0, math.Remainder(bearing-want, 2*math.Pi), 0.2)
	}
}

func TestSearch_BudgetExhaustedWhenGoalUnreachable(t *testing.T) {
	// The goal column x=0, y<10 is sealed off by two obstacles and no free
	// point outside lies within one step of the goal.
	ws, err := workspace.New(100, 10, []geometry.Point{geometry.Pt(1, 0), geometry.Pt(0, 10)})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.MinExpansion = 0
	opts.MaxIterations = 500
	s, err := New(ws, geometry.Pt(50, 50), geometry.Pt(0, 0), seeded(8), opts)
	require.NoError(t, err)

	res, err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPath))
	assert.Equal(t, StateFailed, res.State)
	assert.False(t, res.Success)
	assert.Empty(t, res.Path)
	assert.Equal(t, 500, res.Iterations)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, OutcomeIdle, s.Step())
}

func TestSearch_Cancelled(t *testing.T) {
	ws := fiveObstacles(t)
	s, err := New(ws, geometry.Pt(0, 0), geometry.Pt(299, 299), seeded(1), DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, StateFailed, res.State)
	assert.Zero(t, res.Iterations)
}

func TestNew_RejectsInvalidEndpoints(t *testing.T) {
	ws := fiveObstacles(t)

	tests := []struct {
		name        string
		start, goal geometry.Point
		wantErr     error
	}{
		{"start inside obstacle", geometry.Pt(70, 50), geometry.Pt(299, 299), workspace.ErrPointNotFree},
		{"goal inside obstacle", geometry.Pt(0, 0), geometry.Pt(140, 140), workspace.ErrPointNotFree},
		{"start out of bounds", geometry.Pt(-1, 0), geometry.Pt(299, 299), workspace.ErrOutOfBounds},
		{"goal out of bounds", geometry.Pt(0, 0), geometry.Pt(300, 299), workspace.ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(ws, tt.start, tt.goal, seeded(1), DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	ws := fiveObstacles(t)
	for _, opts := range []Options{
		{StepSize: 0},
		{StepSize: 10, MinExpansion: -1},
		{StepSize: 10, MaxIterations: -5},
	} {
		_, err := New(ws, geometry.Pt(0, 0), geometry.Pt(299, 299), seeded(1), opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOptions))
	}
}

func TestState_Text(t *testing.T) {
	for _, st := range []State{StateGrowing, StateGoalConnected, StateFailed} {
		text, err := st.MarshalText()
		require.NoError(t, err)
		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, st, back)
	}
	var s State
	assert.Error(t, s.UnmarshalText([]byte("bogus")))
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateGrowing.Terminal())
}
