package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mentionrank/internal/builder"
	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/graph"
	"github.com/vk/mentionrank/internal/post"
)

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func buildGraph(t *testing.T, posts ...post.Post) *graph.Graph {
	t.Helper()
	g, _ := builder.BuildSlice(testContext(), posts)
	return g
}

func cycle(t *testing.T) *graph.Graph {
	return buildGraph(t,
		post.New("A", "B"),
		post.New("B", "C"),
		post.New("C", "A"),
	)
}

func star(t *testing.T) *graph.Graph {
	return buildGraph(t,
		post.New("A", "H"),
		post.New("B", "H"),
		post.New("C", "H"),
	)
}

func handles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Handle
	}
	return out
}

func TestRank_EmptyGraph(t *testing.T) {
	res, err := Rank(testContext(), graph.New(), DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, res.Ranking)
	assert.Empty(t, res.Scores)
	assert.Zero(t, res.Rounds)
	assert.True(t, res.Converged)
}

func TestRank_SingleVertex(t *testing.T) {
	g := buildGraph(t, post.New("solo"))

	res, err := Rank(testContext(), g, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Ranking, 1)
	assert.InDelta(t, 1-DefaultDamping, res.Scores["solo"], 1e-12)
	// Round one drops the score from 1.0 to 0.1, round two confirms it.
	assert.Equal(t, 2, res.Rounds)
	assert.True(t, res.Converged)
}

func TestRank_PrecisionOneStopsAfterOneRound(t *testing.T) {
	for name, g := range map[string]*graph.Graph{"cycle": cycle(t), "star": star(t)} {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Precision = 1.0

			res, err := Rank(testContext(), g, opts)
			require.NoError(t, err)

			assert.Equal(t, 1, res.Rounds)
			assert.True(t, res.Converged)
		})
	}
}

func TestRank_ThreeCycleTies(t *testing.T) {
	res, err := Rank(testContext(), cycle(t), DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)

	a, b, c := res.Scores["A"], res.Scores["B"], res.Scores["C"]
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
	// The fixed point of x = 0.9x + 0.1/3 is 1/3; the loop stops once the
	// per-round drop 0.1(x - 1/3) is within precision.
	assert.InDelta(t, 1.0/3.0, a, 1e-3)
	assert.Equal(t, []string{"A", "B", "C"}, handles(res.Ranking))
}

func TestRank_StarHubRanksFirst(t *testing.T) {
	res, err := Rank(testContext(), star(t), DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)

	assert.Equal(t, "H", res.Ranking[0].Handle)
	for _, leaf := range []string{"A", "B", "C"} {
		assert.Greater(t, res.Scores["H"], res.Scores[leaf])
	}
	assert.Equal(t, res.Scores["A"], res.Scores["B"])
	assert.Equal(t, res.Scores["B"], res.Scores["C"])
	assert.Equal(t, []string{"H", "A", "B", "C"}, handles(res.Ranking))

	// Leaves receive only teleport mass: 0.1 / 4.
	assert.InDelta(t, 0.025, res.Scores["A"], 1e-12)
	// The hub inherits all three leaves, the dangling hub passes nothing on.
	assert.InDelta(t, 0.9*3*0.025+0.025, res.Scores["H"], 1e-12)
}

func TestRank_StarOrderStableAcrossDamping(t *testing.T) {
	for _, damping := range []float64{0.1, 0.5, 0.85, 0.9, 0.99} {
		opts := DefaultOptions()
		opts.Damping = damping

		res, err := Rank(testContext(), star(t), opts)
		require.NoError(t, err)

		assert.Equal(t, "H", res.Ranking[0].Handle, "damping %v", damping)
	}
}

func TestRank_JacobiRounds(t *testing.T) {
	// Chain A -> B -> C. Processing in handle order, an in-place update would
	// let C see B's fresh score within the same round.
	g := buildGraph(t, post.New("A", "B"), post.New("B", "C"))
	opts := DefaultOptions()
	opts.MaxIterations = 1

	res, err := Rank(testContext(), g, opts)
	require.NoError(t, err)

	teleport := (1 - opts.Damping) / 3
	assert.InDelta(t, teleport, res.Scores["A"], 1e-12)
	assert.InDelta(t, opts.Damping*1.0+teleport, res.Scores["B"], 1e-12)
	assert.InDelta(t, opts.Damping*1.0+teleport, res.Scores["C"], 1e-12)
}

func TestRank_MaxIterationsReportsNonConvergence(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxIterations = 5

	res, err := Rank(testContext(), cycle(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Rounds)
	assert.False(t, res.Converged)
	assert.Len(t, res.Ranking, 3)
}

func TestRank_DanglingMassDropped(t *testing.T) {
	g := buildGraph(t, post.New("A", "B"))

	res, err := Rank(testContext(), g, DefaultOptions())
	require.NoError(t, err)

	// A only gets teleport mass, B gets A's share plus teleport; B's own
	// score goes nowhere so the total stays below one.
	assert.InDelta(t, 0.05, res.Scores["A"], 1e-12)
	assert.InDelta(t, 0.9*0.05+0.05, res.Scores["B"], 1e-12)
	assert.Less(t, res.Scores["A"]+res.Scores["B"], 1.0)
}

func TestRank_SplitsScoreByOutDegree(t *testing.T) {
	g := buildGraph(t, post.New("A", "B", "C"))
	opts := DefaultOptions()
	opts.MaxIterations = 1

	res, err := Rank(testContext(), g, opts)
	require.NoError(t, err)

	teleport := (1 - opts.Damping) / 3
	assert.InDelta(t, opts.Damping*0.5+teleport, res.Scores["B"], 1e-12)
	assert.InDelta(t, opts.Damping*0.5+teleport, res.Scores["C"], 1e-12)
}

func TestRank_EveryVertexScored(t *testing.T) {
	g := buildGraph(t,
		post.New("A", "B", "C"),
		post.New("D"),
		post.New("E", "A"),
	)

	res, err := Rank(testContext(), g, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Scores, g.Len())
	require.Len(t, res.Ranking, g.Len())
	for _, h := range g.Corpus() {
		score, ok := res.Scores[h]
		assert.True(t, ok, "missing score for %q", h)
		assert.GreaterOrEqual(t, score, 0.0)
	}
	for i := 1; i < len(res.Ranking); i++ {
		assert.GreaterOrEqual(t, res.Ranking[i-1].Score, res.Ranking[i].Score)
	}
}

func TestRank_Deterministic(t *testing.T) {
	posts := []post.Post{
		post.New("a", "b", "c"),
		post.New("b", "c"),
		post.New("c", "a"),
		post.New("d", "a", "b", "c"),
		post.New("e"),
	}

	first, err := Rank(testContext(), buildGraph(t, posts...), DefaultOptions())
	require.NoError(t, err)
	for range 5 {
		again, err := Rank(testContext(), buildGraph(t, posts...), DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, first.Ranking, again.Ranking)
		assert.Equal(t, first.Rounds, again.Rounds)
	}
}

func TestRank_InvalidOptions(t *testing.T) {
	_, err := Rank(testContext(), cycle(t), Options{Precision: 0, Damping: 0.9})
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestResult_Top(t *testing.T) {
	res := &Result{Ranking: []Entry{
		{Handle: "a", Score: 3},
		{Handle: "b", Score: 2},
		{Handle: "c", Score: 1},
	}}

	assert.Len(t, res.Top(2), 2)
	assert.Len(t, res.Top(0), 3)
	assert.Len(t, res.Top(10), 3)
	assert.Equal(t, "a", res.Top(1)[0].Handle)
}

func TestCompareEntries_TieBreaksByHandle(t *testing.T) {
	res := newResult([]string{"zed", "amy", "bob"}, []float64{1, 1, 2}, 1, true)

	assert.Equal(t, []string{"bob", "amy", "zed"}, handles(res.Ranking))
}

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "alice: 0.5", Entry{Handle: "alice", Score: 0.5}.String())
}
