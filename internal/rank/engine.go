package rank

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/vk/mentionrank/internal/ctxlog"
)

// initialScore is the score every vertex starts from.
const initialScore = 1.0

// Graph is the read-only view of a mention graph the engine needs.
// *graph.Graph satisfies it.
type Graph interface {
	// Corpus returns every vertex handle.
	Corpus() []string
	// InEdges returns the handles that point to handle.
	InEdges(handle string) []string
	// OutDegree returns the number of handles that handle points to.
	OutDegree(handle string) int
}

// Entry is one ranked vertex.
type Entry struct {
	Handle string  `json:"handle"`
	Score  float64 `json:"score"`
}

// Result is the outcome of a ranking run.
type Result struct {
	// Ranking holds every vertex, sorted by score descending then handle.
	Ranking []Entry `json:"ranking"`
	// Scores maps each handle to its final score.
	Scores map[string]float64 `json:"-"`
	// Rounds is the number of rounds executed.
	Rounds int `json:"rounds"`
	// Converged is false when MaxIterations stopped the loop first.
	Converged bool `json:"converged"`
}

// Top returns the first n entries of the ranking, or all of them when n is
// not positive or exceeds the ranking length.
func (r *Result) Top(n int) []Entry {
	if n <= 0 || n > len(r.Ranking) {
		return r.Ranking
	}
	return r.Ranking[:n]
}

// index is the flattened graph: vertex i's in-neighbours are in[i] and its
// out-degree is outDegree[i].
type index struct {
	handles   []string
	in        [][]int
	outDegree []float64
}

func newIndex(g Graph) index {
	handles := g.Corpus()
	pos := make(map[string]int, len(handles))
	for i, h := range handles {
		pos[h] = i
	}

	idx := index{
		handles:   handles,
		in:        make([][]int, len(handles)),
		outDegree: make([]float64, len(handles)),
	}
	for i, h := range handles {
		idx.outDegree[i] = float64(g.OutDegree(h))
		sources := g.InEdges(h)
		idx.in[i] = make([]int, 0, len(sources))
		for _, src := range sources {
			if j, ok := pos[src]; ok {
				idx.in[i] = append(idx.in[i], j)
			}
		}
	}
	return idx
}

// Rank runs damped power iteration over g until no vertex's score drops by
// more than opts.Precision in a round, or opts.MaxIterations rounds have run.
func Rank(ctx context.Context, g Graph, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)

	idx := newIndex(g)
	n := len(idx.handles)
	logger.Debug("Rank engine started.",
		"vertices", n,
		"precision", opts.Precision,
		"damping", opts.Damping,
		"max_iterations", opts.MaxIterations,
	)

	if n == 0 {
		logger.Debug("Empty corpus, nothing to rank.")
		return &Result{Ranking: []Entry{}, Scores: map[string]float64{}, Converged: true}, nil
	}

	prev := make([]float64, n)
	next := make([]float64, n)
	for i := range prev {
		prev[i] = initialScore
	}

	teleport := (1 - opts.Damping) / float64(n)
	rounds := 0
	converged := false

	for {
		rounds++
		repeat := false

		for v := range n {
			incoming := 0.0
			for _, u := range idx.in[v] {
				if idx.outDegree[u] > 0 {
					incoming += prev[u] / idx.outDegree[u]
				}
			}
			next[v] = opts.Damping*incoming + teleport
			if prev[v]-next[v] > opts.Precision {
				repeat = true
			}
		}

		prev, next = next, prev

		if !repeat {
			converged = true
			break
		}
		if opts.MaxIterations > 0 && rounds >= opts.MaxIterations {
			break
		}
	}

	if converged {
		logger.Debug("Rank engine converged.", "rounds", rounds)
	} else {
		logger.Warn("Rank engine stopped before converging.", "rounds", rounds, "max_iterations", opts.MaxIterations)
	}

	return newResult(idx.handles, prev, rounds, converged), nil
}

// newResult pairs handles with scores and sorts them into the final ranking.
func newResult(handles []string, scores []float64, rounds int, converged bool) *Result {
	res := &Result{
		Ranking:   make([]Entry, len(handles)),
		Scores:    make(map[string]float64, len(handles)),
		Rounds:    rounds,
		Converged: converged,
	}
	for i, h := range handles {
		res.Ranking[i] = Entry{Handle: h, Score: scores[i]}
		res.Scores[h] = scores[i]
	}
	slices.SortStableFunc(res.Ranking, compareEntries)
	return res
}

// compareEntries orders by score descending, then handle ascending.
func compareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Handle, b.Handle)
}

// String renders an entry as "handle: score".
func (e Entry) String() string {
	return fmt.Sprintf("%s: %v", e.Handle, e.Score)
}
