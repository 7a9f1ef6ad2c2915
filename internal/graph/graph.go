package graph

import (
	"maps"
	"slices"
)

// set is a set of vertex handles.
type set map[string]struct{}

// Graph is a directed graph of vertex handles with explicit in-edge and
// out-edge adjacency.
type Graph struct {
	out   map[string]set // Key: handle, Value: handles it mentions
	in    map[string]set // Key: handle, Value: handles mentioning it
	edges int
}

// New creates a new, empty graph.
func New() *Graph {
	return &Graph{
		out: make(map[string]set),
		in:  make(map[string]set),
	}
}

// AddVertex registers a vertex in both adjacency maps.
// Adding the same vertex twice is idempotent.
func (g *Graph) AddVertex(handle string) {
	if _, exists := g.out[handle]; !exists {
		g.out[handle] = make(set)
	}
	if _, exists := g.in[handle]; !exists {
		g.in[handle] = make(set)
	}
}

// AddEdge records that from mentions to. Both endpoints are registered as
// vertices. It reports whether a new edge was created; self-loops and
// duplicate edges return false.
func (g *Graph) AddEdge(from, to string) bool {
	if from == to {
		return false
	}
	g.AddVertex(from)
	g.AddVertex(to)

	if _, exists := g.out[from][to]; exists {
		return false
	}
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
	g.edges++
	return true
}

// Has reports whether handle is a vertex of the graph.
func (g *Graph) Has(handle string) bool {
	_, ok := g.out[handle]
	return ok
}

// HasEdge reports whether from mentions to.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.out[from][to]
	return ok
}

// Len returns the number of vertices in the corpus.
func (g *Graph) Len() int {
	return len(g.out)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Corpus returns every vertex handle, sorted.
func (g *Graph) Corpus() []string {
	// The key sets of in and out are identical by construction; the union is
	// taken anyway so the corpus stays correct if that ever changes.
	corpus := make(set, len(g.out))
	for h := range g.out {
		corpus[h] = struct{}{}
	}
	for h := range g.in {
		corpus[h] = struct{}{}
	}
	return slices.Sorted(maps.Keys(corpus))
}

// OutEdges returns the handles that handle mentions, sorted.
func (g *Graph) OutEdges(handle string) []string {
	return slices.Sorted(maps.Keys(g.out[handle]))
}

// InEdges returns the handles that mention handle, sorted.
func (g *Graph) InEdges(handle string) []string {
	return slices.Sorted(maps.Keys(g.in[handle]))
}

// OutDegree returns the number of distinct handles that handle mentions.
func (g *Graph) OutDegree(handle string) int {
	return len(g.out[handle])
}

// InDegree returns the number of distinct handles that mention handle.
func (g *Graph) InDegree(handle string) int {
	return len(g.in[handle])
}
