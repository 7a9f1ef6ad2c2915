// Package graph provides the directed mention graph that the ranking engine
// walks.
//
// # Why Graph Package Exists
//
// The graph keeps both directions of every mention explicitly. A post by
// alice that mentions bob is recorded twice:
//   - **Out-edge**: alice -> bob, in alice's out set (mentions made)
//   - **In-edge**: bob <- alice, in bob's in set (mentions received)
//
// The ranking engine needs both views on every round: the in set to gather
// incoming score and the size of the out set to split a vertex's score among
// the vertices it mentions. Storing both avoids rebuilding either view per
// round.
//
// # Invariants
//
// The mutators maintain three invariants, so consumers never need to check
// them:
//   - **Completeness:** every handle that appears anywhere in the graph is a
//     key in both adjacency maps and therefore part of the corpus
//   - **No self-loops:** AddEdge silently ignores an edge from a vertex to itself
//   - **No duplicates:** edge sets are sets; parallel mentions collapse
//
// # Lifecycle
//
//  1. **Creation:** New returns an empty graph
//  2. **Population:** the builder adds vertices and edges
//  3. **Ranking:** the rank engine reads Corpus, InEdges and OutDegree
//  4. **Disposal:** the graph is discarded once the ranking is produced
//
// # Determinism
//
// All query methods that return handles return them sorted, so iteration
// order never depends on Go's randomized map order.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent mutation. Once population finishes it is
// only read, and concurrent readers are safe.
package graph
