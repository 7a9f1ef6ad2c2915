// Package rank implements the damped power-iteration ranking over a mention
// graph.
//
// # Model
//
// Every vertex starts with a score of 1.0. Each round recomputes every score
// from the previous round's complete snapshot:
//
//	new(v) = damping * incoming(v) + (1 - damping) / |corpus|
//	incoming(v) = sum over u mentioning v of prev(u) / outdegree(u)
//
// Vertices with no out-edges pass nothing on; their mass is dropped rather
// than spread across the corpus. Scores are therefore not a probability
// distribution.
//
// # Rounds
//
// Rounds are synchronous (Jacobi): all updates in a round read the same
// "before" table and write a separate "after" table, and the two are swapped
// once the round completes. The loop stops after the first round in which no
// vertex's signed difference old-new exceeds the precision, or when the
// optional iteration cap is hit, in which case the result is marked as not
// converged.
//
// # Ordering
//
// The final ranking is sorted by score descending, ties broken by handle
// ascending, so identical input always yields an identical ranking.
package rank
