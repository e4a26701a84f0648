// Package sumproduct computes exact marginals on tree-shaped factor graphs
// with the sum-product (belief propagation) algorithm.
//
// # Messages
//
// Two kinds of message travel along the directed edges of a factor graph:
//
//	μ(v→f) = Π_{g ∈ N(v)\{f}} μ(g→v)                  (scalar 1 at a leaf)
//	μ(f→v) = Σ_{x_f \ x_v} ψ_f(x_f) · Π_{u ∈ N(f)\{v}} μ(u→f)
//
// The marginal of v is the normalized product of μ(f→v) over every factor
// neighbor f of v.
//
// # Evaluation
//
// An Engine evaluates messages on demand by mutual recursion and memoizes
// each one under its (sender, receiver) Edge. On a tree the recursion never
// revisits a directed edge, and the cache bounds the total work by the
// number of directed edges (twice the undirected edge count) no matter how
// many marginals are requested.
//
// Steps for Marginal(v):
//  1. Look up v (ErrUnknownVariable); reject an isolated v (ErrIsolatedVariable).
//  2. For each factor neighbor f of v, obtain μ(f→v):
//     2.1 cached → return it (OnCacheHit).
//     2.2 otherwise multiply ψ_f by μ(u→f) for every other neighbor u,
//     recursing for each, then sum out every axis but v (OnMessage).
//  3. Multiply the incoming messages together and normalize.
//
// # Preconditions and concurrency
//
// The graph must be a tree and every factor must have its distribution
// assigned. Cycles are not detected: on a loopy graph the recursion does
// not terminate. An Engine is single-threaded; run concurrent sessions over
// one Graph with one Engine each.
package sumproduct
