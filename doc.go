// Package beliefprop is an exact-inference toolkit for discrete graphical
// models shaped as trees: labeled tensors, factor graphs, and the
// sum-product (belief propagation) message engine.
//
// 🚀 What is beliefprop?
//
//	A small, deterministic library that turns a factorized joint
//	distribution p(x) ∝ Π ψ_f(x_f) into exact per-variable marginals:
//		• Labeled tensors: dense tables with named axes, immutable algebra
//		• Factor graphs: bipartite Variable/Factor nodes, validated tables
//		• Sum-product: memoized message recursion, one message per edge
//		• Model files: YAML/JSON documents for graphs and tables
//
// Under the hood, everything is organized under these packages:
//
//	tensor/      — Tensor, Multiply, SumOut, Normalize, probability checks
//	factorgraph/ — Graph, Build(Topology), AssignDistributions
//	sumproduct/  — Engine, Marginal, message cache, hooks
//	model/       — YAML/JSON model documents
//	metrics/     — Prometheus counters fed by engine hooks
//	cmd/bpinfer  — command-line front end
//
// Quick ASCII example (h1 → h2, h1 → v1, h2 → v2):
//
//	[p(h1)]─h1─[p(h2|h1)]─h2─[p(v2|h2)]─v2
//	         │
//	     [p(v1|h1)]─v1
//
// The graph must be a tree; loopy graphs are not supported.
//
//	go get github.com/katalvlaran/beliefprop
package beliefprop
