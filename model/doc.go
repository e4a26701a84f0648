// Package model loads factor graph documents from YAML (or JSON, which the
// YAML decoder also accepts) and turns them into a wired, fully assigned
// factorgraph.Graph.
//
// Document layout:
//
//	name: chain
//	variables: [h1, h2, v1, v2]
//	factors:
//	  - name: p(h1)
//	    axes: [h1]
//	    values: [0.2, 0.8]
//	  - name: p(h2|h1)
//	    axes: [h2, h1]
//	    values: [[0.5, 0.2], [0.5, 0.8]]
//
// A factor's neighbor variables are its axes, in order; values nest one
// list level per axis (row-major). When variables is omitted, it is
// derived from the factors' axes in first-appearance order.
package model
