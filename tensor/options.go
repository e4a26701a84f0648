// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Single source of truth for the numeric tolerance used by the
//     probability predicates (IsValidConditional, IsValidJoint, Equal).
//
// Contract:
//   - Option setters validate eagerly and panic on nonsensical values
//     (programmer error), never on data.

package tensor

import "math"

// DefaultEpsilon is the tolerance used when comparing sums to 1.0.
// It is applied as |a-b| <= eps·max(1, |a|, |b|): absolute for values
// near one, relative for larger magnitudes.
const DefaultEpsilon = 1e-8

const panicEpsilonInvalid = "tensor: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps float64 // >= 0; DefaultEpsilon
}

// WithEpsilon sets the tolerance for approximate comparisons.
// Panics if eps is negative, NaN or ±Inf.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// Epsilon reports the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// gatherOptions applies setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{eps: DefaultEpsilon}
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// approxEqual reports |a-b| <= eps·max(1, |a|, |b|).
// Complexity: O(1).
func approxEqual(a, b, eps float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))

	return math.Abs(a-b) <= eps*scale
}
