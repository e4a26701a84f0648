// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Probability predicates over tensors, all sharing one tolerance policy
//     (see options.go).
//
// Note:
//   - Predicates are checks, not invariants: a Tensor that fails them is
//     still a valid Tensor (messages, for instance, are unnormalized).

package tensor

// IsValidConditional reports whether t is a conditional distribution over
// axis: summing over axis yields 1 within tolerance for every slice of the
// remaining axes. A 1-D tensor over axis is valid iff it sums to 1.
//
// Errors: ErrNilTensor, ErrUnknownAxis.
// Complexity: O(n).
func IsValidConditional(t *Tensor, axis string, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)
	marg, err := SumAxis(t, axis)
	if err != nil {
		return false, err
	}
	for _, s := range marg.data {
		if !approxEqual(s, 1, o.eps) {
			return false, nil
		}
	}

	return true, nil
}

// IsValidJoint reports whether the grand total of t is 1 within tolerance.
// A nil tensor is never a valid joint.
func IsValidJoint(t *Tensor, opts ...Option) bool {
	if t == nil {
		return false
	}
	o := gatherOptions(opts...)

	return approxEqual(t.Sum(), 1, o.eps)
}

// Equal reports whether a and b have the same axes, the same shape and
// values equal within tolerance. Two nil tensors are equal.
func Equal(a, b *Tensor, opts ...Option) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.shape) != len(b.shape) || len(a.data) != len(b.data) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] || a.axes[i] != b.axes[i] {
			return false
		}
	}
	o := gatherOptions(opts...)
	for i := range a.data {
		if !approxEqual(a.data[i], b.data[i], o.eps) {
			return false
		}
	}

	return true
}
