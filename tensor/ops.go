// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Algebra used by factor-graph message passing: broadcast multiply along
//     a named axis, projection onto one axis, normalization.
//
// Determinism & Performance:
//   - Fixed loop order over the flat row-major buffer (0..n-1).
//   - Each call allocates exactly one output buffer; inputs are read-only.

package tensor

import "fmt"

// Multiply returns t scaled elementwise by u, aligned by axis name.
//
// Implementation:
//   - Stage 1: u rank-0 → scale every value of t by u's single value.
//   - Stage 2: u rank-1 → locate u's axis k in t and check len(u) == shape[k].
//   - Stage 3: out[i] = t[i] · u[(i / stride[k]) mod shape[k]].
//
// The result carries t's axes and shape.
//
// Errors:
//   - ErrNilTensor if either operand is nil.
//   - ErrRankMismatch if u has rank > 1.
//   - ErrUnknownAxis if u's axis is not an axis of t.
//   - ErrDimensionMismatch if the shared axis lengths differ.
//
// Complexity: O(n) time and space for n = t.Len().
func Multiply(t, u *Tensor) (*Tensor, error) {
	if t == nil || u == nil {
		return nil, tensorErrorf("Multiply", ErrNilTensor)
	}

	out := make([]float64, len(t.data))
	switch u.Rank() {
	case 0:
		s := u.data[0]
		for i, v := range t.data {
			out[i] = v * s
		}
	case 1:
		name := u.axes[0]
		k, err := t.AxisIndex(name)
		if err != nil {
			return nil, axisErrorf("Multiply", name, ErrUnknownAxis)
		}
		n := t.shape[k]
		if u.shape[0] != n {
			return nil, axisErrorf("Multiply", name,
				fmt.Errorf("length %d, want %d: %w", u.shape[0], n, ErrDimensionMismatch))
		}
		stride := t.strides[k]
		for i, v := range t.data {
			out[i] = v * u.data[(i/stride)%n]
		}
	default:
		return nil, tensorErrorf("Multiply",
			fmt.Errorf("operand rank %d, want 0 or 1: %w", u.Rank(), ErrRankMismatch))
	}

	return build(out, t.Shape(), t.Axes()), nil
}

// Product folds Multiply over us, left to right, starting from t.
// With no us it returns t itself.
func Product(t *Tensor, us ...*Tensor) (*Tensor, error) {
	acc := t
	for _, u := range us {
		next, err := Multiply(acc, u)
		if err != nil {
			return nil, err
		}
		acc = next
	}

	return acc, nil
}

// SumOut sums t over every axis except keep, returning a 1-D tensor over keep.
// A 1-D tensor over keep comes back as an equal copy.
//
// Errors: ErrNilTensor, ErrUnknownAxis.
// Complexity: O(n) time, O(shape[keep]) space.
func SumOut(t *Tensor, keep string) (*Tensor, error) {
	if t == nil {
		return nil, tensorErrorf("SumOut", ErrNilTensor)
	}
	k, err := t.AxisIndex(keep)
	if err != nil {
		return nil, axisErrorf("SumOut", keep, ErrUnknownAxis)
	}

	n, stride := t.shape[k], t.strides[k]
	out := make([]float64, n)
	for i, v := range t.data {
		out[(i/stride)%n] += v
	}

	return build(out, []int{n}, []string{keep}), nil
}

// SumAxis sums t over the single named axis, dropping it.
// Summing the only axis of a 1-D tensor yields a scalar.
//
// Errors: ErrNilTensor, ErrUnknownAxis.
// Complexity: O(n).
func SumAxis(t *Tensor, axis string) (*Tensor, error) {
	if t == nil {
		return nil, tensorErrorf("SumAxis", ErrNilTensor)
	}
	k, err := t.AxisIndex(axis)
	if err != nil {
		return nil, axisErrorf("SumAxis", axis, ErrUnknownAxis)
	}

	n, stride := t.shape[k], t.strides[k]
	out := make([]float64, len(t.data)/n)
	for i, v := range t.data {
		// drop the k-th digit of the row-major index
		out[(i/(stride*n))*stride+i%stride] += v
	}

	shape := make([]int, 0, t.Rank()-1)
	axes := make([]string, 0, t.Rank()-1)
	for i := range t.shape {
		if i != k {
			shape = append(shape, t.shape[i])
			axes = append(axes, t.axes[i])
		}
	}

	return build(out, shape, axes), nil
}

// Normalize divides every value by the grand total so the result sums to 1.
//
// Errors: ErrNilTensor, ErrZeroTotal when the total is not positive.
// Complexity: O(n).
func Normalize(t *Tensor) (*Tensor, error) {
	if t == nil {
		return nil, tensorErrorf("Normalize", ErrNilTensor)
	}
	total := t.Sum()
	if total <= 0 {
		return nil, tensorErrorf("Normalize", ErrZeroTotal)
	}

	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = v / total
	}

	return build(out, t.Shape(), t.Axes()), nil
}
