package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Tensor is an immutable, row-major dense array of non-negative float64
// values with one name per axis.
//
// Invariants (established by the constructors, never violated afterwards):
//   - len(axes) == len(shape) == Rank().
//   - axis names are non-empty and pairwise distinct.
//   - len(data) == product(shape); a rank-0 tensor holds exactly one value.
type Tensor struct {
	data    []float64 // flat backing storage, row-major
	shape   []int     // dimension lengths, len == rank
	strides []int     // row-major strides, len == rank
	axes    []string  // axis names, len == rank
}

// New builds a Tensor from flat row-major values, a shape and one axis name
// per dimension. The values are copied.
//
// Stage 1 (Validate): rank agreement, positive dimensions, value count.
// Stage 2 (Validate): axis names non-empty and unique; values finite, ≥ 0.
// Stage 3 (Finalize): copy storage and precompute strides.
//
// Errors: ErrRankMismatch, ErrBadShape, ErrEmptyAxis, ErrDuplicateAxis,
// ErrNaNInf, ErrNegative (all wrapped with "Tensor.New").
// Complexity: O(n) for n values.
func New(values []float64, shape []int, axes ...string) (*Tensor, error) {
	if len(axes) != len(shape) {
		return nil, tensorErrorf("New", fmt.Errorf("%d axes for rank %d: %w", len(axes), len(shape), ErrRankMismatch))
	}
	size := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, tensorErrorf("New", ErrBadShape)
		}
		size *= d
	}
	if size != len(values) {
		return nil, tensorErrorf("New", fmt.Errorf("shape %v needs %d values, got %d: %w", shape, size, len(values), ErrBadShape))
	}

	seen := make(map[string]struct{}, len(axes))
	for _, name := range axes {
		if name == "" {
			return nil, tensorErrorf("New", ErrEmptyAxis)
		}
		if _, dup := seen[name]; dup {
			return nil, axisErrorf("New", name, ErrDuplicateAxis)
		}
		seen[name] = struct{}{}
	}

	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, tensorErrorf("New", ErrNaNInf)
		}
		if v < 0 {
			return nil, tensorErrorf("New", ErrNegative)
		}
	}

	data := make([]float64, len(values))
	copy(data, values)

	return build(data, append([]int(nil), shape...), append([]string(nil), axes...)), nil
}

// build assembles a Tensor from already-validated, already-owned storage.
func build(data []float64, shape []int, axes []string) *Tensor {
	strides := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= shape[i]
	}

	return &Tensor{data: data, shape: shape, strides: strides, axes: axes}
}

// Scalar returns a rank-0 tensor holding v.
// A negative, NaN or infinite v yields an error.
func Scalar(v float64) (*Tensor, error) {
	return New([]float64{v}, nil)
}

// Vector returns a rank-1 tensor over axis.
func Vector(axis string, values ...float64) (*Tensor, error) {
	return New(values, []int{len(values)}, axis)
}

// Ones returns a rank-1 tensor of length n over axis, filled with 1.
func Ones(axis string, n int) (*Tensor, error) {
	if n <= 0 {
		return nil, axisErrorf("Ones", axis, ErrBadShape)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = 1
	}

	return New(values, []int{n}, axis)
}

// identity is the multiplicative identity: a rank-0 tensor holding 1.
var identity = build([]float64{1}, nil, nil)

// Identity returns the scalar 1, the neutral element of Multiply.
func Identity() *Tensor { return identity }

// Rank returns the number of axes. Complexity: O(1).
func (t *Tensor) Rank() int { return len(t.shape) }

// Len returns the number of stored values (1 for a scalar).
func (t *Tensor) Len() int { return len(t.data) }

// IsScalar reports whether t has rank 0.
func (t *Tensor) IsScalar() bool { return len(t.shape) == 0 }

// Shape returns a copy of the dimension lengths.
func (t *Tensor) Shape() []int { return append([]int(nil), t.shape...) }

// Axes returns a copy of the axis names in dimension order.
func (t *Tensor) Axes() []string { return append([]string(nil), t.axes...) }

// Values returns a copy of the flat row-major values.
func (t *Tensor) Values() []float64 { return append([]float64(nil), t.data...) }

// AxisIndex returns the dimension index of the named axis.
// Errors: ErrUnknownAxis if name is not an axis of t.
// Complexity: O(rank).
func (t *Tensor) AxisIndex(name string) (int, error) {
	for i, a := range t.axes {
		if a == name {
			return i, nil
		}
	}

	return -1, axisErrorf("AxisIndex", name, ErrUnknownAxis)
}

// HasAxis reports whether name is an axis of t.
func (t *Tensor) HasAxis(name string) bool {
	_, err := t.AxisIndex(name)
	return err == nil
}

// OtherAxes returns every dimension index except the named one, in order.
// Errors: ErrUnknownAxis.
func (t *Tensor) OtherAxes(name string) ([]int, error) {
	k, err := t.AxisIndex(name)
	if err != nil {
		return nil, axisErrorf("OtherAxes", name, ErrUnknownAxis)
	}
	out := make([]int, 0, len(t.axes)-1)
	for i := range t.axes {
		if i != k {
			out = append(out, i)
		}
	}

	return out, nil
}

// AxisSet returns the axis names as a set.
func (t *Tensor) AxisSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.axes))
	for _, a := range t.axes {
		set[a] = struct{}{}
	}

	return set
}

// Dim returns the length of the named axis.
// Errors: ErrUnknownAxis.
func (t *Tensor) Dim(name string) (int, error) {
	k, err := t.AxisIndex(name)
	if err != nil {
		return 0, axisErrorf("Dim", name, ErrUnknownAxis)
	}

	return t.shape[k], nil
}

// At returns the value at the given multi-index (one index per axis).
// A scalar is read with no indices.
// Errors: ErrRankMismatch, ErrOutOfRange.
func (t *Tensor) At(idx ...int) (float64, error) {
	if len(idx) != len(t.shape) {
		return 0, tensorErrorf("At", ErrRankMismatch)
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			return 0, tensorErrorf("At", fmt.Errorf("index %d on axis %q: %w", v, t.axes[i], ErrOutOfRange))
		}
		off += v * t.strides[i]
	}

	return t.data[off], nil
}

// Sum returns the grand total over all axes.
// Complexity: O(n).
func (t *Tensor) Sum() float64 {
	var s float64
	for _, v := range t.data {
		s += v
	}

	return s
}

// String implements fmt.Stringer for debugging.
// Scalars print as their value, higher ranks as axes followed by flat values.
func (t *Tensor) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.IsScalar() {
		return fmt.Sprintf("%g", t.data[0])
	}
	var b strings.Builder
	b.WriteString("(")
	for i, a := range t.axes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%d", a, t.shape[i])
	}
	b.WriteString(") ")
	fmt.Fprintf(&b, "%v", t.data)

	return b.String()
}
