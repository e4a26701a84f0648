// Package tensor provides Tensor, an immutable dense array of non-negative
// float64 values whose axes carry names.
//
// 🚀 What is a labeled tensor?
//
//	A probability table p(a, b | c) is a 3-D array; which dimension is "a"
//	and which is "c" matters more than its position. Tensor keeps the axis
//	names next to the data so algebra can align operands by name:
//	  • factors of a factor graph (joint or conditional tables)
//	  • messages passed between graph nodes (1-D vectors or scalars)
//
// ✨ Key features:
//   - row-major flat storage, rank 0 (scalar) up to any rank
//   - Multiply: broadcast a 1-D tensor (or scalar) along a named axis
//   - SumOut: project a tensor onto one named axis
//   - Normalize: rescale so the grand total is 1
//   - IsValidConditional / IsValidJoint: probability checks within a tolerance
//
// Every operation returns a new Tensor; inputs are never modified, so a
// Tensor can be shared freely once constructed.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/beliefprop/tensor"
//
//	prior, _ := tensor.Vector("h1", 0.2, 0.8)
//	cond, _ := tensor.New([]float64{0.5, 0.2, 0.5, 0.8}, []int{2, 2}, "h2", "h1")
//	joint, _ := tensor.Multiply(cond, prior)   // p(h2, h1)
//	m, _ := tensor.SumOut(joint, "h2")          // p(h2)
//
// Numeric policy:
//
//	Values must be finite and non-negative; New rejects anything else.
//	Comparisons to 1.0 use DefaultEpsilon (1e-8) as a combined
//	absolute/relative tolerance: |a-b| <= eps·max(1, |a|, |b|).
package tensor
