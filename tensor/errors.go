// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// All constructors and algebra functions return these sentinels, wrapped with
// method context; callers match them via errors.Is. No function panics on
// user-triggered error conditions. Option setters panic on programmer errors.

package tensor

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "tensor: " for easy grepping across logs.
var (
	// ErrBadShape is returned when a shape has a non-positive dimension or
	// does not match the number of supplied values.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrRankMismatch indicates that the number of axis names differs from
	// the rank of the data, or an operand has an unsupported rank.
	ErrRankMismatch = errors.New("tensor: rank mismatch")

	// ErrDuplicateAxis indicates two axes share the same name.
	ErrDuplicateAxis = errors.New("tensor: duplicate axis name")

	// ErrEmptyAxis indicates an axis name is the empty string.
	ErrEmptyAxis = errors.New("tensor: empty axis name")

	// ErrUnknownAxis indicates a referenced axis name is not present.
	ErrUnknownAxis = errors.New("tensor: unknown axis")

	// ErrDimensionMismatch indicates two operands disagree on the length of
	// a shared axis.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrOutOfRange indicates an index outside the tensor bounds.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value at ingestion.
	ErrNaNInf = errors.New("tensor: NaN or Inf encountered")

	// ErrNegative signals a negative value at ingestion.
	ErrNegative = errors.New("tensor: negative value")

	// ErrZeroTotal is returned by Normalize when the grand total is zero.
	ErrZeroTotal = errors.New("tensor: total is zero")

	// ErrNilTensor indicates a nil *Tensor operand.
	ErrNilTensor = errors.New("tensor: nil tensor")
)

// tensorErrorf wraps an underlying error with method context.
func tensorErrorf(method string, err error) error {
	return fmt.Errorf("Tensor.%s: %w", method, err)
}

// axisErrorf wraps an underlying error with method and axis context.
func axisErrorf(method, axis string, err error) error {
	return fmt.Errorf("Tensor.%s(%q): %w", method, axis, err)
}
