package tensor

import "fmt"

// FromNested builds a Tensor from nested slices, inferring the shape from
// the nesting depth. Accepted leaves are float64 and int values; accepted
// containers are []float64, [][]float64, []int and []any (what YAML and JSON decoders
// produce), nested to any depth. A bare number yields a scalar.
//
// Errors:
//   - ErrBadShape for ragged input, empty slices or unsupported element types.
//   - Any error New reports for the flattened values.
func FromNested(v any, axes ...string) (*Tensor, error) {
	if m, ok := v.([][]float64); ok {
		rows := make([]any, len(m))
		for i := range m {
			rows[i] = m[i]
		}
		v = rows
	}

	var shape []int
	if err := inferShape(v, 0, &shape); err != nil {
		return nil, tensorErrorf("FromNested", err)
	}
	values := make([]float64, 0, product(shape))
	values, err := flatten(v, 0, shape, values)
	if err != nil {
		return nil, tensorErrorf("FromNested", err)
	}

	return New(values, shape, axes...)
}

// inferShape walks the first element at every depth to discover dimensions.
func inferShape(v any, depth int, shape *[]int) error {
	switch x := v.(type) {
	case float64, int:
		return nil
	case []float64:
		if len(x) == 0 {
			return fmt.Errorf("empty slice at depth %d: %w", depth, ErrBadShape)
		}
		*shape = append(*shape, len(x))
		return nil
	case []int:
		if len(x) == 0 {
			return fmt.Errorf("empty slice at depth %d: %w", depth, ErrBadShape)
		}
		*shape = append(*shape, len(x))
		return nil
	case []any:
		if len(x) == 0 {
			return fmt.Errorf("empty slice at depth %d: %w", depth, ErrBadShape)
		}
		*shape = append(*shape, len(x))
		return inferShape(x[0], depth+1, shape)
	default:
		return fmt.Errorf("unsupported element %T: %w", v, ErrBadShape)
	}
}

// flatten appends the leaves of v in row-major order, checking every
// sub-slice against the inferred shape.
func flatten(v any, depth int, shape []int, out []float64) ([]float64, error) {
	if depth == len(shape) {
		switch x := v.(type) {
		case float64:
			return append(out, x), nil
		case int:
			return append(out, float64(x)), nil
		default:
			return nil, fmt.Errorf("ragged input at depth %d: %w", depth, ErrBadShape)
		}
	}

	switch x := v.(type) {
	case []float64:
		if depth != len(shape)-1 || len(x) != shape[depth] {
			return nil, fmt.Errorf("ragged input at depth %d: %w", depth, ErrBadShape)
		}
		return append(out, x...), nil
	case []int:
		if depth != len(shape)-1 || len(x) != shape[depth] {
			return nil, fmt.Errorf("ragged input at depth %d: %w", depth, ErrBadShape)
		}
		for _, n := range x {
			out = append(out, float64(n))
		}
		return out, nil
	case []any:
		if len(x) != shape[depth] {
			return nil, fmt.Errorf("ragged input at depth %d: %w", depth, ErrBadShape)
		}
		var err error
		for _, e := range x {
			if out, err = flatten(e, depth+1, shape, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ragged input at depth %d: %w", depth, ErrBadShape)
	}
}

func product(shape []int) int {
	p := 1
	for _, d := range shape {
		p *= d
	}

	return p
}
