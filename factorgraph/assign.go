// File: assign.go
// Role: Distribution assignment with axis-set and dimension validation.
package factorgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/beliefprop/tensor"
)

// AssignDistributions attaches one labeled tensor to every factor.
//
// Implementation:
//   - Stage 1: Reject a second call (ErrAlreadyAssigned) and keys naming no
//     factor (ErrUnknownFactor, reported in sorted key order).
//   - Stage 2: For each factor in declaration order:
//     2.1 a distribution must be present (ErrMissingDistribution);
//     2.2 its axis set must equal the neighbor-variable set (ErrAxisMismatch,
//     naming the factor, missing axes and unexpected axes);
//     2.3 each axis length must equal the first length seen for that
//     variable (ErrDimensionMismatch, naming factor, found and expected size).
//   - Stage 3: Only when every check passed, attach all tensors.
//
// Behavior highlights:
//   - All-or-nothing: on error no factor is modified.
//   - Axis order inside a tensor is free; only the set of names matters.
//
// Complexity:
//   - Time O(Σ rank(ψ_f)), Space O(V).
func (g *Graph) AssignDistributions(dists map[string]*tensor.Tensor) error {
	if g.assigned {
		return ErrAlreadyAssigned
	}

	keys := make([]string, 0, len(dists))
	for k := range dists {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := g.factorIndex[k]; !ok {
			return fmt.Errorf("distribution for %q: %w", k, ErrUnknownFactor)
		}
	}

	// expected[v] = (size, factor that fixed it)
	type seen struct {
		size   int
		factor string
	}
	expected := make(map[string]seen, len(g.variables))

	for _, f := range g.factors {
		t := dists[f.Name]
		if t == nil {
			return fmt.Errorf("factor %q: %w", f.Name, ErrMissingDistribution)
		}
		if err := checkAxes(f, t); err != nil {
			return err
		}
		for _, v := range f.neighbors {
			d, err := t.Dim(v.Name)
			if err != nil {
				return fmt.Errorf("factor %q: %w", f.Name, err)
			}
			prev, ok := expected[v.Name]
			if !ok {
				expected[v.Name] = seen{size: d, factor: f.Name}
				continue
			}
			if d != prev.size {
				return fmt.Errorf("factor %q: variable %q has size %d, expected %d (from factor %q): %w",
					f.Name, v.Name, d, prev.size, prev.factor, ErrDimensionMismatch)
			}
		}
	}

	for _, f := range g.factors {
		f.dist = dists[f.Name]
	}
	g.assigned = true

	return nil
}

// checkAxes compares t's axis set to f's neighbor names.
func checkAxes(f *Node, t *tensor.Tensor) error {
	axes := t.AxisSet()
	var missing, extra []string
	want := make(map[string]struct{}, len(f.neighbors))
	for _, v := range f.neighbors {
		want[v.Name] = struct{}{}
		if _, ok := axes[v.Name]; !ok {
			missing = append(missing, v.Name)
		}
	}
	for _, a := range t.Axes() {
		if _, ok := want[a]; !ok {
			extra = append(extra, a)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing axes ["+strings.Join(missing, ", ")+"]")
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected axes ["+strings.Join(extra, ", ")+"]")
	}

	return fmt.Errorf("factor %q: %s: %w", f.Name, strings.Join(parts, ", "), ErrAxisMismatch)
}
