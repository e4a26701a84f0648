// File: build.go
// Role: Edge insertion, topology wiring and node lookup.
//
// Determinism:
//   - Variables() returns names in declaration order.
//   - Factors() returns nodes in declaration order.
package factorgraph

import "fmt"

// AddNeighbor connects two nodes of g with a symmetric edge. It lets
// callers grow a built topology before AssignDistributions.
//
// Implementation:
//   - Stage 1: Reject nil operands (ErrNilNode).
//   - Stage 2: Reject a graph whose distributions are attached (ErrAlreadyAssigned).
//   - Stage 3: Reject nodes g does not own (ErrForeignNode).
//   - Stage 4: Link them via addNeighbor.
//
// Complexity:
//   - Time O(deg(a)), Space O(1) amortized.
func (g *Graph) AddNeighbor(a, b *Node) error {
	if a == nil || b == nil {
		return ErrNilNode
	}
	if g.assigned {
		return fmt.Errorf("%s – %s: %w", a, b, ErrAlreadyAssigned)
	}
	for _, n := range []*Node{a, b} {
		if !g.owns(n) {
			return fmt.Errorf("%s: %w", n, ErrForeignNode)
		}
	}

	return addNeighbor(a, b)
}

// owns reports whether n is the node g registered under n.Name.
func (g *Graph) owns(n *Node) bool {
	if n.IsVariable() {
		return g.variables[n.Name] == n
	}

	return g.factorIndex[n.Name] == n
}

// addNeighbor enforces the bipartite and duplicate checks, then appends
// each node to the other's neighbor list.
func addNeighbor(a, b *Node) error {
	if a.Kind == b.Kind {
		return fmt.Errorf("%s – %s: %w", a, b, ErrBipartite)
	}
	if a.HasNeighbor(b) {
		return fmt.Errorf("%s – %s: %w", a, b, ErrDuplicateEdge)
	}

	a.neighbors = append(a.neighbors, b)
	b.neighbors = append(b.neighbors, a)

	return nil
}

// Build constructs a Graph from top.
//
// Implementation:
//   - Stage 1: Declare every variable; empty or repeated names fail.
//   - Stage 2: For each factor in order, create the node (its name must not
//     collide with any other node) and wire an edge to each listed variable.
//
// Errors:
//   - ErrEmptyName, ErrDuplicateNode for bad node names.
//   - ErrUnknownVariable naming the factor and the undeclared variable.
//   - ErrDuplicateEdge if a factor lists the same variable twice.
//
// Complexity:
//   - Time O(V + Σ deg(f)), Space O(V + F + E).
func Build(top Topology) (*Graph, error) {
	g := newGraph()

	for _, name := range top.Variables {
		if name == "" {
			return nil, fmt.Errorf("variable: %w", ErrEmptyName)
		}
		if _, dup := g.variables[name]; dup {
			return nil, fmt.Errorf("variable %q: %w", name, ErrDuplicateNode)
		}
		g.variables[name] = newVariable(name)
		g.varOrder = append(g.varOrder, name)
	}

	for _, spec := range top.Factors {
		if spec.Name == "" {
			return nil, fmt.Errorf("factor: %w", ErrEmptyName)
		}
		if _, dup := g.factorIndex[spec.Name]; dup {
			return nil, fmt.Errorf("factor %q: %w", spec.Name, ErrDuplicateNode)
		}
		if _, dup := g.variables[spec.Name]; dup {
			return nil, fmt.Errorf("factor %q collides with a variable: %w", spec.Name, ErrDuplicateNode)
		}

		f := newFactor(spec.Name)
		for _, vn := range spec.Variables {
			v, ok := g.variables[vn]
			if !ok {
				return nil, fmt.Errorf("factor %q references %q: %w", spec.Name, vn, ErrUnknownVariable)
			}
			if err := addNeighbor(f, v); err != nil {
				return nil, fmt.Errorf("factor %q: %w", spec.Name, err)
			}
		}
		g.factors = append(g.factors, f)
		g.factorIndex[spec.Name] = f
	}

	return g, nil
}

// Variable returns the variable node called name.
// Errors: ErrUnknownVariable.
func (g *Graph) Variable(name string) (*Node, error) {
	v, ok := g.variables[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownVariable)
	}

	return v, nil
}

// Factor returns the factor node called name.
// Errors: ErrUnknownFactor.
func (g *Graph) Factor(name string) (*Node, error) {
	f, ok := g.factorIndex[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFactor)
	}

	return f, nil
}

// Variables returns variable names in declaration order.
func (g *Graph) Variables() []string { return append([]string(nil), g.varOrder...) }

// Factors returns factor nodes in declaration order.
func (g *Graph) Factors() []*Node { return append([]*Node(nil), g.factors...) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, f := range g.factors {
		n += f.Degree()
	}

	return n
}

// Assigned reports whether AssignDistributions has succeeded.
func (g *Graph) Assigned() bool { return g.assigned }

// VariableDim returns the length of variable name's domain, taken from any
// factor table that mentions it.
//
// Errors: ErrUnknownVariable; ErrDistributionUnset before assignment or
// when no factor touches the variable.
func (g *Graph) VariableDim(name string) (int, error) {
	v, err := g.Variable(name)
	if err != nil {
		return 0, err
	}
	for _, f := range v.neighbors {
		if f.dist == nil {
			continue
		}
		if d, err := f.dist.Dim(name); err == nil {
			return d, nil
		}
	}

	return 0, fmt.Errorf("variable %q: %w", name, ErrDistributionUnset)
}
