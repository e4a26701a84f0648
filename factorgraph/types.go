// File: types.go
// Role: Node kinds, Node, Topology and Graph declarations.
package factorgraph

import (
	"fmt"

	"github.com/katalvlaran/beliefprop/tensor"
)

// Kind tags a Node as a Variable or a Factor.
type Kind int

const (
	// KindVariable marks a random-variable node.
	KindVariable Kind = iota

	// KindFactor marks a factor node owning a distribution.
	KindFactor
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFactor:
		return "factor"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a vertex of the factor graph.
//
// Name uniquely identifies the node within its Graph (variables and
// factors share one namespace). Neighbors are held by reference; the Graph
// owns every node's lifetime.
type Node struct {
	// Name is the unique identifier of this node.
	Name string

	// Kind is fixed at creation.
	Kind Kind

	neighbors []*Node        // insertion order
	dist      *tensor.Tensor // factors only; nil until assigned
}

func newVariable(name string) *Node { return &Node{Name: name, Kind: KindVariable} }

func newFactor(name string) *Node { return &Node{Name: name, Kind: KindFactor} }

// IsVariable reports whether n is a variable node.
func (n *Node) IsVariable() bool { return n.Kind == KindVariable }

// IsFactor reports whether n is a factor node.
func (n *Node) IsFactor() bool { return n.Kind == KindFactor }

// Neighbors returns a copy of n's neighbors in insertion order.
func (n *Node) Neighbors() []*Node { return append([]*Node(nil), n.neighbors...) }

// NeighborNames returns the names of n's neighbors in insertion order.
func (n *Node) NeighborNames() []string {
	names := make([]string, len(n.neighbors))
	for i, nb := range n.neighbors {
		names[i] = nb.Name
	}

	return names
}

// Degree returns the number of neighbors.
func (n *Node) Degree() int { return len(n.neighbors) }

// Distribution returns the labeled tensor attached to a factor.
//
// Errors:
//   - ErrDistributionUnset if n is a factor whose distribution has not been
//     assigned, or n is a variable (variables never own one).
func (n *Node) Distribution() (*tensor.Tensor, error) {
	if n.dist == nil {
		return nil, fmt.Errorf("%s %q: %w", n.Kind, n.Name, ErrDistributionUnset)
	}

	return n.dist, nil
}

// HasNeighbor reports whether other is already a neighbor of n.
// Complexity: O(deg(n)).
func (n *Node) HasNeighbor(other *Node) bool {
	for _, nb := range n.neighbors {
		if nb == other {
			return true
		}
	}

	return false
}

// String implements fmt.Stringer.
func (n *Node) String() string { return fmt.Sprintf("%s(%s)", n.Kind, n.Name) }

// FactorSpec declares one factor and its neighbor variables, in order.
type FactorSpec struct {
	Name      string
	Variables []string
}

// Topology is the structural input of Build: a set of variable names and
// an ordered list of factors.
type Topology struct {
	Variables []string
	Factors   []FactorSpec
}

// Graph is a bipartite factor graph.
//
// variables maps name → Variable node; factors keeps declaration order and
// factorIndex maps name → Factor node for O(1) lookup.
type Graph struct {
	variables   map[string]*Node
	varOrder    []string
	factors     []*Node
	factorIndex map[string]*Node
	assigned    bool
}

// newGraph returns an empty Graph with initialized maps.
func newGraph() *Graph {
	return &Graph{
		variables:   make(map[string]*Node),
		factorIndex: make(map[string]*Node),
	}
}
