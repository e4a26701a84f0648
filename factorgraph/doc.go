// Package factorgraph defines the bipartite Graph of Variable and Factor
// nodes used by sum-product inference, and the two-step lifecycle that
// builds it: wire the topology, then attach one labeled tensor per factor.
//
// What & Why:
//
//	A factor graph encodes a joint distribution as a product of local terms
//	p(x1..xn) ∝ Π_f ψ_f(x_f). Variables and factors form the two sides of a
//	bipartite graph; each factor is connected to exactly the variables its
//	table is defined over.
//
// Lifecycle:
//  1. Build(Topology) declares variables, creates factors in order and wires
//     symmetric neighbor edges. Unknown variable references fail here.
//  2. AssignDistributions(map[factor]*tensor.Tensor) checks every table's
//     axis set against the factor's neighbors and every variable's length
//     across all factors, then attaches all tables at once (write-once).
//
// Invariants:
//   - Variables only neighbor Factors and Factors only neighbor Variables
//     (enforced on every edge, ErrBipartite).
//   - Edges are added only between nodes the Graph owns, and only before
//     AssignDistributions (ErrForeignNode, ErrAlreadyAssigned).
//   - Edges are symmetric: a ∈ b.Neighbors() ⇔ b ∈ a.Neighbors().
//   - Neighbor order is insertion order, so traversals are deterministic.
//
// Precondition:
//
//	Sum-product is exact only when the graph is a tree. Cycles are not
//	detected; callers are responsible for supplying loop-free topologies.
//
// Concurrency:
//
//	A Graph is built once and then only read. It is safe to share a fully
//	assigned Graph across goroutines; construction itself is not.
package factorgraph
