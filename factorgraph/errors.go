package factorgraph

import "errors"

// Sentinel errors for factor graph construction and lookup.
var (
	// ErrEmptyName indicates a variable or factor with an empty name.
	ErrEmptyName = errors.New("factorgraph: empty node name")

	// ErrDuplicateNode indicates two nodes share the same name.
	ErrDuplicateNode = errors.New("factorgraph: duplicate node name")

	// ErrUnknownVariable indicates a reference to an undeclared variable.
	ErrUnknownVariable = errors.New("factorgraph: unknown variable")

	// ErrUnknownFactor indicates a reference to an undeclared factor.
	ErrUnknownFactor = errors.New("factorgraph: unknown factor")

	// ErrBipartite indicates an edge between two nodes of the same kind.
	ErrBipartite = errors.New("factorgraph: edge must join a variable and a factor")

	// ErrDuplicateEdge indicates the same neighbor was added twice.
	ErrDuplicateEdge = errors.New("factorgraph: duplicate edge")

	// ErrNilNode indicates a nil *Node operand.
	ErrNilNode = errors.New("factorgraph: nil node")

	// ErrForeignNode indicates a node that does not belong to the graph.
	ErrForeignNode = errors.New("factorgraph: node not owned by graph")

	// ErrAxisMismatch indicates a distribution whose axis names differ from
	// the names of the factor's neighbor variables.
	ErrAxisMismatch = errors.New("factorgraph: distribution axes do not match factor neighbors")

	// ErrDimensionMismatch indicates a variable whose length differs between
	// two factors.
	ErrDimensionMismatch = errors.New("factorgraph: inconsistent variable dimension")

	// ErrMissingDistribution indicates a factor with no distribution in the
	// assignment.
	ErrMissingDistribution = errors.New("factorgraph: missing distribution")

	// ErrDistributionUnset indicates a factor's distribution was read before
	// AssignDistributions succeeded.
	ErrDistributionUnset = errors.New("factorgraph: distribution not assigned")

	// ErrAlreadyAssigned indicates a second AssignDistributions call.
	ErrAlreadyAssigned = errors.New("factorgraph: distributions already assigned")
)
