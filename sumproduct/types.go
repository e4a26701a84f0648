package sumproduct

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/beliefprop/tensor"
)

var (
	// ErrUnknownVariable indicates a marginal was requested for a name that
	// is not a variable of the graph.
	ErrUnknownVariable = errors.New("sumproduct: unknown variable")

	// ErrIsolatedVariable indicates a variable that participates in no
	// factor, so it has no distribution to marginalize.
	ErrIsolatedVariable = errors.New("sumproduct: variable has no factors")

	// ErrNotNeighbors indicates a message was requested along a pair of
	// nodes that share no edge.
	ErrNotNeighbors = errors.New("sumproduct: nodes are not neighbors")

	// ErrNilGraph indicates an Engine built over a nil graph.
	ErrNilGraph = errors.New("sumproduct: graph is nil")
)

// Direction tells which of the two message kinds an Edge carries.
type Direction int

const (
	// VariableToFactor marks μ(v→f).
	VariableToFactor Direction = iota

	// FactorToVariable marks μ(f→v).
	FactorToVariable
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case VariableToFactor:
		return "variable_to_factor"
	case FactorToVariable:
		return "factor_to_variable"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Edge is a directed (sender, receiver) pair, the memoization key.
type Edge struct {
	From string
	To   string
}

// String implements fmt.Stringer.
func (e Edge) String() string { return e.From + "→" + e.To }

// Message is one cached entry: the edge and the tensor sent along it.
// Leaf variable messages are the rank-0 scalar 1.
type Message struct {
	Edge
	Direction Direction
	Value     *tensor.Tensor
}

// Event is delivered to Hooks whenever a message is produced or reused.
type Event struct {
	SessionID string
	Edge      Edge
	Direction Direction
	Value     *tensor.Tensor
}

// MarginalEvent is delivered to Hooks after a marginal is computed.
type MarginalEvent struct {
	SessionID string
	Variable  string
	Value     *tensor.Tensor
}

// Hooks observe engine activity. Any field may be nil.
type Hooks struct {
	// OnMessage fires once per directed edge, when its message is first computed.
	OnMessage func(Event)

	// OnCacheHit fires when a cached message is reused.
	OnCacheHit func(Event)

	// OnMarginal fires after each successful marginal.
	OnMarginal func(MarginalEvent)
}

// Option configures an Engine at construction.
type Option func(e *Engine)

// WithLogger routes debug records about message computation to l.
// A nil l keeps the default no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks installs lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}
