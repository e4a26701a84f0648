package sumproduct

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/katalvlaran/beliefprop/factorgraph"
	"github.com/katalvlaran/beliefprop/tensor"
)

// Engine evaluates sum-product messages over one Graph and memoizes them.
//
// The cache is private to the Engine and keyed by node names only, so it
// assumes the graph's distributions never change; they are write-once.
type Engine struct {
	g      *factorgraph.Graph
	cache  map[Edge]*tensor.Tensor
	dirs   map[Edge]Direction
	logger *slog.Logger
	hooks  Hooks
	id     string
}

// New returns an Engine with an empty cache over g.
// Complexity: O(1).
func New(g *factorgraph.Graph, opts ...Option) *Engine {
	e := &Engine{
		g:      g,
		cache:  make(map[Edge]*tensor.Tensor),
		dirs:   make(map[Edge]Direction),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		id:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("session", e.id)

	return e
}

// SessionID identifies this engine in logs and hook events.
func (e *Engine) SessionID() string { return e.id }

// Graph returns the graph the engine evaluates.
func (e *Engine) Graph() *factorgraph.Graph { return e.g }

// Marginal returns the normalized marginal distribution of variable name,
// a 1-D tensor over that variable's domain.
//
// Errors:
//   - ErrUnknownVariable if name is not a variable of the graph.
//   - ErrIsolatedVariable if the variable neighbors no factor.
//   - factorgraph.ErrDistributionUnset (wrapped) if a factor on the way has
//     no distribution.
//   - tensor.ErrZeroTotal (wrapped) if the evidence has zero probability.
//
// Complexity: O(E · c) on first use, where c bounds a factor table size;
// cached edges cost O(1).
func (e *Engine) Marginal(name string) (*tensor.Tensor, error) {
	if e.g == nil {
		return nil, ErrNilGraph
	}
	v, err := e.g.Variable(name)
	if err != nil {
		return nil, fmt.Errorf("marginal %q: %w", name, ErrUnknownVariable)
	}
	factors := v.Neighbors()
	if len(factors) == 0 {
		return nil, fmt.Errorf("marginal %q: %w", name, ErrIsolatedVariable)
	}

	acc := tensor.Identity()
	for _, f := range factors {
		m, err := e.factorToVariable(f, v)
		if err != nil {
			return nil, fmt.Errorf("marginal %q: %w", name, err)
		}
		if acc, err = combine(acc, m); err != nil {
			return nil, fmt.Errorf("marginal %q: %w", name, err)
		}
	}

	out, err := tensor.Normalize(acc)
	if err != nil {
		return nil, fmt.Errorf("marginal %q: %w", name, err)
	}
	e.logger.Debug("marginal computed", "variable", name, "cached", len(e.cache))
	if e.hooks.OnMarginal != nil {
		e.hooks.OnMarginal(MarginalEvent{SessionID: e.id, Variable: name, Value: out})
	}

	return out, nil
}

// Marginals computes the marginal of each named variable, or of every
// variable in declaration order when names is empty. It stops at the
// first error.
func (e *Engine) Marginals(names ...string) (map[string]*tensor.Tensor, error) {
	if e.g == nil {
		return nil, ErrNilGraph
	}
	if len(names) == 0 {
		names = e.g.Variables()
	}
	out := make(map[string]*tensor.Tensor, len(names))
	for _, n := range names {
		m, err := e.Marginal(n)
		if err != nil {
			return nil, err
		}
		out[n] = m
	}

	return out, nil
}

// VariableToFactor returns μ(variable→factor), computing it if needed.
// Errors: unknown names (factorgraph sentinels), ErrNotNeighbors.
func (e *Engine) VariableToFactor(variable, factor string) (*tensor.Tensor, error) {
	v, f, err := e.pair(variable, factor)
	if err != nil {
		return nil, err
	}

	return e.variableToFactor(v, f)
}

// FactorToVariable returns μ(factor→variable), computing it if needed.
// Errors: unknown names (factorgraph sentinels), ErrNotNeighbors.
func (e *Engine) FactorToVariable(factor, variable string) (*tensor.Tensor, error) {
	v, f, err := e.pair(variable, factor)
	if err != nil {
		return nil, err
	}

	return e.factorToVariable(f, v)
}

// pair resolves an adjacent (variable, factor) pair by name.
func (e *Engine) pair(variable, factor string) (*factorgraph.Node, *factorgraph.Node, error) {
	if e.g == nil {
		return nil, nil, ErrNilGraph
	}
	v, err := e.g.Variable(variable)
	if err != nil {
		return nil, nil, err
	}
	f, err := e.g.Factor(factor)
	if err != nil {
		return nil, nil, err
	}
	if !v.HasNeighbor(f) {
		return nil, nil, fmt.Errorf("%s – %s: %w", v, f, ErrNotNeighbors)
	}

	return v, f, nil
}

// variableToFactor computes μ(v→f) = Π_{g≠f} μ(g→v); scalar 1 at a leaf.
func (e *Engine) variableToFactor(v, f *factorgraph.Node) (*tensor.Tensor, error) {
	key := Edge{From: v.Name, To: f.Name}
	if m, ok := e.lookup(key); ok {
		return m, nil
	}

	acc := tensor.Identity()
	for _, g := range v.Neighbors() {
		if g == f {
			continue
		}
		m, err := e.factorToVariable(g, v)
		if err != nil {
			return nil, err
		}
		if acc, err = combine(acc, m); err != nil {
			return nil, fmt.Errorf("message %s: %w", key, err)
		}
	}

	e.store(key, VariableToFactor, acc)

	return acc, nil
}

// factorToVariable computes μ(f→v) = Σ_{¬v} ψ_f · Π_{u≠v} μ(u→f).
func (e *Engine) factorToVariable(f, v *factorgraph.Node) (*tensor.Tensor, error) {
	key := Edge{From: f.Name, To: v.Name}
	if m, ok := e.lookup(key); ok {
		return m, nil
	}

	acc, err := f.Distribution()
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", key, err)
	}
	for _, u := range f.Neighbors() {
		if u == v {
			continue
		}
		m, err := e.variableToFactor(u, f)
		if err != nil {
			return nil, err
		}
		if acc, err = tensor.Multiply(acc, m); err != nil {
			return nil, fmt.Errorf("message %s: %w", key, err)
		}
	}

	out, err := tensor.SumOut(acc, v.Name)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", key, err)
	}
	e.store(key, FactorToVariable, out)

	return out, nil
}

// combine multiplies two messages over the same variable, treating a
// rank-0 operand as a scale factor.
func combine(acc, m *tensor.Tensor) (*tensor.Tensor, error) {
	if acc.IsScalar() {
		return tensor.Multiply(m, acc)
	}

	return tensor.Multiply(acc, m)
}

func (e *Engine) lookup(key Edge) (*tensor.Tensor, bool) {
	m, ok := e.cache[key]
	if ok && e.hooks.OnCacheHit != nil {
		e.hooks.OnCacheHit(Event{SessionID: e.id, Edge: key, Direction: e.dirs[key], Value: m})
	}

	return m, ok
}

func (e *Engine) store(key Edge, dir Direction, m *tensor.Tensor) {
	e.cache[key] = m
	e.dirs[key] = dir
	e.logger.Debug("message computed", "from", key.From, "to", key.To, "direction", dir, "value", m)
	if e.hooks.OnMessage != nil {
		e.hooks.OnMessage(Event{SessionID: e.id, Edge: key, Direction: dir, Value: m})
	}
}

// CacheLen returns the number of memoized directed-edge messages.
func (e *Engine) CacheLen() int { return len(e.cache) }

// Message returns the cached message along from→to, if any.
func (e *Engine) Message(from, to string) (*tensor.Tensor, bool) {
	m, ok := e.cache[Edge{From: from, To: to}]
	return m, ok
}

// Messages returns a snapshot of the cache sorted by (From, To).
func (e *Engine) Messages() []Message {
	out := make([]Message, 0, len(e.cache))
	for k, v := range e.cache {
		out = append(out, Message{Edge: k, Direction: e.dirs[k], Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// Reset discards every cached message.
func (e *Engine) Reset() {
	e.cache = make(map[Edge]*tensor.Tensor)
	e.dirs = make(map[Edge]Direction)
}
