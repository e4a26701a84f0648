package sumproduct_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/beliefprop/factorgraph"
	"github.com/katalvlaran/beliefprop/sumproduct"
	"github.com/katalvlaran/beliefprop/tensor"
)

const tol = 1e-9

// chainGraph builds h1 → h2, h1 → v1, h2 → v2 with the reference tables.
func chainGraph(t *testing.T) *factorgraph.Graph {
	t.Helper()
	g, err := factorgraph.Build(factorgraph.Topology{
		Variables: []string{"h1", "h2", "v1", "v2"},
		Factors: []factorgraph.FactorSpec{
			{Name: "p(h1)", Variables: []string{"h1"}},
			{Name: "p(h2|h1)", Variables: []string{"h2", "h1"}},
			{Name: "p(v1|h1)", Variables: []string{"v1", "h1"}},
			{Name: "p(v2|h2)", Variables: []string{"v2", "h2"}},
		},
	})
	require.NoError(t, err)

	mk := func(values []float64, shape []int, axes ...string) *tensor.Tensor {
		x, err := tensor.New(values, shape, axes...)
		require.NoError(t, err)
		return x
	}
	require.NoError(t, g.AssignDistributions(map[string]*tensor.Tensor{
		"p(h1)":    mk([]float64{0.2, 0.8}, []int{2}, "h1"),
		"p(h2|h1)": mk([]float64{0.5, 0.2, 0.5, 0.8}, []int{2, 2}, "h2", "h1"),
		"p(v1|h1)": mk([]float64{0.6, 0.1, 0.4, 0.9}, []int{2, 2}, "v1", "h1"),
		"p(v2|h2)": mk([]float64{0.6, 0.1, 0.4, 0.9}, []int{2, 2}, "v2", "h2"),
	}))

	return g
}

type ChainSuite struct {
	suite.Suite
	e *sumproduct.Engine
}

func (s *ChainSuite) SetupTest() {
	s.e = sumproduct.New(chainGraph(s.T()))
}

func (s *ChainSuite) TestMarginalRoot() {
	m, err := s.e.Marginal("h1")
	s.Require().NoError(err)
	s.Equal([]string{"h1"}, m.Axes())
	s.InDeltaSlice([]float64{0.2, 0.8}, m.Values(), tol)
}

func (s *ChainSuite) TestMarginalLeaf() {
	m, err := s.e.Marginal("v2")
	s.Require().NoError(err)
	s.InDeltaSlice([]float64{0.23, 0.77}, m.Values(), tol)

	h2, err := s.e.Marginal("h2")
	s.Require().NoError(err)
	s.InDeltaSlice([]float64{0.26, 0.74}, h2.Values(), tol)

	v1, err := s.e.Marginal("v1")
	s.Require().NoError(err)
	s.InDeltaSlice([]float64{0.2, 0.8}, v1.Values(), tol)
}

func (s *ChainSuite) TestMemoizationCount() {
	first, err := s.e.Marginal("v2")
	s.Require().NoError(err)
	s.Equal(7, s.e.CacheLen(), "every directed edge toward v2 is computed once")

	second, err := s.e.Marginal("v2")
	s.Require().NoError(err)
	s.Equal(7, s.e.CacheLen(), "a repeated query adds no entries")
	s.Equal(first.Values(), second.Values())

	leaf, ok := s.e.Message("v1", "p(v1|h1)")
	s.Require().True(ok)
	s.True(leaf.IsScalar(), "a leaf variable sends the scalar identity")
	s.Equal(1.0, leaf.Sum())

	_, ok = s.e.Message("h1", "p(h1)")
	s.False(ok, "edges pointing away from v2 are not explored")
}

func (s *ChainSuite) TestAllMarginalsFillCache() {
	all, err := s.e.Marginals()
	s.Require().NoError(err)
	s.Len(all, 4)
	// h1→p(h1) is never needed: a unary factor sends but never forwards.
	s.Equal(13, s.e.CacheLen(), "two directions per edge, minus the edge into the prior")
	for name, m := range all {
		s.InDelta(1.0, m.Sum(), tol, "marginal of %s must sum to one", name)
	}

	msgs := s.e.Messages()
	s.Len(msgs, 13)
	for i := 1; i < len(msgs); i++ {
		prev, cur := msgs[i-1].Edge, msgs[i].Edge
		s.True(prev.From < cur.From || (prev.From == cur.From && prev.To < cur.To), "messages sorted by edge")
	}

	s.e.Reset()
	s.Zero(s.e.CacheLen())
}

func (s *ChainSuite) TestDirectMessages() {
	m, err := s.e.FactorToVariable("p(h2|h1)", "h2")
	s.Require().NoError(err)
	s.InDeltaSlice([]float64{0.26, 0.74}, m.Values(), tol)

	u, err := s.e.VariableToFactor("h2", "p(v2|h2)")
	s.Require().NoError(err)
	s.InDeltaSlice([]float64{0.26, 0.74}, u.Values(), tol)

	_, err = s.e.VariableToFactor("v1", "p(h1)")
	s.ErrorIs(err, sumproduct.ErrNotNeighbors)
	_, err = s.e.FactorToVariable("nope", "h1")
	s.ErrorIs(err, factorgraph.ErrUnknownFactor)
	_, err = s.e.VariableToFactor("nope", "p(h1)")
	s.ErrorIs(err, factorgraph.ErrUnknownVariable)
}

func (s *ChainSuite) TestUnknownVariable() {
	_, err := s.e.Marginal("zz")
	s.ErrorIs(err, sumproduct.ErrUnknownVariable)

	_, err = s.e.Marginals("h1", "zz")
	s.ErrorIs(err, sumproduct.ErrUnknownVariable)
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainSuite))
}

// TestOrderIndependence asks for v1 and v2 in both orders on fresh engines.
func TestOrderIndependence(t *testing.T) {
	g := chainGraph(t)

	a := sumproduct.New(g)
	v1a, err := a.Marginal("v1")
	require.NoError(t, err)
	v2a, err := a.Marginal("v2")
	require.NoError(t, err)

	b := sumproduct.New(g)
	v2b, err := b.Marginal("v2")
	require.NoError(t, err)
	v1b, err := b.Marginal("v1")
	require.NoError(t, err)

	assert.Equal(t, v1a.Values(), v1b.Values())
	assert.Equal(t, v2a.Values(), v2b.Values())
	assert.Equal(t, a.CacheLen(), b.CacheLen())
}

// TestIsolatedVariable: a declared variable with no factor cannot be marginalized.
func TestIsolatedVariable(t *testing.T) {
	g, err := factorgraph.Build(factorgraph.Topology{
		Variables: []string{"a", "lonely"},
		Factors:   []factorgraph.FactorSpec{{Name: "p(a)", Variables: []string{"a"}}},
	})
	require.NoError(t, err)
	pa, _ := tensor.Vector("a", 0.5, 0.5)
	require.NoError(t, g.AssignDistributions(map[string]*tensor.Tensor{"p(a)": pa}))

	_, err = sumproduct.New(g).Marginal("lonely")
	assert.ErrorIs(t, err, sumproduct.ErrIsolatedVariable)
}

// TestUnassignedDistributions: inference before assignment fails when a
// factor's table is read.
func TestUnassignedDistributions(t *testing.T) {
	g, err := factorgraph.Build(factorgraph.Topology{
		Variables: []string{"a"},
		Factors:   []factorgraph.FactorSpec{{Name: "p(a)", Variables: []string{"a"}}},
	})
	require.NoError(t, err)

	_, err = sumproduct.New(g).Marginal("a")
	assert.ErrorIs(t, err, factorgraph.ErrDistributionUnset)

	_, err = sumproduct.New(nil).Marginal("a")
	assert.ErrorIs(t, err, sumproduct.ErrNilGraph)
}

// TestZeroEvidence: an all-zero table has no normalizable marginal.
func TestZeroEvidence(t *testing.T) {
	g, err := factorgraph.Build(factorgraph.Topology{
		Variables: []string{"a"},
		Factors:   []factorgraph.FactorSpec{{Name: "p(a)", Variables: []string{"a"}}},
	})
	require.NoError(t, err)
	zero, _ := tensor.Vector("a", 0, 0)
	require.NoError(t, g.AssignDistributions(map[string]*tensor.Tensor{"p(a)": zero}))

	_, err = sumproduct.New(g).Marginal("a")
	assert.ErrorIs(t, err, tensor.ErrZeroTotal)
}

// TestHooksAndLogger checks observation of computed and reused messages.
func TestHooksAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	computed := map[sumproduct.Direction]int{}
	hits, marginals := 0, 0
	e := sumproduct.New(chainGraph(t),
		sumproduct.WithLogger(logger),
		sumproduct.WithSessionID("test-session"),
		sumproduct.WithHooks(sumproduct.Hooks{
			OnMessage:  func(ev sumproduct.Event) { computed[ev.Direction]++ },
			OnCacheHit: func(sumproduct.Event) { hits++ },
			OnMarginal: func(ev sumproduct.MarginalEvent) {
				marginals++
				assert.Equal(t, "test-session", ev.SessionID)
			},
		}),
	)
	assert.Equal(t, "test-session", e.SessionID())

	_, err := e.Marginal("v2")
	require.NoError(t, err)
	assert.Equal(t, 4, computed[sumproduct.FactorToVariable])
	assert.Equal(t, 3, computed[sumproduct.VariableToFactor])
	assert.Zero(t, hits)

	_, err = e.Marginal("v2")
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "v2's single incoming message is reused")
	assert.Equal(t, 2, marginals)

	out := buf.String()
	assert.Contains(t, out, "message computed")
	assert.Contains(t, out, "session=test-session")
	assert.Contains(t, out, "direction=factor_to_variable")
}

// valueRecorder keeps the "value" attribute of every debug record it sees.
type valueRecorder struct {
	values []slog.Value
}

func (r *valueRecorder) Enabled(_ context.Context, l slog.Level) bool { return l <= slog.LevelDebug }

func (r *valueRecorder) Handle(_ context.Context, rec slog.Record) error {
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == "value" {
			r.values = append(r.values, a.Value)
		}
		return true
	})
	return nil
}

func (r *valueRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *valueRecorder) WithGroup(string) slog.Handler      { return r }

// TestMessageLogValuesStayTensors: message values reach the handler as
// tensors, so formatting happens only when a record is written.
func TestMessageLogValuesStayTensors(t *testing.T) {
	rec := &valueRecorder{}
	e := sumproduct.New(chainGraph(t), sumproduct.WithLogger(slog.New(rec)))

	_, err := e.Marginal("v2")
	require.NoError(t, err)
	require.Len(t, rec.values, e.CacheLen())
	for _, v := range rec.values {
		require.Equal(t, slog.KindAny, v.Kind())
		_, ok := v.Any().(*tensor.Tensor)
		assert.True(t, ok, "got %T", v.Any())
	}

	var buf bytes.Buffer
	e = sumproduct.New(chainGraph(t), sumproduct.WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	_, err = e.Marginal("v1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `value="(v1:2) [`)
}

// TestGeneratedSessionIDs: engines get distinct identifiers.
func TestGeneratedSessionIDs(t *testing.T) {
	g := chainGraph(t)
	a, b := sumproduct.New(g), sumproduct.New(g)
	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

// randomTree builds a tree-shaped factor graph with unary, pairwise and
// ternary factors and random positive tables.
func randomTree(t *testing.T, r *rand.Rand, n int) (*factorgraph.Graph, []*factorgraph.Node) {
	t.Helper()
	names := make([]string, n)
	dims := make(map[string]int, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
		dims[names[i]] = 2 + r.Intn(2)
	}

	var specs []factorgraph.FactorSpec
	specs = append(specs, factorgraph.FactorSpec{Name: "prior", Variables: []string{names[0]}})
	for i := 1; i < n; i++ {
		parent := names[r.Intn(i)]
		if i%3 == 0 && i+1 < n {
			specs = append(specs, factorgraph.FactorSpec{
				Name:      fmt.Sprintf("f%d", i),
				Variables: []string{names[i], parent, names[i+1]},
			})
			i++
			continue
		}
		specs = append(specs, factorgraph.FactorSpec{Name: fmt.Sprintf("f%d", i), Variables: []string{names[i], parent}})
		if r.Intn(2) == 0 {
			specs = append(specs, factorgraph.FactorSpec{Name: fmt.Sprintf("u%d", i), Variables: []string{names[i]}})
		}
	}

	g, err := factorgraph.Build(factorgraph.Topology{Variables: names, Factors: specs})
	require.NoError(t, err)

	dists := make(map[string]*tensor.Tensor, len(specs))
	for _, sp := range specs {
		shape := make([]int, len(sp.Variables))
		size := 1
		for i, v := range sp.Variables {
			shape[i] = dims[v]
			size *= dims[v]
		}
		vals := make([]float64, size)
		for i := range vals {
			vals[i] = 0.05 + r.Float64()
		}
		x, err := tensor.New(vals, shape, sp.Variables...)
		require.NoError(t, err)
		dists[sp.Name] = x
	}
	require.NoError(t, g.AssignDistributions(dists))

	return g, g.Factors()
}

// bruteForce enumerates every joint assignment and returns exact marginals.
func bruteForce(t *testing.T, g *factorgraph.Graph, factors []*factorgraph.Node) map[string][]float64 {
	t.Helper()
	vars := g.Variables()
	dims := make([]int, len(vars))
	pos := make(map[string]int, len(vars))
	out := make(map[string][]float64, len(vars))
	for i, v := range vars {
		d, err := g.VariableDim(v)
		require.NoError(t, err)
		dims[i] = d
		pos[v] = i
		out[v] = make([]float64, d)
	}

	assign := make([]int, len(vars))
	var total float64
	for {
		p := 1.0
		for _, f := range factors {
			dist, err := f.Distribution()
			require.NoError(t, err)
			idx := make([]int, dist.Rank())
			for k, a := range dist.Axes() {
				idx[k] = assign[pos[a]]
			}
			val, err := dist.At(idx...)
			require.NoError(t, err)
			p *= val
		}
		total += p
		for i, v := range vars {
			out[v][assign[i]] += p
		}

		// odometer increment
		k := len(assign) - 1
		for k >= 0 {
			assign[k]++
			if assign[k] < dims[k] {
				break
			}
			assign[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}

	for _, v := range vars {
		for i := range out[v] {
			out[v][i] /= total
		}
	}

	return out
}

// TestRandomTrees_MatchBruteForce compares every marginal to enumeration.
func TestRandomTrees_MatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		g, factors := randomTree(t, r, 3+r.Intn(5))
		want := bruteForce(t, g, factors)

		e := sumproduct.New(g)
		got, err := e.Marginals()
		require.NoError(t, err)
		for name, m := range got {
			require.InDeltaSlicef(t, want[name], m.Values(), 1e-9, "trial %d variable %s", trial, name)
			ok := tensor.IsValidJoint(m)
			require.True(t, ok, "trial %d: marginal of %s must sum to one", trial, name)
		}
		unary := 0
		for _, f := range factors {
			if f.Degree() == 1 {
				unary++
			}
		}
		require.Equal(t, 2*g.EdgeCount()-unary, e.CacheLen(), "trial %d: one message per needed directed edge", trial)
	}
}
