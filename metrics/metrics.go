// Package metrics exports sum-product engine activity as Prometheus
// counters by subscribing to sumproduct.Hooks.
//
//	reg := prometheus.NewRegistry()
//	c, _ := metrics.NewCollector(reg)
//	e := sumproduct.New(g, sumproduct.WithHooks(c.Hooks()))
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/beliefprop/sumproduct"
)

// Namespace prefixes every metric name.
const Namespace = "beliefprop"

// ErrNilRegisterer indicates NewCollector was given no registerer.
var ErrNilRegisterer = errors.New("metrics: nil registerer")

// Collector holds the engine counters.
type Collector struct {
	messages  *prometheus.CounterVec
	cacheHits *prometheus.CounterVec
	marginals *prometheus.CounterVec
}

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	c := &Collector{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "messages_computed_total",
				Help:      "Messages computed, by direction.",
			},
			[]string{"direction"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cache_hits_total",
				Help:      "Memoized messages reused, by direction.",
			},
			[]string{"direction"},
		),
		marginals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "marginals_total",
				Help:      "Marginals computed, by variable.",
			},
			[]string{"variable"},
		),
	}
	for _, col := range []prometheus.Collector{c.messages, c.cacheHits, c.marginals} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Hooks returns engine hooks that increment the counters. The returned
// hooks chain to next, so existing observers keep working.
func (c *Collector) Hooks(next ...sumproduct.Hooks) sumproduct.Hooks {
	var chained sumproduct.Hooks
	if len(next) > 0 {
		chained = next[0]
	}

	return sumproduct.Hooks{
		OnMessage: func(ev sumproduct.Event) {
			c.messages.WithLabelValues(ev.Direction.String()).Inc()
			if chained.OnMessage != nil {
				chained.OnMessage(ev)
			}
		},
		OnCacheHit: func(ev sumproduct.Event) {
			c.cacheHits.WithLabelValues(ev.Direction.String()).Inc()
			if chained.OnCacheHit != nil {
				chained.OnCacheHit(ev)
			}
		},
		OnMarginal: func(ev sumproduct.MarginalEvent) {
			c.marginals.WithLabelValues(ev.Variable).Inc()
			if chained.OnMarginal != nil {
				chained.OnMarginal(ev)
			}
		},
	}
}

// Messages returns the counter for one direction.
func (c *Collector) Messages(d sumproduct.Direction) prometheus.Counter {
	return c.messages.WithLabelValues(d.String())
}

// CacheHits returns the cache-hit counter for one direction.
func (c *Collector) CacheHits(d sumproduct.Direction) prometheus.Counter {
	return c.cacheHits.WithLabelValues(d.String())
}

// Marginals returns the marginal counter for one variable.
func (c *Collector) Marginals(variable string) prometheus.Counter {
	return c.marginals.WithLabelValues(variable)
}
