package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/beliefprop/factorgraph"
	"github.com/katalvlaran/beliefprop/tensor"
)

var (
	// ErrEmptyModel indicates a document with no factors.
	ErrEmptyModel = errors.New("model: no factors")

	// ErrNoAxes indicates a factor entry without axes.
	ErrNoAxes = errors.New("model: factor has no axes")

	// ErrNoValues indicates a factor entry without values.
	ErrNoValues = errors.New("model: factor has no values")
)

// Factor is one factor entry of a Document.
type Factor struct {
	Name   string   `yaml:"name" json:"name"`
	Axes   []string `yaml:"axes" json:"axes"`
	Values any      `yaml:"values" json:"values"`
}

// Document is the decoded form of a model file.
type Document struct {
	Name      string   `yaml:"name,omitempty" json:"name,omitempty"`
	Variables []string `yaml:"variables,omitempty" json:"variables,omitempty"`
	Factors   []Factor `yaml:"factors" json:"factors"`
}

// Parse decodes a YAML or JSON document and checks its basic structure.
// Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyModel
		}
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

func (d *Document) validate() error {
	if len(d.Factors) == 0 {
		return ErrEmptyModel
	}
	for i, f := range d.Factors {
		if len(f.Axes) == 0 {
			return fmt.Errorf("factor #%d %q: %w", i, f.Name, ErrNoAxes)
		}
		if f.Values == nil {
			return fmt.Errorf("factor #%d %q: %w", i, f.Name, ErrNoValues)
		}
	}

	return nil
}

// Topology returns the structural part of the document.
func (d *Document) Topology() factorgraph.Topology {
	top := factorgraph.Topology{Variables: d.Variables}
	if len(top.Variables) == 0 {
		seen := make(map[string]struct{})
		for _, f := range d.Factors {
			for _, a := range f.Axes {
				if _, ok := seen[a]; !ok {
					seen[a] = struct{}{}
					top.Variables = append(top.Variables, a)
				}
			}
		}
	}
	for _, f := range d.Factors {
		top.Factors = append(top.Factors, factorgraph.FactorSpec{Name: f.Name, Variables: f.Axes})
	}

	return top
}

// Distributions converts every factor's values into a labeled tensor.
func (d *Document) Distributions() (map[string]*tensor.Tensor, error) {
	out := make(map[string]*tensor.Tensor, len(d.Factors))
	for _, f := range d.Factors {
		t, err := tensor.FromNested(f.Values, f.Axes...)
		if err != nil {
			return nil, fmt.Errorf("factor %q: %w", f.Name, err)
		}
		out[f.Name] = t
	}

	return out, nil
}

// Graph builds the topology and assigns the distributions.
func (d *Document) Graph() (*factorgraph.Graph, error) {
	g, err := factorgraph.Build(d.Topology())
	if err != nil {
		return nil, err
	}
	dists, err := d.Distributions()
	if err != nil {
		return nil, err
	}
	if err := g.AssignDistributions(dists); err != nil {
		return nil, err
	}

	return g, nil
}

// FromGraph captures an assigned graph as a Document, with each table
// written as nested lists.
func FromGraph(name string, g *factorgraph.Graph) (*Document, error) {
	doc := &Document{Name: name, Variables: g.Variables()}
	for _, f := range g.Factors() {
		t, err := f.Distribution()
		if err != nil {
			return nil, err
		}
		doc.Factors = append(doc.Factors, Factor{Name: f.Name, Axes: t.Axes(), Values: Nest(t)})
	}

	return doc, nil
}

// Nest converts a tensor's flat values into nested lists, one level per axis.
// A scalar is returned as a bare float64.
func Nest(t *tensor.Tensor) any {
	vals := t.Values()
	shape := t.Shape()
	if len(shape) == 0 {
		return vals[0]
	}

	var rec func(depth, off, stride int) any
	rec = func(depth, off, stride int) any {
		n := shape[depth]
		inner := stride / n
		if depth == len(shape)-1 {
			return append([]float64(nil), vals[off:off+n]...)
		}
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = rec(depth+1, off+i*inner, inner)
		}
		return out
	}

	return rec(0, 0, len(vals))
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("model: encode: %w", err)
	}

	return enc.Close()
}
