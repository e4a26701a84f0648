package sumproduct_test

import (
	"fmt"

	"github.com/katalvlaran/beliefprop/factorgraph"
	"github.com/katalvlaran/beliefprop/sumproduct"
	"github.com/katalvlaran/beliefprop/tensor"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleEngine_Marginal
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Two hidden states h1 → h2, each emitting an observation v1, v2.
//	  p(h1)    = [0.2 0.8]
//	  p(h2|h1) = [[0.5 0.2] [0.5 0.8]]
//	  p(v|h)   = [[0.6 0.1] [0.4 0.9]]
//
// Complexity: O(E) messages, each O(table size).
func ExampleEngine_Marginal() {
	g, _ := factorgraph.Build(factorgraph.Topology{
		Variables: []string{"h1", "h2", "v1", "v2"},
		Factors: []factorgraph.FactorSpec{
			{Name: "p(h1)", Variables: []string{"h1"}},
			{Name: "p(h2|h1)", Variables: []string{"h2", "h1"}},
			{Name: "p(v1|h1)", Variables: []string{"v1", "h1"}},
			{Name: "p(v2|h2)", Variables: []string{"v2", "h2"}},
		},
	})
	prior, _ := tensor.Vector("h1", 0.2, 0.8)
	trans, _ := tensor.New([]float64{0.5, 0.2, 0.5, 0.8}, []int{2, 2}, "h2", "h1")
	emit1, _ := tensor.New([]float64{0.6, 0.1, 0.4, 0.9}, []int{2, 2}, "v1", "h1")
	emit2, _ := tensor.New([]float64{0.6, 0.1, 0.4, 0.9}, []int{2, 2}, "v2", "h2")
	if err := g.AssignDistributions(map[string]*tensor.Tensor{
		"p(h1)": prior, "p(h2|h1)": trans, "p(v1|h1)": emit1, "p(v2|h2)": emit2,
	}); err != nil {
		fmt.Println("error:", err)
		return
	}

	e := sumproduct.New(g)
	m, err := e.Marginal("v2")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	vals := m.Values()
	fmt.Printf("p(v2)=[%.2f %.2f]\n", vals[0], vals[1])
	fmt.Println("cached messages:", e.CacheLen())
	// Output:
	// p(v2)=[0.23 0.77]
	// cached messages: 7
}
