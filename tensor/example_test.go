package tensor_test

import (
	"fmt"

	"github.com/katalvlaran/beliefprop/tensor"
)

// ExampleMultiply builds the joint p(h2, h1) = p(h2|h1)·p(h1) and projects
// it onto h2.
func ExampleMultiply() {
	prior, _ := tensor.Vector("h1", 0.2, 0.8)
	cond, _ := tensor.New([]float64{0.5, 0.2, 0.5, 0.8}, []int{2, 2}, "h2", "h1")

	joint, err := tensor.Multiply(cond, prior)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	marg, _ := tensor.SumOut(joint, "h2")
	fmt.Printf("axes=%v\n", joint.Axes())
	fmt.Printf("p(h2)=[%.2f %.2f]\n", marg.Values()[0], marg.Values()[1])
	// Output:
	// axes=[h2 h1]
	// p(h2)=[0.26 0.74]
}

// ExampleIsValidConditional checks that every column of p(x|y) sums to one.
func ExampleIsValidConditional() {
	cond, _ := tensor.New([]float64{0.6, 0.1, 0.4, 0.9}, []int{2, 2}, "x", "y")

	overX, _ := tensor.IsValidConditional(cond, "x")
	overY, _ := tensor.IsValidConditional(cond, "y")
	fmt.Println(overX, overY)
	// Output:
	// true false
}
