// Command bpinfer loads a factor graph model file and prints exact
// marginals computed with sum-product message passing.
//
//	bpinfer validate -m model.yaml
//	bpinfer marginal -m model.yaml v2 h1
//	bpinfer messages -m model.yaml v2
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
