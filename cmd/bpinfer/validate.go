package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/beliefprop/tensor"
)

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the model's structure and tables",
		Long: `Builds the factor graph, checks axis sets and variable dimensions, and reports
for each factor whether its table is a joint or a conditional over its first axis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			return runValidate(cmd, s)
		},
	}
}

func runValidate(cmd *cobra.Command, s *session) error {
	out := cmd.OutOrStdout()
	g := s.graph
	fmt.Fprintf(out, "model %q: %d variables, %d factors, %d edges\n",
		s.doc.Name, len(g.Variables()), len(g.Factors()), g.EdgeCount())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FACTOR\tAXES\tKIND")
	for _, f := range g.Factors() {
		t, err := f.Distribution()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%v\t%s\n", f.Name, t.Axes(), classify(t, s.epsilon))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return s.close(cmd)
}

// classify names what a table is, within tolerance eps.
func classify(t *tensor.Tensor, eps float64) string {
	opt := tensor.WithEpsilon(eps)
	if tensor.IsValidJoint(t, opt) {
		return "joint"
	}
	axes := t.Axes()
	if ok, _ := tensor.IsValidConditional(t, axes[0], opt); ok {
		return "conditional over " + axes[0]
	}

	return "unnormalized"
}
