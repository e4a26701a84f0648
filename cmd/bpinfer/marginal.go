package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/beliefprop/tensor"
)

func newMarginalCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marginal [variable...]",
		Short: "Print normalized marginals",
		Long:  `Computes the marginal of each named variable, or of every variable when none is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlag(keyFormat, cmd.Flags().Lookup(keyFormat)); err != nil {
				return fmt.Errorf("bind --%s: %w", keyFormat, err)
			}
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			return runMarginal(cmd, s, args, v.GetString(keyFormat))
		},
	}
	cmd.Flags().StringP(keyFormat, "o", "text", "output format: text|yaml")

	return cmd
}

func runMarginal(cmd *cobra.Command, s *session, names []string, format string) error {
	if len(names) == 0 {
		names = s.graph.Variables()
	}
	margs := make([]*tensor.Tensor, len(names))
	for i, n := range names {
		m, err := s.engine.Marginal(n)
		if err != nil {
			s.logger.Error("marginal", "variable", n, "error", err)
			return err
		}
		margs[i] = m
	}

	if err := writeMarginals(cmd.OutOrStdout(), format, names, margs); err != nil {
		return err
	}

	return s.close(cmd)
}

// writeMarginals renders marginals as an aligned table or a YAML mapping.
func writeMarginals(w io.Writer, format string, names []string, margs []*tensor.Tensor) error {
	switch format {
	case "yaml":
		doc := make(map[string][]float64, len(names))
		for i, n := range names {
			doc[n] = margs[i].Values()
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VARIABLE\tSTATE\tP")
		for i, n := range names {
			for state, p := range margs[i].Values() {
				fmt.Fprintf(tw, "%s\t%d\t%.6f\n", n, state, p)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
}
