package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMessagesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "messages [variable...]",
		Short: "Dump the memoized messages",
		Long: `Computes the marginals of the named variables (all when none is given) and
prints every cached message, one directed edge per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, v)
			if err != nil {
				return err
			}
			return runMessages(cmd, s, args)
		},
	}
}

func runMessages(cmd *cobra.Command, s *session, names []string) error {
	if _, err := s.engine.Marginals(names...); err != nil {
		s.logger.Error("marginals", "error", err)
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tDIRECTION\tVALUE")
	for _, m := range s.engine.Messages() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", m.From, m.To, m.Direction, m.Value.Values())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d messages\n", s.engine.CacheLen())

	return s.close(cmd)
}
