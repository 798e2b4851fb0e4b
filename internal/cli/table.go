package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anggasct/crossing"
)

func (a *app) tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the phase table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tb := crossing.DefaultTable()
			if err := tb.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPhaseTable(tb))
			fmt.Fprintf(cmd.OutOrStdout(), "clearance: %v\n", tb.ClearanceChain())
			return nil
		},
	}
}
