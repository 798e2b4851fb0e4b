package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/visualization"
)

func (a *app) graphCmd() *cobra.Command {
	var (
		output  string
		svg     bool
		rankdir string
		holds   bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the phase table as a Graphviz graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := visualization.DefaultDOTOptions()
			options.RankDirection = rankdir
			options.ShowHolds = holds
			generator := visualization.NewDOTGenerator(crossing.DefaultTable(), options)

			var (
				content string
				err     error
			)
			if svg {
				content, err = generator.GenerateSVG()
			} else {
				content, err = generator.Generate()
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write graph: %w", err)
			}
			a.logger.Info("graph written", "file", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with the dot command")
	cmd.Flags().StringVar(&rankdir, "rankdir", "TB", "graph direction (TB, LR, BT, RL)")
	cmd.Flags().BoolVar(&holds, "holds", true, "draw edges where a phase holds itself")
	return cmd
}
