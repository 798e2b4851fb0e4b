package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/observers"
	"github.com/anggasct/crossing/pkg/sim"
)

func (a *app) replayCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Replay scripted sensor input on a virtual clock",
		Long: `Replay feeds the input vectors of a script to the controller, one per
step, without waiting in real time. When the script runs out its last
vector is held. The trace, the time spent per phase and any runtime check
failures are printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := sim.LoadScript(args[0])
			if err != nil {
				return err
			}
			if steps <= 0 {
				steps = script.Len()
			}

			clock := sim.NewClock(time.Unix(0, 0).UTC())
			metrics := observers.NewMetricsObserver()
			validation := observers.NewValidationObserver(crossing.DefaultTable())

			ctrl, err := crossing.NewController(script, sim.NewRecorder(), clock,
				crossing.WithClock(clock.Now),
				crossing.WithObserver(observers.NewLoggingObserver(a.logger)),
				crossing.WithObserver(metrics),
				crossing.WithObserver(validation),
			)
			if err != nil {
				return err
			}

			results := ctrl.RunSteps(steps)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s: %d steps", script.Name(), len(results))))
			fmt.Fprintln(out, renderTrace(results))
			fmt.Fprintln(out, renderMetrics(metrics.Snapshot()))

			if violations := validation.GetViolations(); len(violations) > 0 {
				return fmt.Errorf("%d runtime check failures:\n%s", len(violations), strings.Join(violations, "\n"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 0, "number of steps (default: one per script vector)")
	return cmd
}
