package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/internal/tui"
	"github.com/anggasct/crossing/pkg/hal"
	"github.com/anggasct/crossing/pkg/observers"
	"github.com/anggasct/crossing/pkg/sim"
)

func (a *app) simCmd() *cobra.Command {
	var (
		logFile string
		tick    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run an interactive simulation in the terminal",
		Long: `Sim runs the controller against virtual sensors and shows both signal
heads and the pedestrian indicator. Press p, n or e to toggle the
pedestrian button, the north/south car sensor or the east/west car sensor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.DiscardHandler)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				if logger, err = a.cfg.NewLogger(f); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sensors := sim.NewSensors(0)
			model := tui.NewModel(sensors, cancel)
			p := tea.NewProgram(model, tea.WithAltScreen())

			ctrl, err := crossing.NewController(sensors, tui.NewPanel(p.Send), hal.SleepDelay{Tick: tick},
				crossing.WithObserver(tui.NewObserver(p.Send)),
				crossing.WithObserver(observers.NewLoggingObserver(logger)),
			)
			if err != nil {
				return err
			}

			done := make(chan error, 1)
			go func() {
				done <- ctrl.Run(ctx)
			}()

			_, err = p.Run()
			cancel()
			<-done
			return err
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	cmd.Flags().DurationVar(&tick, "tick", crossing.TickDuration, "wall-clock length of one tick")
	return cmd
}
