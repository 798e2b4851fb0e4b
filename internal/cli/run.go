package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/hal"
	"github.com/anggasct/crossing/pkg/observers"
)

func (a *app) runCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the intersection over GPIO until interrupted",
		Long: `Run opens the GPIO lines named in the [gpio] section of the config file,
switches every lamp off and then cycles through the phase table forever.
SIGINT or SIGTERM stops the controller after the current dwell and turns
the lamps off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev, err := hal.OpenGPIO(a.cfg.GPIO)
			if err != nil {
				return err
			}

			opts := []crossing.Option{
				crossing.WithInitializer(dev),
				crossing.WithObserver(observers.NewLoggingObserver(a.logger)),
			}
			if validate {
				v := observers.NewValidationObserver(crossing.DefaultTable())
				v.OnViolation(func(msg string) {
					a.logger.Error("runtime check failed", slog.String("violation", msg))
				})
				opts = append(opts, crossing.WithObserver(v))
			}

			ctrl, err := crossing.NewController(dev, dev, hal.SleepDelay{}, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = ctrl.Run(ctx)
			if herr := dev.Halt(); herr != nil {
				a.logger.Error("failed to switch lamps off", slog.String("error", herr.Error()))
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", true, "check every step against the phase table")
	return cmd
}
