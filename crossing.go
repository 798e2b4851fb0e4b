// Package crossing implements a table-driven controller for a single road
// intersection with one pedestrian crossing.
//
// The intersection is a Moore machine of ten phases. Each phase fixes the
// traffic light word, the pedestrian indicator word, a dwell time in 10 ms
// ticks, and a successor for every one of the eight sensor vectors. A
// Controller repeats one step forever:
//
//	read sensors -> write outputs -> wait dwell -> select successor
//
// Devices are reached through the InputSource, OutputSink, Delayer and
// Initializer interfaces; pkg/hal provides GPIO and wall-clock
// implementations and pkg/sim provides scripted and virtual ones.
//
// Basic usage:
//
//	ctrl, err := crossing.NewController(sensors, lamps, hal.SleepDelay{},
//		crossing.WithObserver(observers.NewLoggingObserver(slog.Default())))
//	if err != nil {
//		return err
//	}
//	return ctrl.Run(ctx)
package crossing
