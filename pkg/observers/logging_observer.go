// Package observers provides observers for monitoring an intersection controller
package observers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/anggasct/crossing"
)

// LoggingObserver writes controller activity to a structured logger.
// Phase changes and lifecycle events are logged at info, held phases and
// output details at debug, failures at error.
type LoggingObserver struct {
	crossing.BaseObserver

	logger *slog.Logger
	mutex  sync.RWMutex
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// SetLogger replaces the logger
func (o *LoggingObserver) SetLogger(logger *slog.Logger) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.logger = logger
}

func (o *LoggingObserver) log(level slog.Level, msg string, attrs ...slog.Attr) {
	o.mutex.RLock()
	logger := o.logger
	o.mutex.RUnlock()

	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// OnPhaseEnter logs the outputs applied for a phase
func (o *LoggingObserver) OnPhaseEnter(ev crossing.PhaseEvent) {
	o.log(slog.LevelDebug, "outputs applied",
		slog.String("controller", ev.ControllerID.String()),
		slog.Uint64("step", ev.Step),
		slog.String("phase", ev.Phase.String()),
		slog.String("input", ev.Input.String()),
		slog.String("lights", ev.Lights.Lights().String()),
		slog.String("walk", ev.Walk.Indicator().String()),
		slog.Duration("dwell", ev.Dwell.Duration()),
	)
}

// OnTransition logs phase changes
func (o *LoggingObserver) OnTransition(ev crossing.TransitionEvent) {
	level, msg := slog.LevelInfo, "phase changed"
	if ev.From == ev.To {
		level, msg = slog.LevelDebug, "phase held"
	}
	o.log(level, msg,
		slog.String("controller", ev.ControllerID.String()),
		slog.Uint64("step", ev.Step),
		slog.String("from", ev.From.String()),
		slog.String("to", ev.To.String()),
		slog.String("input", ev.Input.String()),
	)
}

// OnError logs failures
func (o *LoggingObserver) OnError(ev crossing.ErrorEvent) {
	o.log(slog.LevelError, "controller error",
		slog.String("controller", ev.ControllerID.String()),
		slog.Uint64("step", ev.Step),
		slog.String("phase", ev.Phase.String()),
		slog.String("error", ev.Err.Error()),
	)
}

// OnControllerStarted logs the start of a run
func (o *LoggingObserver) OnControllerStarted(ev crossing.LifecycleEvent) {
	o.log(slog.LevelInfo, "controller started",
		slog.String("controller", ev.ControllerID.String()),
		slog.String("phase", ev.Phase.String()),
	)
}

// OnControllerStopped logs the end of a run
func (o *LoggingObserver) OnControllerStopped(ev crossing.LifecycleEvent) {
	attrs := []slog.Attr{
		slog.String("controller", ev.ControllerID.String()),
		slog.String("phase", ev.Phase.String()),
		slog.Uint64("steps", ev.Steps),
	}
	if ev.Reason != nil {
		attrs = append(attrs, slog.String("reason", ev.Reason.Error()))
	}
	o.log(slog.LevelInfo, "controller stopped", attrs...)
}
