package crossing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Controller drives one intersection through the phase table. It owns the
// current phase and is meant to be used from a single goroutine.
type Controller struct {
	id        uuid.UUID
	table     Table
	phase     Phase
	steps     uint64
	in        InputSource
	out       OutputSink
	delay     Delayer
	init      Initializer
	observers *ObserverManager
	now       func() time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithObserver registers an observer before the first step
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observers.AddObserver(observer)
	}
}

// WithInitializer sets the device bring-up Run performs before looping
func WithInitializer(init Initializer) Option {
	return func(c *Controller) {
		c.init = init
	}
}

// WithID overrides the generated controller id
func WithID(id uuid.UUID) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// WithClock sets the time source used to stamp observer events
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a controller in the initial phase. The compiled-in
// table is validated here, so a controller never runs a defective table.
func NewController(in InputSource, out OutputSink, delay Delayer, opts ...Option) (*Controller, error) {
	switch {
	case in == nil:
		return nil, NewConfigurationError("Controller", "no input source")
	case out == nil:
		return nil, NewConfigurationError("Controller", "no output sink")
	case delay == nil:
		return nil, NewConfigurationError("Controller", "no delayer")
	}

	c := &Controller{
		id:        uuid.New(),
		table:     DefaultTable(),
		phase:     Initial,
		in:        in,
		out:       out,
		delay:     delay,
		observers: NewObserverManager(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.table.Validate(); err != nil {
		return nil, fmt.Errorf("controller %s: %w", c.id, err)
	}
	return c, nil
}

// ID returns the controller's run identifier
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Phase returns the phase whose outputs the next step will apply
func (c *Controller) Phase() Phase {
	return c.phase
}

// Steps returns the number of completed steps
func (c *Controller) Steps() uint64 {
	return c.steps
}

// Table returns the phase table the controller runs
func (c *Controller) Table() Table {
	return c.table
}

// AddObserver adds an observer
func (c *Controller) AddObserver(observer Observer) {
	c.observers.AddObserver(observer)
}

// RemoveObserver removes an observer
func (c *Controller) RemoveObserver(observer Observer) {
	c.observers.RemoveObserver(observer)
}

// Step runs one iteration: sample the sensors, apply the current phase's
// outputs, hold them for the dwell time, then move to the successor the
// sampled vector selects. The order is fixed so the decision never uses a
// sample older than one dwell.
func (c *Controller) Step() *StepResult {
	c.steps++
	spec := c.table[c.phase]
	in := c.in.Read() & InputMask

	result := &StepResult{
		Step:   c.steps,
		From:   c.phase,
		Input:  in,
		Lights: spec.Lights,
		Walk:   spec.Walk,
		Dwell:  spec.Dwell,
	}

	if err := c.out.Write(spec.Lights, spec.Walk); err != nil {
		result.Err = NewOutputError(c.phase, spec.Lights, spec.Walk, err)
		c.observers.NotifyError(ErrorEvent{
			ControllerID: c.id,
			Step:         c.steps,
			Phase:        c.phase,
			Err:          result.Err,
		})
	}

	c.observers.NotifyPhaseEnter(PhaseEvent{
		ControllerID: c.id,
		Step:         c.steps,
		Phase:        c.phase,
		Input:        in,
		Lights:       spec.Lights,
		Walk:         spec.Walk,
		Dwell:        spec.Dwell,
		Time:         c.now(),
	})

	c.delay.Wait(spec.Dwell)

	result.To = c.table.Next(c.phase, in)
	c.phase = result.To

	c.observers.NotifyTransition(TransitionEvent{
		ControllerID: c.id,
		Step:         c.steps,
		From:         result.From,
		To:           result.To,
		Input:        in,
		Time:         c.now(),
	})

	return result
}

// Run brings the devices up and steps until ctx is done. Cancellation is
// checked between steps only; a dwell in progress always completes. Run
// returns the initializer's error or ctx.Err().
func (c *Controller) Run(ctx context.Context) error {
	if c.init != nil {
		if err := c.init.Init(); err != nil {
			return fmt.Errorf("initializing devices: %w", err)
		}
	}

	c.observers.NotifyControllerStarted(LifecycleEvent{
		ControllerID: c.id,
		Phase:        c.phase,
		Steps:        c.steps,
	})

	var err error
	for {
		if err = ctx.Err(); err != nil {
			break
		}
		c.Step()
	}

	c.observers.NotifyControllerStopped(LifecycleEvent{
		ControllerID: c.id,
		Phase:        c.phase,
		Steps:        c.steps,
		Reason:       err,
	})
	return err
}

// RunSteps executes exactly n steps without bring-up and returns their results.
func (c *Controller) RunSteps(n int) []*StepResult {
	results := make([]*StepResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, c.Step())
	}
	return results
}
