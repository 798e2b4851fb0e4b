package crossing

import (
	"errors"
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex       sync.RWMutex
	Enters      []PhaseEvent
	Transitions []TransitionEvent
	Errors      []ErrorEvent
	Started     []LifecycleEvent
	Stopped     []LifecycleEvent
}

func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnPhaseEnter(ev PhaseEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Enters = append(o.Enters, ev)
}

func (o *TestObserver) OnTransition(ev TransitionEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = append(o.Transitions, ev)
}

func (o *TestObserver) OnError(ev ErrorEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, ev)
}

func (o *TestObserver) OnControllerStarted(ev LifecycleEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started = append(o.Started, ev)
}

func (o *TestObserver) OnControllerStopped(ev LifecycleEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped = append(o.Stopped, ev)
}

func (o *TestObserver) TransitionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Transitions)
}

// fakeInputs returns the queued vectors in order, then repeats the last one.
type fakeInputs struct {
	queue []Input
	reads int
}

func inputs(vs ...Input) *fakeInputs {
	return &fakeInputs{queue: vs}
}

func (f *fakeInputs) Read() Input {
	f.reads++
	if len(f.queue) == 0 {
		return 0
	}
	v := f.queue[0]
	if len(f.queue) > 1 {
		f.queue = f.queue[1:]
	}
	return v
}

type write struct {
	Lights LightPattern
	Walk   PedestrianPattern
}

// fakeOutputs records every write and can be told to fail.
type fakeOutputs struct {
	writes []write
	fail   error
}

func (f *fakeOutputs) Write(lights LightPattern, walk PedestrianPattern) error {
	f.writes = append(f.writes, write{lights, walk})
	return f.fail
}

// fakeDelay counts calls and ticks.
type fakeDelay struct {
	calls int
	ticks []Ticks
	total Ticks
}

func (f *fakeDelay) Wait(ticks Ticks) {
	f.calls++
	f.ticks = append(f.ticks, ticks)
	f.total += ticks
}

type fakeInit struct {
	calls int
	err   error
}

func (f *fakeInit) Init() error {
	f.calls++
	return f.err
}

var errDevice = errors.New("device unplugged")

// newTestController builds a controller at the given phase on fakes.
func newTestController(t *testing.T, start Phase, in InputSource, opts ...Option) (*Controller, *fakeOutputs, *fakeDelay) {
	t.Helper()
	out := &fakeOutputs{}
	delay := &fakeDelay{}
	c, err := NewController(in, out, delay, opts...)
	if err != nil {
		t.Fatalf("Expected no error creating controller, got: %v", err)
	}
	c.phase = start
	return c, out, delay
}

// AssertPhase checks the controller's current phase
func AssertPhase(t *testing.T, c *Controller, expected Phase) {
	t.Helper()
	if c.Phase() != expected {
		t.Errorf("Expected phase %s, got %s", expected, c.Phase())
	}
}
