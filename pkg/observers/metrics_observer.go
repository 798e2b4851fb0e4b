package observers

import (
	"sync"

	"github.com/anggasct/crossing"
)

// Metrics is a point-in-time copy of what a MetricsObserver collected
type Metrics struct {
	Steps       uint64
	Visits      map[crossing.Phase]int
	TicksIn     map[crossing.Phase]crossing.Ticks
	Transitions map[string]int
	Inputs      map[crossing.Input]int
	Errors      int
}

// MetricsObserver collects metrics about controller execution
type MetricsObserver struct {
	crossing.BaseObserver

	steps       uint64
	visits      [crossing.NumPhases]int
	ticksIn     [crossing.NumPhases]crossing.Ticks
	transitions map[string]int
	inputs      [crossing.NumInputs]int
	errorCount  int
	mutex       sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		transitions: make(map[string]int),
	}
}

// OnPhaseEnter records a visit and the ticks the phase will be held
func (o *MetricsObserver) OnPhaseEnter(ev crossing.PhaseEvent) {
	if !ev.Phase.Valid() {
		return
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.steps++
	o.visits[ev.Phase]++
	o.ticksIn[ev.Phase] += ev.Dwell
	o.inputs[ev.Input&crossing.InputMask]++
}

// OnTransition records phase changes
func (o *MetricsObserver) OnTransition(ev crossing.TransitionEvent) {
	if ev.From == ev.To {
		return
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.transitions[TransitionKey(ev.From, ev.To)]++
}

// OnError records error metrics
func (o *MetricsObserver) OnError(ev crossing.ErrorEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// TransitionKey names an edge in the transition counts
func TransitionKey(from, to crossing.Phase) string {
	return from.String() + "->" + to.String()
}

// Snapshot returns a copy of the collected metrics. Phases and inputs never
// seen are omitted.
func (o *MetricsObserver) Snapshot() Metrics {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	m := Metrics{
		Steps:       o.steps,
		Visits:      make(map[crossing.Phase]int),
		TicksIn:     make(map[crossing.Phase]crossing.Ticks),
		Transitions: make(map[string]int, len(o.transitions)),
		Inputs:      make(map[crossing.Input]int),
		Errors:      o.errorCount,
	}
	for _, p := range crossing.Phases() {
		if o.visits[p] > 0 {
			m.Visits[p] = o.visits[p]
			m.TicksIn[p] = o.ticksIn[p]
		}
	}
	for k, v := range o.transitions {
		m.Transitions[k] = v
	}
	for in, n := range o.inputs {
		if n > 0 {
			m.Inputs[crossing.Input(in)] = n
		}
	}
	return m
}

// TotalTicks returns the ticks spent across all phases
func (m Metrics) TotalTicks() crossing.Ticks {
	var total crossing.Ticks
	for _, t := range m.TicksIn {
		total += t
	}
	return total
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.steps = 0
	o.visits = [crossing.NumPhases]int{}
	o.ticksIn = [crossing.NumPhases]crossing.Ticks{}
	o.transitions = make(map[string]int)
	o.inputs = [crossing.NumInputs]int{}
	o.errorCount = 0
}
