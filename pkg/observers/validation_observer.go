package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/crossing"
)

// ValidationObserver checks at runtime that what the controller drives
// matches the table it runs and stays safe. Violations are kept for
// inspection; the controller itself is never stopped.
type ValidationObserver struct {
	crossing.BaseObserver

	table      crossing.Table
	visited    [crossing.NumPhases]bool
	violations []string
	onViolate  func(string)
	mutex      sync.RWMutex
}

// NewValidationObserver creates a validation observer for the given table
func NewValidationObserver(table crossing.Table) *ValidationObserver {
	return &ValidationObserver{
		table:      table,
		violations: make([]string, 0),
	}
}

// OnViolation registers a callback invoked for each new violation
func (o *ValidationObserver) OnViolation(fn func(string)) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.onViolate = fn
}

func (o *ValidationObserver) addViolation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	o.mutex.Lock()
	o.violations = append(o.violations, msg)
	fn := o.onViolate
	o.mutex.Unlock()

	if fn != nil {
		fn(msg)
	}
}

// OnPhaseEnter checks the driven outputs against the table and the lamp rules
func (o *ValidationObserver) OnPhaseEnter(ev crossing.PhaseEvent) {
	if !ev.Phase.Valid() {
		o.addViolation("step %d: entered undefined phase %s", ev.Step, ev.Phase)
		return
	}

	o.mutex.Lock()
	o.visited[ev.Phase] = true
	o.mutex.Unlock()

	spec := o.table.Spec(ev.Phase)
	if ev.Lights != spec.Lights || ev.Walk != spec.Walk {
		o.addViolation("step %d: %s drove lights %s walk %s, table says %s %s",
			ev.Step, ev.Phase, ev.Lights, ev.Walk, spec.Lights, spec.Walk)
	}
	if ev.Dwell != spec.Dwell {
		o.addViolation("step %d: %s held %d ticks, table says %d", ev.Step, ev.Phase, ev.Dwell, spec.Dwell)
	}

	l := ev.Lights.Lights()
	if l.EastWest.Green && l.NorthSouth.Green {
		o.addViolation("step %d: %s shows green both ways", ev.Step, ev.Phase)
	}
	if ev.Walk.Indicator().Walk && !(l.EastWest.Red && l.NorthSouth.Red) {
		o.addViolation("step %d: %s shows walk with traffic released", ev.Step, ev.Phase)
	}
}

// OnTransition checks that the successor is the one the table selects
func (o *ValidationObserver) OnTransition(ev crossing.TransitionEvent) {
	if !ev.From.Valid() || !ev.To.Valid() {
		o.addViolation("step %d: transition %s -> %s leaves the enumeration", ev.Step, ev.From, ev.To)
		return
	}
	if want := o.table.Next(ev.From, ev.Input); want != ev.To {
		o.addViolation("step %d: %s on %s went to %s, table says %s", ev.Step, ev.From, ev.Input, ev.To, want)
	}
}

// GetViolations returns all violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// HasViolations returns whether there are any violations
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Unvisited returns the phases not entered so far
func (o *ValidationObserver) Unvisited() []crossing.Phase {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var phases []crossing.Phase
	for _, p := range crossing.Phases() {
		if !o.visited[p] {
			phases = append(phases, p)
		}
	}
	return phases
}

// Reset clears violations and visited phases
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.violations = make([]string, 0)
	o.visited = [crossing.NumPhases]bool{}
}
