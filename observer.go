package crossing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PhaseEvent is emitted once a phase's outputs have been written, before its dwell.
type PhaseEvent struct {
	ControllerID uuid.UUID
	Step         uint64
	Phase        Phase
	Input        Input
	Lights       LightPattern
	Walk         PedestrianPattern
	Dwell        Ticks
	Time         time.Time
}

// TransitionEvent is emitted after the dwell, when the next phase has been chosen.
type TransitionEvent struct {
	ControllerID uuid.UUID
	Step         uint64
	From         Phase
	To           Phase
	Input        Input
	Time         time.Time
}

// ErrorEvent carries a failure that did not stop the controller.
type ErrorEvent struct {
	ControllerID uuid.UUID
	Step         uint64
	Phase        Phase
	Err          error
}

// LifecycleEvent marks the start or end of a Run.
type LifecycleEvent struct {
	ControllerID uuid.UUID
	Phase        Phase
	Steps        uint64
	// Reason is why the run ended; nil on start
	Reason error
}

// Observer represents an entity that observes the controller
type Observer interface {
	// OnPhaseEnter is called when a phase's outputs are applied
	OnPhaseEnter(ev PhaseEvent)

	// OnTransition is called when the successor phase is selected
	OnTransition(ev TransitionEvent)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnError is called when writing outputs fails
	OnError(ev ErrorEvent)

	// OnControllerStarted is called when Run begins
	OnControllerStarted(ev LifecycleEvent)

	// OnControllerStopped is called when Run returns
	OnControllerStopped(ev LifecycleEvent)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnPhaseEnter implements the required Observer method
func (o *BaseObserver) OnPhaseEnter(ev PhaseEvent) {}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(ev TransitionEvent) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(ev ErrorEvent) {}

// OnControllerStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnControllerStarted(ev LifecycleEvent) {}

// OnControllerStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnControllerStopped(ev LifecycleEvent) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// guard runs fn and turns a panic into an OnError notification. A panic
// raised by OnError itself is swallowed.
func (om *ObserverManager) guard(observer Observer, hook string, ev ErrorEvent, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					ev.Err = fmt.Errorf("observer panic in %s: %v", hook, r)
					extObs.OnError(ev)
				}()
			}
		}
	}()
	fn()
}

// NotifyPhaseEnter notifies all observers that a phase's outputs are applied
func (om *ObserverManager) NotifyPhaseEnter(ev PhaseEvent) {
	errEv := ErrorEvent{ControllerID: ev.ControllerID, Step: ev.Step, Phase: ev.Phase}
	for _, observer := range om.snapshot() {
		observer := observer
		om.guard(observer, "OnPhaseEnter", errEv, func() { observer.OnPhaseEnter(ev) })
	}
}

// NotifyTransition notifies all observers of a phase transition
func (om *ObserverManager) NotifyTransition(ev TransitionEvent) {
	errEv := ErrorEvent{ControllerID: ev.ControllerID, Step: ev.Step, Phase: ev.From}
	for _, observer := range om.snapshot() {
		observer := observer
		om.guard(observer, "OnTransition", errEv, func() { observer.OnTransition(ev) })
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(ev ErrorEvent) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(ev)
			}()
		}
	}
}

// NotifyControllerStarted notifies all observers that Run has begun
func (om *ObserverManager) NotifyControllerStarted(ev LifecycleEvent) {
	errEv := ErrorEvent{ControllerID: ev.ControllerID, Phase: ev.Phase}
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard(observer, "OnControllerStarted", errEv, func() { extObs.OnControllerStarted(ev) })
		}
	}
}

// NotifyControllerStopped notifies all observers that Run has returned
func (om *ObserverManager) NotifyControllerStopped(ev LifecycleEvent) {
	errEv := ErrorEvent{ControllerID: ev.ControllerID, Step: ev.Steps, Phase: ev.Phase}
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard(observer, "OnControllerStopped", errEv, func() { extObs.OnControllerStopped(ev) })
		}
	}
}

func (om *ObserverManager) snapshot() []Observer {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}
