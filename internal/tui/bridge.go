package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anggasct/crossing"
)

// Sender delivers a message to a running program; *tea.Program's Send fits
type Sender func(tea.Msg)

// Panel is an OutputSink that shows the driven lamps in the view
type Panel struct {
	send Sender
}

// NewPanel creates a panel forwarding writes to send
func NewPanel(send Sender) *Panel {
	return &Panel{send: send}
}

// Write implements crossing.OutputSink
func (p *Panel) Write(lights crossing.LightPattern, walk crossing.PedestrianPattern) error {
	p.send(outputMsg{lights: lights, walk: walk})
	return nil
}

// Observer forwards controller events to the view
type Observer struct {
	crossing.BaseObserver
	send Sender
}

// NewObserver creates an observer forwarding events to send
func NewObserver(send Sender) *Observer {
	return &Observer{send: send}
}

// OnPhaseEnter implements crossing.Observer
func (o *Observer) OnPhaseEnter(ev crossing.PhaseEvent) {
	o.send(phaseMsg(ev))
}

// OnTransition implements crossing.Observer
func (o *Observer) OnTransition(ev crossing.TransitionEvent) {
	o.send(transitionMsg(ev))
}

// OnError implements crossing.ExtendedObserver
func (o *Observer) OnError(ev crossing.ErrorEvent) {
	o.send(errorMsg(ev))
}

// OnControllerStopped implements crossing.ExtendedObserver
func (o *Observer) OnControllerStopped(ev crossing.LifecycleEvent) {
	o.send(stoppedMsg{reason: ev.Reason})
}
