package crossing

// StepResult describes one iteration of the controller loop
type StepResult struct {
	// Step is the 1-based iteration number
	Step uint64
	// From is the phase whose outputs were held
	From Phase
	// To is the phase selected for the next iteration
	To Phase
	// Input is the sensor vector sampled at the start of the step
	Input  Input
	Lights LightPattern
	Walk   PedestrianPattern
	Dwell  Ticks
	// Err is set when the outputs could not be written; the step still completes
	Err error
}

// PhaseChanged reports whether the step moved to a different phase
func (r *StepResult) PhaseChanged() bool {
	return r.From != r.To
}

// Success returns true if the outputs were written without error
func (r *StepResult) Success() bool {
	return r.Err == nil
}
