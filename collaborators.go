package crossing

// InputSource exposes the sensor lines. Read must not block and returns the
// instantaneous vector; only the low three bits are consulted.
type InputSource interface {
	Read() Input
}

// OutputSink drives the signal heads and the pedestrian indicator. Both words
// written by one call belong to the same phase.
type OutputSink interface {
	Write(lights LightPattern, walk PedestrianPattern) error
}

// Delayer blocks the calling goroutine for a number of ticks. The wait is
// not interruptible.
type Delayer interface {
	Wait(ticks Ticks)
}

// Initializer brings the devices up. It is called once before the first step.
type Initializer interface {
	Init() error
}

// DelayFunc adapts a function to the Delayer interface.
type DelayFunc func(ticks Ticks)

// Wait calls f(ticks).
func (f DelayFunc) Wait(ticks Ticks) { f(ticks) }

// InputFunc adapts a function to the InputSource interface.
type InputFunc func() Input

// Read calls f().
func (f InputFunc) Read() Input { return f() }
