// Package sim provides software stand-ins for the intersection's devices:
// switchable and scripted sensors, a virtual clock and an output recorder.
package sim

import (
	"sync/atomic"

	"github.com/anggasct/crossing"
)

// Sensors is an InputSource whose lines can be flipped from any goroutine.
type Sensors struct {
	v atomic.Uint32
}

// NewSensors returns sensors preset to in.
func NewSensors(in crossing.Input) *Sensors {
	s := &Sensors{}
	s.Set(in)
	return s
}

// Read implements crossing.InputSource.
func (s *Sensors) Read() crossing.Input {
	return crossing.Input(s.v.Load()) & crossing.InputMask
}

// Set replaces all three lines.
func (s *Sensors) Set(in crossing.Input) {
	s.v.Store(uint32(in & crossing.InputMask))
}

// Toggle flips the given lines and returns the new vector.
func (s *Sensors) Toggle(lines crossing.Input) crossing.Input {
	for {
		old := s.v.Load()
		next := (old ^ uint32(lines)) & uint32(crossing.InputMask)
		if s.v.CompareAndSwap(old, next) {
			return crossing.Input(next)
		}
	}
}
