// Package hal connects the controller to real devices: GPIO lines through
// periph.io and wall-clock waiting.
package hal

import (
	"time"

	"github.com/anggasct/crossing"
)

// SleepDelay is a Delayer that blocks the calling goroutine in real time.
// A zero Tick means crossing.TickDuration.
type SleepDelay struct {
	Tick time.Duration
}

// Wait implements crossing.Delayer.
func (d SleepDelay) Wait(ticks crossing.Ticks) {
	tick := d.Tick
	if tick <= 0 {
		tick = crossing.TickDuration
	}
	time.Sleep(time.Duration(ticks) * tick)
}
