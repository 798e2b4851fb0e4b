package sim

import (
	"sync"
	"time"

	"github.com/anggasct/crossing"
)

// Clock is a Delayer that returns immediately and advances virtual time.
type Clock struct {
	mutex sync.Mutex
	start time.Time
	calls int
	total crossing.Ticks
}

// NewClock creates a clock whose virtual time begins at start.
func NewClock(start time.Time) *Clock {
	return &Clock{start: start}
}

// Wait implements crossing.Delayer.
func (c *Clock) Wait(ticks crossing.Ticks) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.calls++
	c.total += ticks
}

// Now returns the start time plus every tick waited so far. Pass it to
// crossing.WithClock for reproducible event timestamps.
func (c *Clock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.start.Add(c.total.Duration())
}

// Calls returns the number of waits.
func (c *Clock) Calls() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.calls
}

// Elapsed returns the total ticks waited.
func (c *Clock) Elapsed() crossing.Ticks {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.total
}
