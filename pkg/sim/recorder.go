package sim

import (
	"sync"

	"github.com/anggasct/crossing"
)

// Write is one call made to a Recorder.
type Write struct {
	Lights crossing.LightPattern
	Walk   crossing.PedestrianPattern
}

// Recorder is an OutputSink that keeps every write.
type Recorder struct {
	mutex  sync.RWMutex
	writes []Write
	fail   error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Write implements crossing.OutputSink.
func (r *Recorder) Write(lights crossing.LightPattern, walk crossing.PedestrianPattern) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.writes = append(r.writes, Write{Lights: lights, Walk: walk})
	return r.fail
}

// FailWith makes subsequent writes return err after recording them. Pass nil to recover.
func (r *Recorder) FailWith(err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.fail = err
}

// Writes returns a copy of the history.
func (r *Recorder) Writes() []Write {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// Last returns the most recent write and whether there was one.
func (r *Recorder) Last() (Write, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if len(r.writes) == 0 {
		return Write{}, false
	}
	return r.writes[len(r.writes)-1], true
}
