package crossing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Phase is one state of the intersection machine.
type Phase uint8

const (
	// GoWest gives east/west traffic the green
	GoWest Phase = iota
	// WaitWest shows east/west yellow before yielding
	WaitWest
	// GoSouth gives north/south traffic the green
	GoSouth
	// WaitSouth shows north/south yellow before yielding
	WaitSouth
	// Walk holds all traffic on red and lets pedestrians cross
	Walk
	// WalkFlashOn1 is the first lit step of the clearance blink
	WalkFlashOn1
	// WalkFlashOff1 is the first dark step of the clearance blink
	WalkFlashOff1
	// WalkFlashOn2 is the second lit step of the clearance blink
	WalkFlashOn2
	// WalkFlashOff2 is the second dark step of the clearance blink
	WalkFlashOff2
	// DontWalk ends the crossing and hands the intersection back to traffic
	DontWalk
)

// NumPhases is the size of the phase enumeration.
const NumPhases = 10

// Initial is the phase a controller starts in.
const Initial = GoWest

var phaseNames = [NumPhases]string{
	GoWest:        "GO_WEST",
	WaitWest:      "WAIT_WEST",
	GoSouth:       "GO_SOUTH",
	WaitSouth:     "WAIT_SOUTH",
	Walk:          "WALK",
	WalkFlashOn1:  "WALK_FLASH_ON_1",
	WalkFlashOff1: "WALK_FLASH_OFF_1",
	WalkFlashOn2:  "WALK_FLASH_ON_2",
	WalkFlashOff2: "WALK_FLASH_OFF_2",
	DontWalk:      "DONT_WALK",
}

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool {
	return p < NumPhases
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
	return phaseNames[p]
}

// Phases returns every phase in declaration order.
func Phases() []Phase {
	phases := make([]Phase, NumPhases)
	for i := range phases {
		phases[i] = Phase(i)
	}
	return phases
}

// ParsePhase maps a phase name such as "GO_WEST" back to its Phase.
// Matching ignores case and accepts '-' in place of '_'.
func ParsePhase(s string) (Phase, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// Input is the 3-bit sensor vector sampled once per step.
type Input uint8

const (
	// EastWestCar is set while a car waits on the east/west approach
	EastWestCar Input = 1 << iota
	// NorthSouthCar is set while a car waits on the north/south approach
	NorthSouthCar
	// PedestrianWaiting is set while someone waits to cross
	PedestrianWaiting
)

// NumInputs is the number of distinct sensor vectors.
const NumInputs = 8

// InputMask keeps the three sensor bits.
const InputMask Input = NumInputs - 1

// NewInput packs the three sensor lines into a vector.
func NewInput(pedestrian, northSouth, eastWest bool) Input {
	var in Input
	if eastWest {
		in |= EastWestCar
	}
	if northSouth {
		in |= NorthSouthCar
	}
	if pedestrian {
		in |= PedestrianWaiting
	}
	return in
}

// EastWest reports whether the east/west car sensor is set.
func (in Input) EastWest() bool { return in&EastWestCar != 0 }

// NorthSouth reports whether the north/south car sensor is set.
func (in Input) NorthSouth() bool { return in&NorthSouthCar != 0 }

// Pedestrian reports whether the pedestrian sensor is set.
func (in Input) Pedestrian() bool { return in&PedestrianWaiting != 0 }

// String renders the vector as three binary digits, pedestrian bit first.
func (in Input) String() string {
	return fmt.Sprintf("%03b", uint8(in&InputMask))
}

// ParseInput accepts either three binary digits ("010") or a decimal index ("2").
func ParseInput(s string) (Input, error) {
	s = strings.TrimSpace(s)
	base := 10
	if len(s) == 3 && strings.Trim(s, "01") == "" {
		base = 2
	}
	v, err := strconv.ParseUint(s, base, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid input vector %q: %w", s, err)
	}
	if v >= NumInputs {
		return 0, fmt.Errorf("input vector %q out of range", s)
	}
	return Input(v), nil
}

// Ticks counts delay quanta.
type Ticks uint32

// TickDuration is the real-time length of one tick.
const TickDuration = 10 * time.Millisecond

// Duration converts a tick count to wall time.
func (t Ticks) Duration() time.Duration {
	return time.Duration(t) * TickDuration
}
