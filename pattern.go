package crossing

import "fmt"

// LightPattern is the packed 6-bit traffic light word.
//
// Bit layout, most significant first:
//
//	5 east/west red
//	4 east/west yellow
//	3 east/west green
//	2 north/south red
//	1 north/south yellow
//	0 north/south green
type LightPattern uint8

const (
	NorthSouthGreen LightPattern = 1 << iota
	NorthSouthYellow
	NorthSouthRed
	EastWestGreen
	EastWestYellow
	EastWestRed
)

// LightMask keeps the six lamp bits.
const LightMask LightPattern = 0x3F

// PedestrianPattern is the packed pedestrian indicator word. The bit
// positions match the indicator wiring, so the word is written as is.
type PedestrianPattern uint8

const (
	// IndicatorOff leaves both pedestrian lamps dark
	IndicatorOff PedestrianPattern = 0x0
	// IndicatorDontWalk lights the don't-walk lamp
	IndicatorDontWalk PedestrianPattern = 0x2
	// IndicatorWalk lights the walk lamp
	IndicatorWalk PedestrianPattern = 0x8
)

// IndicatorMask keeps the two indicator bits.
const IndicatorMask = IndicatorWalk | IndicatorDontWalk

// Lamp is one signal head.
type Lamp struct {
	Red    bool
	Yellow bool
	Green  bool
}

// Lit returns the number of lamps switched on.
func (l Lamp) Lit() int {
	n := 0
	for _, on := range []bool{l.Red, l.Yellow, l.Green} {
		if on {
			n++
		}
	}
	return n
}

func (l Lamp) String() string {
	switch {
	case l.Lit() == 0:
		return "dark"
	case l.Lit() > 1:
		return fmt.Sprintf("r=%t y=%t g=%t", l.Red, l.Yellow, l.Green)
	case l.Red:
		return "red"
	case l.Yellow:
		return "yellow"
	default:
		return "green"
	}
}

// Lights is the structured form of a LightPattern.
type Lights struct {
	EastWest   Lamp
	NorthSouth Lamp
}

// Lights unpacks the word into per-direction lamps.
func (p LightPattern) Lights() Lights {
	return Lights{
		EastWest: Lamp{
			Red:    p&EastWestRed != 0,
			Yellow: p&EastWestYellow != 0,
			Green:  p&EastWestGreen != 0,
		},
		NorthSouth: Lamp{
			Red:    p&NorthSouthRed != 0,
			Yellow: p&NorthSouthYellow != 0,
			Green:  p&NorthSouthGreen != 0,
		},
	}
}

func (p LightPattern) String() string {
	return fmt.Sprintf("0x%02X", uint8(p))
}

// Pack converts the lamps back to the wire word.
func (l Lights) Pack() LightPattern {
	var p LightPattern
	set := func(on bool, bit LightPattern) {
		if on {
			p |= bit
		}
	}
	set(l.EastWest.Red, EastWestRed)
	set(l.EastWest.Yellow, EastWestYellow)
	set(l.EastWest.Green, EastWestGreen)
	set(l.NorthSouth.Red, NorthSouthRed)
	set(l.NorthSouth.Yellow, NorthSouthYellow)
	set(l.NorthSouth.Green, NorthSouthGreen)
	return p
}

func (l Lights) String() string {
	return fmt.Sprintf("EW:%s NS:%s", l.EastWest, l.NorthSouth)
}

// Indicator is the structured form of a PedestrianPattern.
type Indicator struct {
	Walk     bool
	DontWalk bool
}

// Indicator unpacks the word.
func (p PedestrianPattern) Indicator() Indicator {
	return Indicator{
		Walk:     p&IndicatorWalk != 0,
		DontWalk: p&IndicatorDontWalk != 0,
	}
}

func (p PedestrianPattern) String() string {
	return fmt.Sprintf("0x%X", uint8(p))
}

// Pack converts the indicator back to the wire word.
func (i Indicator) Pack() PedestrianPattern {
	p := IndicatorOff
	if i.Walk {
		p |= IndicatorWalk
	}
	if i.DontWalk {
		p |= IndicatorDontWalk
	}
	return p
}

func (i Indicator) String() string {
	switch {
	case i.Walk && i.DontWalk:
		return "walk+dont-walk"
	case i.Walk:
		return "walk"
	case i.DontWalk:
		return "dont-walk"
	default:
		return "off"
	}
}
