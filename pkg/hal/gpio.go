package hal

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/anggasct/crossing"
)

// PinMap names the GPIO line wired to each lamp and sensor. Names are
// resolved through periph's registry, e.g. "GPIO17" or "P1_11".
type PinMap struct {
	EastWestRed      string `toml:"east_west_red"`
	EastWestYellow   string `toml:"east_west_yellow"`
	EastWestGreen    string `toml:"east_west_green"`
	NorthSouthRed    string `toml:"north_south_red"`
	NorthSouthYellow string `toml:"north_south_yellow"`
	NorthSouthGreen  string `toml:"north_south_green"`
	Walk             string `toml:"walk"`
	DontWalk         string `toml:"dont_walk"`
	PedestrianSensor string `toml:"pedestrian_sensor"`
	NorthSouthSensor string `toml:"north_south_sensor"`
	EastWestSensor   string `toml:"east_west_sensor"`
	// SensorPull is "down" (default), "up" or "float"
	SensorPull string `toml:"sensor_pull"`
}

// DefaultPinMap is a wiring for a Raspberry Pi header.
func DefaultPinMap() PinMap {
	return PinMap{
		EastWestRed:      "GPIO5",
		EastWestYellow:   "GPIO6",
		EastWestGreen:    "GPIO13",
		NorthSouthRed:    "GPIO19",
		NorthSouthYellow: "GPIO26",
		NorthSouthGreen:  "GPIO21",
		Walk:             "GPIO20",
		DontWalk:         "GPIO16",
		PedestrianSensor: "GPIO17",
		NorthSouthSensor: "GPIO27",
		EastWestSensor:   "GPIO22",
		SensorPull:       "down",
	}
}

type namedLine struct {
	role string
	name string
}

func (m PinMap) lines() []namedLine {
	return []namedLine{
		{"east_west_red", m.EastWestRed},
		{"east_west_yellow", m.EastWestYellow},
		{"east_west_green", m.EastWestGreen},
		{"north_south_red", m.NorthSouthRed},
		{"north_south_yellow", m.NorthSouthYellow},
		{"north_south_green", m.NorthSouthGreen},
		{"walk", m.Walk},
		{"dont_walk", m.DontWalk},
		{"pedestrian_sensor", m.PedestrianSensor},
		{"north_south_sensor", m.NorthSouthSensor},
		{"east_west_sensor", m.EastWestSensor},
	}
}

// Validate checks that every line is named once and the pull mode is known.
func (m PinMap) Validate() error {
	seen := make(map[string]string)
	var errs []error
	for _, l := range m.lines() {
		switch prev, dup := seen[l.name]; {
		case l.name == "":
			errs = append(errs, fmt.Errorf("%s: no pin assigned", l.role))
		case dup:
			errs = append(errs, fmt.Errorf("%s: pin %s already used by %s", l.role, l.name, prev))
		default:
			seen[l.name] = l.role
		}
	}
	if _, err := ParsePull(m.SensorPull); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParsePull converts a pull mode name to its periph value. Empty means down.
func ParsePull(s string) (gpio.Pull, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down":
		return gpio.PullDown, nil
	case "up":
		return gpio.PullUp, nil
	case "float", "none":
		return gpio.Float, nil
	default:
		return gpio.PullNoChange, fmt.Errorf("unknown sensor pull %q", s)
	}
}

// Pins holds the resolved lines.
type Pins struct {
	// Lights is indexed by bit position of crossing.LightPattern:
	// 0 north/south green ... 5 east/west red.
	Lights [6]gpio.PinIO
	Walk     gpio.PinIO
	DontWalk gpio.PinIO
	// Sensors is indexed by bit position of crossing.Input:
	// 0 east/west car, 1 north/south car, 2 pedestrian.
	Sensors [3]gpio.PinIO
	Pull    gpio.Pull
}

// GPIO drives the intersection through digital lines. It implements
// crossing.InputSource, crossing.OutputSink and crossing.Initializer.
type GPIO struct {
	pins Pins
}

// NewGPIO wraps already resolved pins.
func NewGPIO(pins Pins) (*GPIO, error) {
	for i, p := range pins.Lights {
		if p == nil {
			return nil, crossing.NewConfigurationError("GPIO", fmt.Sprintf("light line %d missing", i))
		}
	}
	for i, p := range pins.Sensors {
		if p == nil {
			return nil, crossing.NewConfigurationError("GPIO", fmt.Sprintf("sensor line %d missing", i))
		}
	}
	if pins.Walk == nil || pins.DontWalk == nil {
		return nil, crossing.NewConfigurationError("GPIO", "pedestrian indicator line missing")
	}
	return &GPIO{pins: pins}, nil
}

// OpenGPIO loads the host drivers and resolves every line of m by name.
func OpenGPIO(m PinMap) (*GPIO, error) {
	if err := m.Validate(); err != nil {
		return nil, crossing.NewConfigurationError("GPIO", err.Error())
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	pull, _ := ParsePull(m.SensorPull)
	pins := Pins{Pull: pull}
	resolved := make(map[string]gpio.PinIO)
	for _, l := range m.lines() {
		p := gpioreg.ByName(l.name)
		if p == nil {
			return nil, crossing.NewConfigurationError("GPIO", fmt.Sprintf("%s: pin %s not found", l.role, l.name))
		}
		resolved[l.role] = p
	}

	pins.Lights = [6]gpio.PinIO{
		resolved["north_south_green"],
		resolved["north_south_yellow"],
		resolved["north_south_red"],
		resolved["east_west_green"],
		resolved["east_west_yellow"],
		resolved["east_west_red"],
	}
	pins.Walk = resolved["walk"]
	pins.DontWalk = resolved["dont_walk"]
	pins.Sensors = [3]gpio.PinIO{
		resolved["east_west_sensor"],
		resolved["north_south_sensor"],
		resolved["pedestrian_sensor"],
	}
	return NewGPIO(pins)
}

func (g *GPIO) outputs() []gpio.PinIO {
	out := make([]gpio.PinIO, 0, len(g.pins.Lights)+2)
	out = append(out, g.pins.Lights[:]...)
	return append(out, g.pins.Walk, g.pins.DontWalk)
}

// Init configures the sensor lines as inputs and drives every lamp low.
func (g *GPIO) Init() error {
	for _, p := range g.pins.Sensors {
		if err := p.In(g.pins.Pull, gpio.NoEdge); err != nil {
			return fmt.Errorf("configuring %s as input: %w", p, err)
		}
	}
	return g.Halt()
}

// Read implements crossing.InputSource.
func (g *GPIO) Read() crossing.Input {
	var in crossing.Input
	for bit, p := range g.pins.Sensors {
		if p.Read() == gpio.High {
			in |= 1 << bit
		}
	}
	return in
}

// Write implements crossing.OutputSink. Every line is attempted even when
// an earlier one fails.
func (g *GPIO) Write(lights crossing.LightPattern, walk crossing.PedestrianPattern) error {
	var errs []error
	for bit, p := range g.pins.Lights {
		errs = append(errs, drive(p, lights&(1<<bit) != 0))
	}
	ind := walk.Indicator()
	errs = append(errs, drive(g.pins.Walk, ind.Walk), drive(g.pins.DontWalk, ind.DontWalk))
	return errors.Join(errs...)
}

// Halt switches every lamp off.
func (g *GPIO) Halt() error {
	var errs []error
	for _, p := range g.outputs() {
		errs = append(errs, drive(p, false))
	}
	return errors.Join(errs...)
}

func drive(p gpio.PinIO, on bool) error {
	if err := p.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("driving %s: %w", p, err)
	}
	return nil
}
