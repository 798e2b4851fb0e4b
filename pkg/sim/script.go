package sim

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/anggasct/crossing"
)

// ScriptStep is one entry of a sensor script. Either Input is given as
// three binary digits (pedestrian, north/south, east/west) or the three
// booleans are used.
type ScriptStep struct {
	Input      string `toml:"input"`
	Pedestrian bool   `toml:"pedestrian"`
	NorthSouth bool   `toml:"north_south"`
	EastWest   bool   `toml:"east_west"`
	Repeat     int    `toml:"repeat"`
}

// ScriptFile is the TOML form of a sensor script.
type ScriptFile struct {
	Name  string       `toml:"name"`
	Steps []ScriptStep `toml:"step"`
}

// Script is an InputSource that replays a fixed sequence of vectors, one per
// Read, and keeps returning the last one once the sequence is exhausted.
type Script struct {
	name   string
	inputs []crossing.Input
	pos    int
	reads  int
}

// NewScript creates a script from explicit vectors.
func NewScript(name string, inputs ...crossing.Input) *Script {
	return &Script{name: name, inputs: inputs}
}

// LoadScript reads a script from a TOML file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return DecodeScript(f)
}

// DecodeScript parses a TOML script.
func DecodeScript(r io.Reader) (*Script, error) {
	var file ScriptFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return file.Script()
}

// Script expands the repeats into a replayable script.
func (f ScriptFile) Script() (*Script, error) {
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("script %q has no steps", f.Name)
	}

	var inputs []crossing.Input
	for i, step := range f.Steps {
		in := crossing.NewInput(step.Pedestrian, step.NorthSouth, step.EastWest)
		if step.Input != "" {
			parsed, err := crossing.ParseInput(step.Input)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			in = parsed
		}

		repeat := step.Repeat
		switch {
		case repeat < 0:
			return nil, fmt.Errorf("step %d: negative repeat %d", i+1, repeat)
		case repeat == 0:
			repeat = 1
		}
		for j := 0; j < repeat; j++ {
			inputs = append(inputs, in)
		}
	}
	return NewScript(f.Name, inputs...), nil
}

// Read implements crossing.InputSource.
func (s *Script) Read() crossing.Input {
	if len(s.inputs) == 0 {
		return 0
	}
	in := s.inputs[s.pos]
	if s.pos < len(s.inputs)-1 {
		s.pos++
	}
	s.reads++
	return in
}

// Exhausted reports whether every scripted vector has been read at least once.
func (s *Script) Exhausted() bool {
	return s.reads >= len(s.inputs)
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.name
}

// Len returns the number of vectors in the script.
func (s *Script) Len() int {
	return len(s.inputs)
}

// Inputs returns the expanded sequence.
func (s *Script) Inputs() []crossing.Input {
	out := make([]crossing.Input, len(s.inputs))
	copy(out, s.inputs)
	return out
}
