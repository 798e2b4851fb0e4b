package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/sim"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_KeysToggleSensors(t *testing.T) {
	sensors := sim.NewSensors(0)
	m := NewModel(sensors, nil)

	m.Update(key("p"))
	assert.Equal(t, crossing.PedestrianWaiting, sensors.Read())

	m.Update(key("n"))
	m.Update(key("e"))
	assert.Equal(t, crossing.Input(7), sensors.Read())

	m.Update(key("p"))
	assert.Equal(t, crossing.NorthSouthCar|crossing.EastWestCar, sensors.Read())

	m.Update(key("c"))
	assert.Equal(t, crossing.Input(0), sensors.Read())
}

func TestModel_QuitStopsControllerOnce(t *testing.T) {
	stops := 0
	m := NewModel(sim.NewSensors(0), func() { stops++ })

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, stops)
}

func TestModel_ControllerDrivesView(t *testing.T) {
	sensors := sim.NewSensors(0)
	m := NewModel(sensors, nil)

	c, err := crossing.NewController(sensors, NewPanel(func(msg tea.Msg) { m.Update(msg) }),
		crossing.DelayFunc(func(crossing.Ticks) {}),
		crossing.WithObserver(NewObserver(func(msg tea.Msg) { m.Update(msg) })))
	require.NoError(t, err)

	sensors.Set(crossing.NorthSouthCar)
	c.RunSteps(2)

	assert.Equal(t, crossing.WaitWest, m.phase)
	assert.Equal(t, uint64(2), m.steps)
	assert.Equal(t, crossing.EastWestYellow|crossing.NorthSouthRed, m.lights)
	assert.Equal(t, crossing.IndicatorDontWalk, m.walk)
	require.Len(t, m.trace, 2)
	assert.Equal(t, crossing.GoSouth, m.trace[1].to)

	view := m.View()
	assert.Contains(t, view, "WAIT_WEST")
	assert.Contains(t, view, "DON'T WALK")
	assert.Contains(t, view, "GO_SOUTH")
}

func TestModel_TraceIsBounded(t *testing.T) {
	m := NewModel(sim.NewSensors(0), nil)
	for i := 0; i < traceLen+5; i++ {
		m.Update(transitionMsg{Step: uint64(i + 1), From: crossing.GoWest, To: crossing.GoWest, Time: time.Unix(int64(i), 0)})
	}
	require.Len(t, m.trace, traceLen)
	assert.Equal(t, time.Unix(5, 0), m.trace[0].at)
}

func TestModel_ErrorsAndStop(t *testing.T) {
	m := NewModel(sim.NewSensors(0), nil)

	m.Update(errorMsg{Phase: crossing.Walk, Err: errors.New("lamp bus down")})
	m.Update(stoppedMsg{})

	view := m.View()
	assert.Contains(t, view, "lamp bus down")
	assert.Contains(t, view, "controller stopped")
}

func TestModel_WalkIndicator(t *testing.T) {
	m := NewModel(sim.NewSensors(crossing.PedestrianWaiting), nil)
	m.Update(outputMsg{lights: crossing.EastWestRed | crossing.NorthSouthRed, walk: crossing.IndicatorWalk})

	view := m.View()
	assert.Contains(t, view, "WALK")
	assert.NotContains(t, view, "DON'T WALK")
	assert.Contains(t, view, "ON")
}
