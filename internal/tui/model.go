// Package tui is the interactive terminal view of a running intersection.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/sim"
)

// traceLen is how many transitions the view keeps
const traceLen = 12

type outputMsg struct {
	lights crossing.LightPattern
	walk   crossing.PedestrianPattern
}

type phaseMsg crossing.PhaseEvent

type transitionMsg crossing.TransitionEvent

type errorMsg crossing.ErrorEvent

type stoppedMsg struct{ reason error }

type traceEntry struct {
	at   time.Time
	from crossing.Phase
	to   crossing.Phase
	in   crossing.Input
}

// Model is the Bubble Tea model for the simulation
type Model struct {
	sensors *sim.Sensors
	stop    func()

	phase    crossing.Phase
	entered  time.Time
	dwell    crossing.Ticks
	lights   crossing.LightPattern
	walk     crossing.PedestrianPattern
	steps    uint64
	trace    []traceEntry
	lastErr  error
	stopped  bool
	quitting bool
	width    int
}

// NewModel creates a model toggling sensors. stop is called once when the
// user quits and should cancel the controller's context.
func NewModel(sensors *sim.Sensors, stop func()) *Model {
	if stop == nil {
		stop = func() {}
	}
	return &Model{
		sensors: sensors,
		stop:    stop,
		phase:   crossing.Initial,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.quitting {
				m.quitting = true
				m.stop()
			}
			return m, tea.Quit
		case "p":
			m.sensors.Toggle(crossing.PedestrianWaiting)
		case "n":
			m.sensors.Toggle(crossing.NorthSouthCar)
		case "e":
			m.sensors.Toggle(crossing.EastWestCar)
		case "c":
			m.sensors.Set(0)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case outputMsg:
		m.lights = msg.lights
		m.walk = msg.walk

	case phaseMsg:
		m.phase = msg.Phase
		m.entered = msg.Time
		m.dwell = msg.Dwell
		m.steps = msg.Step

	case transitionMsg:
		m.trace = append(m.trace, traceEntry{at: msg.Time, from: msg.From, to: msg.To, in: msg.Input})
		if len(m.trace) > traceLen {
			m.trace = m.trace[len(m.trace)-traceLen:]
		}

	case errorMsg:
		m.lastErr = msg.Err

	case stoppedMsg:
		m.stopped = true
		if msg.reason != nil && !m.quitting {
			m.lastErr = msg.reason
		}
	}

	return m, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	redLamp    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	yellowLamp = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	greenLamp  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	darkLamp   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func lamp(on bool, style lipgloss.Style) string {
	if on {
		return style.Render("●")
	}
	return darkLamp.Render("○")
}

func head(name string, l crossing.Lamp) string {
	body := strings.Join([]string{
		lamp(l.Red, redLamp),
		lamp(l.Yellow, yellowLamp),
		lamp(l.Green, greenLamp),
	}, "\n")
	return boxStyle.Render(labelStyle.Render(name) + "\n" + body)
}

func indicator(ind crossing.Indicator) string {
	var text string
	switch {
	case ind.Walk:
		text = greenLamp.Render("WALK")
	case ind.DontWalk:
		text = redLamp.Render("DON'T WALK")
	default:
		text = darkLamp.Render("----")
	}
	return boxStyle.Render(labelStyle.Render("Crossing") + "\n" + text)
}

func sensor(key, name string, on bool) string {
	state := darkLamp.Render("off")
	if on {
		state = activeStyle.Render("ON ")
	}
	return fmt.Sprintf("[%s] %-11s %s", key, name, state)
}

// View renders the UI
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Intersection"))
	s.WriteString("\n")

	lights := m.lights.Lights()
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		head("East/West", lights.EastWest),
		" ",
		head("North/South", lights.NorthSouth),
		" ",
		indicator(m.walk.Indicator()),
	))
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("%s %s  %s %d  %s %s\n",
		labelStyle.Render("phase"), activeStyle.Render(m.phase.String()),
		labelStyle.Render("step"), m.steps,
		labelStyle.Render("dwell"), m.dwell.Duration()))

	in := m.sensors.Read()
	s.WriteString("\n")
	s.WriteString(sensor("p", "pedestrian", in.Pedestrian()) + "\n")
	s.WriteString(sensor("n", "north/south", in.NorthSouth()) + "\n")
	s.WriteString(sensor("e", "east/west", in.EastWest()) + "\n")

	if len(m.trace) > 0 {
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("recent transitions") + "\n")
		for i := len(m.trace) - 1; i >= 0; i-- {
			t := m.trace[i]
			marker := " "
			if t.from != t.to {
				marker = "*"
			}
			s.WriteString(fmt.Sprintf("%s %s %-16s -> %-16s on %s\n",
				marker, t.at.Format("15:04:05.000"), t.from, t.to, t.in))
		}
	}

	if m.lastErr != nil {
		s.WriteString("\n" + errorStyle.Render("✗ "+m.lastErr.Error()) + "\n")
	}
	if m.stopped {
		s.WriteString("\n" + labelStyle.Render("controller stopped") + "\n")
	}

	s.WriteString("\n" + labelStyle.Render("p/n/e toggle sensors, c clears, q quits"))
	return s.String()
}
