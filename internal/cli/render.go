package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/observers"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	changedStyle = cellStyle.Foreground(lipgloss.Color("11"))
	errorStyle   = cellStyle.Foreground(lipgloss.Color("9"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// renderTrace lays out one row per step with the time the phase was entered
func renderTrace(results []*crossing.StepResult) string {
	changed := make(map[int]bool)
	failed := make(map[int]bool)

	t := newTable("step", "t", "input", "phase", "lights", "walk", "next")
	var elapsed crossing.Ticks
	for i, r := range results {
		next := r.To.String()
		if r.PhaseChanged() {
			changed[i] = true
		} else {
			next = "="
		}
		walk := r.Walk.Indicator().String()
		if !r.Success() {
			failed[i] = true
			walk += " (write failed)"
		}
		t.Row(
			fmt.Sprint(r.Step),
			elapsed.Duration().String(),
			r.Input.String(),
			r.From.String(),
			r.Lights.Lights().String(),
			walk,
			next,
		)
		elapsed += r.Dwell
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case failed[row]:
			return errorStyle
		case changed[row] && col == 6:
			return changedStyle
		default:
			return cellStyle
		}
	})
	return t.Render()
}

// renderMetrics summarises visits and time per phase
func renderMetrics(m observers.Metrics) string {
	t := newTable("phase", "visits", "time")
	for _, p := range crossing.Phases() {
		if m.Visits[p] == 0 {
			continue
		}
		t.Row(p.String(), fmt.Sprint(m.Visits[p]), m.TicksIn[p].Duration().String())
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})

	var s strings.Builder
	s.WriteString(t.Render())
	s.WriteString(fmt.Sprintf("\nsteps %d, phase changes %d, simulated time %s",
		m.Steps, sumCounts(m.Transitions), m.TotalTicks().Duration()))
	if m.Errors > 0 {
		s.WriteString(fmt.Sprintf(", output errors %d", m.Errors))
	}
	return s.String()
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// renderPhaseTable prints the phase table with one successor column per input vector
func renderPhaseTable(tb crossing.Table) string {
	headers := []string{"phase", "east/west", "north/south", "walk", "dwell"}
	for in := crossing.Input(0); in < crossing.NumInputs; in++ {
		headers = append(headers, in.String())
	}

	t := newTable(headers...)
	for _, p := range crossing.Phases() {
		spec := tb.Spec(p)
		lights := spec.Lights.Lights()
		row := []string{
			p.String(),
			lights.EastWest.String(),
			lights.NorthSouth.String(),
			spec.Walk.Indicator().String(),
			spec.Dwell.Duration().String(),
		}
		for _, next := range spec.Next {
			if next == p {
				row = append(row, "=")
			} else {
				row = append(row, next.String())
			}
		}
		t.Row(row...)
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.Render()
}
