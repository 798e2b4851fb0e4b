// Package visualization renders a phase table as a Graphviz graph.
package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/crossing"
)

// DOTGenerator generates Graphviz DOT format representations of a phase table
type DOTGenerator struct {
	table   crossing.Table
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowInputs     bool
	ShowLamps      bool
	ShowDwell      bool
	ShowHolds      bool   // draw self loops
	CompactMode    bool   // label an edge taken on every vector as "any"
	RankDirection  string // "TB", "LR", "BT", "RL"
	NodeShape      string
	ClearanceStyle string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowInputs:     true,
		ShowLamps:      true,
		ShowDwell:      true,
		ShowHolds:      true,
		CompactMode:    true,
		RankDirection:  "TB",
		NodeShape:      "box",
		ClearanceStyle: "dashed",
	}
}

// NewDOTGenerator creates a new DOT generator for the given table
func NewDOTGenerator(table crossing.Table, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		table:   table,
		options: opts,
	}
}

// Generate creates a DOT representation of the table
func (g *DOTGenerator) Generate() (string, error) {
	if err := g.table.Validate(); err != nil {
		return "", fmt.Errorf("failed to generate graph: %w", err)
	}

	var dot strings.Builder

	dot.WriteString("digraph Intersection {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	clearance := make(map[crossing.Phase]bool)
	for _, p := range g.table.ClearanceChain() {
		clearance[p] = true
	}

	g.generatePhases(&dot, clearance)
	g.generateTransitions(&dot, clearance)

	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) generatePhases(dot *strings.Builder, clearance map[crossing.Phase]bool) {
	dot.WriteString("  // Phases\n")

	for _, p := range crossing.Phases() {
		spec := g.table.Spec(p)
		fillColor := "lightblue"
		label := p.String()

		if p == crossing.Initial {
			fillColor = "lightgreen"
			label += "\\n(initial)"
		} else if clearance[p] {
			fillColor = "lightyellow"
		} else if spec.Walk.Indicator().Walk {
			fillColor = "lightcoral"
		}

		if g.options.ShowLamps {
			label += fmt.Sprintf("\\n%s\\nwalk: %s", spec.Lights.Lights(), spec.Walk.Indicator())
		}
		if g.options.ShowDwell {
			label += fmt.Sprintf("\\n%s", spec.Dwell.Duration())
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"filled\" fillcolor=%s label=\"%s\"];\n",
			p, fillColor, label))
	}
	dot.WriteString("\n")
}

// generateTransitions writes one edge per (from, to) pair, labelled with
// the input vectors selecting it
func (g *DOTGenerator) generateTransitions(dot *strings.Builder, clearance map[crossing.Phase]bool) {
	dot.WriteString("  // Transitions\n")

	for _, from := range crossing.Phases() {
		inputs := make(map[crossing.Phase][]string)
		var order []crossing.Phase
		for in := crossing.Input(0); in < crossing.NumInputs; in++ {
			to := g.table.Next(from, in)
			if _, seen := inputs[to]; !seen {
				order = append(order, to)
			}
			inputs[to] = append(inputs[to], in.String())
		}

		for _, to := range order {
			if to == from && !g.options.ShowHolds {
				continue
			}

			var attrs []string
			if g.options.ShowInputs {
				label := strings.Join(inputs[to], ",")
				if g.options.CompactMode && len(inputs[to]) == crossing.NumInputs {
					label = "any"
				}
				attrs = append(attrs, fmt.Sprintf("label=\"%s\"", label))
			}
			if clearance[from] && g.table.Unconditional(from) {
				attrs = append(attrs, fmt.Sprintf("style=%s", g.options.ClearanceStyle))
			}

			dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\"", from, to))
			if len(attrs) > 0 {
				dot.WriteString(" [" + strings.Join(attrs, " ") + "]")
			}
			dot.WriteString(";\n")
		}
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// GenerateSVG converts the DOT output to SVG with the Graphviz dot command
func (g *DOTGenerator) GenerateSVG() (string, error) {
	dotContent, err := g.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}
