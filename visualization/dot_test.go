package visualization_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/visualization"
)

func TestDOTGeneration(t *testing.T) {
	generator := visualization.NewDOTGenerator(crossing.DefaultTable())

	dotContent, err := generator.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dotContent, "digraph Intersection {\n"))
	for _, p := range crossing.Phases() {
		assert.Contains(t, dotContent, "\""+p.String()+"\" [")
	}

	// initial phase
	assert.Contains(t, dotContent, `"GO_WEST" [style="filled" fillcolor=lightgreen label="GO_WEST\n(initial)\nEW:green NS:red\nwalk: dont-walk\n500ms"]`)

	// merged edges carry every selecting vector
	assert.Contains(t, dotContent, `"GO_WEST" -> "GO_WEST" [label="000,001,011,101"];`)
	assert.Contains(t, dotContent, `"GO_WEST" -> "WAIT_WEST" [label="010,100,110,111"];`)
	assert.Contains(t, dotContent, `"DONT_WALK" -> "GO_WEST" [label="001,101"];`)

	// clearance chain
	assert.Contains(t, dotContent, `"WALK_FLASH_ON_1" -> "WALK_FLASH_OFF_1" [label="any" style=dashed];`)
	assert.Contains(t, dotContent, `"WALK_FLASH_OFF_2" -> "DONT_WALK" [label="any" style=dashed];`)
	assert.NotContains(t, dotContent, `"DONT_WALK" -> "GO_SOUTH" [label="000,010,011,100,110,111" style`)

	t.Logf("Generated DOT content:\n%s", dotContent)
}

func TestDOTGeneration_EdgeCount(t *testing.T) {
	dotContent, err := visualization.NewDOTGenerator(crossing.DefaultTable()).Generate()
	require.NoError(t, err)

	edges := strings.Count(dotContent, " -> ")
	// GW 2, WW 2, GS 2, WS 2, WALK 2, four flash steps 1 each, DW 2
	assert.Equal(t, 16, edges)
}

func TestDOTGeneration_Options(t *testing.T) {
	options := visualization.DefaultDOTOptions()
	options.ShowHolds = false
	options.ShowInputs = false
	options.ShowLamps = false
	options.ShowDwell = false
	options.RankDirection = "LR"

	dotContent, err := visualization.NewDOTGenerator(crossing.DefaultTable(), options).Generate()
	require.NoError(t, err)

	assert.Contains(t, dotContent, "rankdir=LR;")
	assert.NotContains(t, dotContent, `"GO_WEST" -> "GO_WEST"`)
	assert.NotContains(t, dotContent, "label=\"000")
	assert.Contains(t, dotContent, `label="WAIT_WEST"]`)
	assert.Contains(t, dotContent, `"GO_WEST" -> "WAIT_WEST";`)
}

func TestDOTGeneration_NotCompact(t *testing.T) {
	options := visualization.DefaultDOTOptions()
	options.CompactMode = false

	dotContent, err := visualization.NewDOTGenerator(crossing.DefaultTable(), options).Generate()
	require.NoError(t, err)
	assert.Contains(t, dotContent, `"WALK_FLASH_ON_2" -> "WALK_FLASH_OFF_2" [label="000,001,010,011,100,101,110,111" style=dashed];`)
}

func TestDOTGeneration_InvalidTable(t *testing.T) {
	table := crossing.DefaultTable()
	table[crossing.GoWest].Dwell = 0

	_, err := visualization.NewDOTGenerator(table).Generate()
	require.Error(t, err)
	assert.ErrorIs(t, err, crossing.ErrInvalidTable)
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crossing.dot")
	require.NoError(t, visualization.NewDOTGenerator(crossing.DefaultTable()).GenerateToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph Intersection")
}

func TestGenerateSVG(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("Graphviz not installed")
	}

	svg, err := visualization.NewDOTGenerator(crossing.DefaultTable()).GenerateSVG()
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
}
