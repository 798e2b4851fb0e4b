package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/crossing"
	"github.com/anggasct/crossing/pkg/observers"
)

const rushHour = "../../pkg/sim/testdata/rush_hour.toml"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTableCommand(t *testing.T) {
	out, _, err := execute(t, "table")
	require.NoError(t, err)

	for _, p := range crossing.Phases() {
		assert.Contains(t, out, p.String())
	}
	assert.Contains(t, out, "110")
	assert.Contains(t, out, "clearance: [WALK_FLASH_ON_1 WALK_FLASH_OFF_1 WALK_FLASH_ON_2 WALK_FLASH_OFF_2 DONT_WALK]")
}

func TestGraphCommand_Stdout(t *testing.T) {
	out, _, err := execute(t, "graph", "--rankdir", "LR")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph Intersection")
	assert.Contains(t, out, "rankdir=LR;")
}

func TestGraphCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crossing.dot")
	out, _, err := execute(t, "graph", "-o", path, "--holds=false")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"GO_WEST" -> "GO_WEST"`)
}

func TestReplayCommand(t *testing.T) {
	out, logs, err := execute(t, "replay", rushHour, "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, "9 steps")
	assert.Contains(t, out, "WAIT_SOUTH")
	assert.Contains(t, out, "WALK_FLASH_ON_1")
	assert.Contains(t, out, "simulated time 4s")
	assert.Contains(t, logs, `"msg":"phase changed"`)
}

func TestReplayCommand_Steps(t *testing.T) {
	out, _, err := execute(t, "replay", rushHour, "--steps", "14", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "14 steps")
	assert.Contains(t, out, "DONT_WALK")
}

func TestReplayCommand_MissingScript(t *testing.T) {
	_, _, err := execute(t, "replay", "does-not-exist.toml")
	require.Error(t, err)
}

func TestRootCommand_BadFlags(t *testing.T) {
	_, _, err := execute(t, "table", "--log-level", "loud")
	require.Error(t, err)
	assert.True(t, crossing.IsConfigurationError(err))

	_, _, err = execute(t, "table", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	_, logs, err := execute(t, "graph", "-o", filepath.Join(t.TempDir(), "g.dot"),
		"--config", "../../pkg/config/testdata/crossing.toml")
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"graph written"`)
}

func TestRenderMetrics(t *testing.T) {
	m := observers.Metrics{
		Steps:       3,
		Visits:      map[crossing.Phase]int{crossing.GoWest: 2, crossing.WaitWest: 1},
		TicksIn:     map[crossing.Phase]crossing.Ticks{crossing.GoWest: 100, crossing.WaitWest: 25},
		Transitions: map[string]int{"GO_WEST->WAIT_WEST": 1},
		Errors:      2,
	}
	out := renderMetrics(m)
	assert.Contains(t, out, "GO_WEST")
	assert.Contains(t, out, "1.25s")
	assert.Contains(t, out, "phase changes 1")
	assert.Contains(t, out, "output errors 2")
	assert.NotContains(t, out, "GO_SOUTH")
}
