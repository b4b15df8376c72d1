package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridnav"
)

// executeCommand runs a fresh command tree, logging into a temp dir.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-file", filepath.Join(t.TempDir(), "gridnav.log")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "gridnav", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"generate", "find", "step", "trials", "serve", "tui", "init", "version"})
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    gridnav.Cell
		wantErr bool
	}{
		{"empty is unset", "", gridnav.Unset, false},
		{"plain", "3,4", gridnav.Cell{X: 3, Y: 4}, false},
		{"spaces", " 0 , 12 ", gridnav.Cell{X: 0, Y: 12}, false},
		{"missing y", "3", gridnav.Unset, true},
		{"three parts", "1,2,3", gridnav.Unset, true},
		{"not a number", "a,1", gridnav.Unset, true},
		{"bad y", "1,b", gridnav.Unset, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCell(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCmd(t *testing.T) {
	out, err := executeCommand(t, "generate", "--width", "6", "--height", "3", "--seed", "12", "--obstacles", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "seed 12, 6x3, 0 obstacles")
	assert.Contains(t, out, "......\n......\n......")
}

func TestGenerateCmd_RejectsBadProbability(t *testing.T) {
	_, err := executeCommand(t, "generate", "--seed", "1", "--obstacles", "1.5")
	require.ErrorIs(t, err, gridnav.ErrInvalidProbability)
}

func TestFindCmd_Text(t *testing.T) {
	out, err := executeCommand(t, "find",
		"--width", "5", "--height", "5", "--seed", "3", "--obstacles", "0",
		"--start", "0,0", "--end", "4,4", "--mode", "astar")
	require.NoError(t, err)

	assert.Contains(t, out, "S")
	assert.Contains(t, out, "E")
	assert.Contains(t, out, "success")
	assert.NotContains(t, out, "no path")
}

func TestFindCmd_Unconfigured(t *testing.T) {
	out, err := executeCommand(t, "find", "--seed", "3", "--end", "1,1")
	require.NoError(t, err)
	assert.Contains(t, out, "no path: set both --start and --end")
}

func TestFindCmd_Errors(t *testing.T) {
	_, err := executeCommand(t, "find", "--seed", "3", "--start", "99,0", "--end", "1,1")
	require.ErrorIs(t, err, gridnav.ErrOutOfBounds)

	_, err = executeCommand(t, "find", "--seed", "3", "--mode", "bfs")
	require.ErrorIs(t, err, gridnav.ErrUnknownMode)

	_, err = executeCommand(t, "find", "--seed", "3", "--start", "x")
	require.Error(t, err)

	_, err = executeCommand(t, "find", "--seed", "3", "--format", "xml")
	require.Error(t, err)
}

func TestStepCmd(t *testing.T) {
	out, err := executeCommand(t, "step",
		"--width", "3", "--height", "1", "--seed", "3", "--obstacles", "0",
		"--start", "0,0", "--end", "2,0")
	require.NoError(t, err)

	assert.Contains(t, out, "step 1 current (0,0) frontier 1 finalized 1")
	assert.Contains(t, out, "step 3 current (2,0)")
	assert.Contains(t, out, "S*E")
}

func TestStepCmd_Limit(t *testing.T) {
	out, err := executeCommand(t, "step",
		"--width", "5", "--height", "5", "--seed", "3", "--obstacles", "0",
		"--start", "0,0", "--end", "4,4", "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "step 2 ")
	assert.NotContains(t, out, "step 3 ")
}

func TestTrialsCmd(t *testing.T) {
	out, err := executeCommand(t, "trials",
		"--width", "10", "--height", "10", "--seed", "500", "--count", "12", "--parallel", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "10x10 grids")
	assert.Contains(t, out, "seeds 500..511")
	assert.Contains(t, out, "astar")
	assert.Contains(t, out, "dijkstra")
	assert.Contains(t, out, "12 TRIALS")
}

func TestFindCmd_StructuredFormats(t *testing.T) {
	args := []string{"find",
		"--width", "3", "--height", "1", "--seed", "9", "--obstacles", "0",
		"--start", "0,0", "--end", "2,0", "--mode", "dijkstra"}

	out, err := executeCommand(t, append(args, "--format", "json")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"seed": 9`)
	assert.Contains(t, out, `"mode": "dijkstra"`)
	assert.Contains(t, out, `"outcome": "success"`)
	assert.Contains(t, out, `"cost": 2`)

	out, err = executeCommand(t, append(args, "--format", "yaml")...)
	require.NoError(t, err)
	assert.Contains(t, out, "seed: 9")
	assert.Contains(t, out, "outcome: success")
	assert.Contains(t, out, "cost: 2")
}
