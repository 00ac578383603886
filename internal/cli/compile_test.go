package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidGame(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/tictactoe"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ Compiled")
	assert.Contains(t, output, "tictactoe")
	assert.Contains(t, output, "3 token type(s)")
	assert.Contains(t, output, "10 instance(s)")
}

func TestCompileValidGameJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/tictactoe"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestCompileInvalidGame(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/invalid"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ Compilation failed")
	assert.Contains(t, output, "E104") // array field without dims
	assert.Contains(t, output, "E107") // reserved "!" field name
}

func TestCompileMissingDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/no-such-dir"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompileWritesOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "game.json")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/tictactoe", "-o", outPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "tictactoe", result.Game.Name)
	require.Len(t, result.Game.Tokens, 3)
}

func TestCompileVerboseLogsToStderr(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", Verbose: true}
	cmd := NewCompileCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"testdata/tictactoe"})

	require.NoError(t, cmd.Execute())

	// JSON on stdout must stay parseable; diagnostics go to stderr.
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Contains(t, errOut.String(), "CUE file(s)")
}
