package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario("testdata/x-wins.yaml")
	require.NoError(t, err)

	assert.Equal(t, "x-wins", sc.Name)
	assert.NotEmpty(t, sc.Description)
	require.Len(t, sc.Moves, 5)

	assert.Equal(t, "place", sc.Moves[0].Move)
	assert.Equal(t, []any{0, 0}, sc.Moves[0].Params["cell"])

	require.NotNil(t, sc.Expect)
	assert.Equal(t, "won", sc.Expect.State)
	assert.Equal(t, "x", sc.Expect.StateProps["winner"])
	require.NotNil(t, sc.Expect.Choices)
	assert.Equal(t, 0, *sc.Expect.Choices)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/no-such-file.yaml")
	require.Error(t, err)
}

func TestLoadScenarioRequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("moves: []\n"), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenarioMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("moves: [unclosed\n"), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
}
