package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGameDef(t *testing.T) {
	result, err := LoadGameDef("testdata/tictactoe")
	require.NoError(t, err)

	assert.Equal(t, 1, result.FileCount)
	require.NotNil(t, result.Game)
	assert.Equal(t, "tictactoe", result.Game.Name)
	assert.Len(t, result.Game.Tokens, 3)
}

func TestLoadGameDefMissingDirectory(t *testing.T) {
	_, err := LoadGameDef("testdata/no-such-dir")
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadGameDefNotADirectory(t *testing.T) {
	_, err := LoadGameDef("testdata/x-wins.yaml")
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadGameDefNoCUEFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadGameDef(dir)
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNoFiles, loadErr.Code)
}

func TestLoadGameDefNoGameStruct(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.cue"), []byte("package game\n\nother: {x: 1}\n"), 0644))

	_, err := LoadGameDef(dir)
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeGeneric, loadErr.Code)
	assert.Contains(t, loadErr.Message, `"game"`)
}

func TestLoadGameDefSyntaxError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte(`game: { name: `), 0644))

	_, err := LoadGameDef(dir)
	require.Error(t, err)
}

func TestFindCUEFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cue"), []byte(`a: 1`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.cue"), []byte(`b: 2`), 0644))

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
