package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tabula/internal/engine"
	"github.com/roach88/tabula/internal/ir"
)

// tinyGame is a minimal two-token game: setup moves the mat onto the table
// and parks the state in "ready". Small enough that its snapshot stays
// readable in a golden file.
func tinyGame(t *testing.T) *engine.Game {
	t.Helper()

	tokens := []ir.TokenDef{
		{
			Name:  "mat",
			Props: ir.Props{"name": ir.String("mat")},
			Fields: map[string]ir.FieldDef{
				"stack": {Kind: ir.FieldSingle},
			},
		},
		{
			Name:  "chip",
			Props: ir.Props{"name": ir.String("chip")},
			Count: 2,
		},
	}

	rules := []engine.Rule{
		{
			Name:  "setup",
			On:    engine.OnEntry,
			State: ir.InitialState,
			Fn: func(g *engine.Game, args ...any) any {
				mat := g.Root().Children(ir.RootBox, nil)[0]
				if err := mat.MoveTo(g.Root(), ir.RootTable, nil); err != nil {
					return nil
				}
				return engine.Ops(engine.ChangeState{State: ir.State{"name": ir.String("ready")}})
			},
		},
	}

	g, err := engine.New(nil, tokens, rules)
	require.NoError(t, err)
	return g
}

func TestSnapshotGolden(t *testing.T) {
	g := tinyGame(t)
	require.NoError(t, g.Start())

	AssertGolden(t, "tiny-setup", g)
}

func TestSnapshotDeterministic(t *testing.T) {
	g := tinyGame(t)
	require.NoError(t, g.Start())

	first, err := Snapshot(g)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Snapshot(g)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestSnapshotOmitsEmptyArrayCells(t *testing.T) {
	tokens := []ir.TokenDef{
		{
			Name:  "grid",
			Props: ir.Props{"name": ir.String("grid")},
			Fields: map[string]ir.FieldDef{
				"cells": {Kind: ir.FieldArray, Dims: []int{2, 2}},
			},
		},
	}

	g, err := engine.New(nil, tokens, nil)
	require.NoError(t, err)
	require.NoError(t, g.Start())

	snap, err := Snapshot(g)
	require.NoError(t, err)
	assert.Contains(t, string(snap), `"cells":[]`, "empty cells are omitted entirely")
	assert.NotContains(t, string(snap), `"coords"`)
}
