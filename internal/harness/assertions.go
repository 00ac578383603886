package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tabula/internal/engine"
	"github.com/roach88/tabula/internal/ir"
)

// Assert validates a scenario's expectations against the final game state.
// A scenario without expectations passes vacuously.
func Assert(t *testing.T, g *engine.Game, sc *Scenario) {
	t.Helper()

	if sc.Expect == nil {
		return
	}

	if sc.Expect.State != "" {
		require.Equal(t, sc.Expect.State, g.StateName(),
			"scenario %s: final state name", sc.Name)
	}

	for key, raw := range sc.Expect.StateProps {
		want, err := ir.FromGo(raw)
		require.NoError(t, err, "scenario %s: expected state prop %q", sc.Name, key)

		got, ok := g.State()[key]
		require.True(t, ok, "scenario %s: state is missing %q", sc.Name, key)
		require.True(t, ir.Equal(want, got),
			"scenario %s: state prop %q: want %v, got %v", sc.Name, key, want, got)
	}

	if sc.Expect.Choices != nil {
		require.Len(t, g.GetChoices(), *sc.Expect.Choices,
			"scenario %s: advertised choice count", sc.Name)
	}
}

// Run loads, plays, and asserts one scenario file end to end.
func Run(t *testing.T, g *engine.Game, path string) *Scenario {
	t.Helper()

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, Play(g, sc))
	Assert(t, g, sc)
	return sc
}
