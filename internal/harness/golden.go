package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tabula/internal/engine"
	"github.com/roach88/tabula/internal/ir"
	"github.com/roach88/tabula/internal/token"
)

// Snapshot renders a game as canonical JSON: the state value plus the full
// token tree. Equal game states always produce identical bytes, so a
// snapshot diff is a behavior diff.
//
// Tree rendering, per token:
//
//	{"fields": {...}, "id": N, "props": {...}}
//
// Single fields render as the list of child renders in cell order; array
// fields render as a list of {"coords": [...], "tokens": [...]} entries
// for non-empty cells only, in coordinate enumeration order.
func Snapshot(g *engine.Game) ([]byte, error) {
	return ir.MarshalCanonical(ir.Object{
		"state": g.State(),
		"tree":  renderToken(g.Root()),
	})
}

// AssertGolden snapshots the game and compares against
// testdata/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, g *engine.Game) {
	t.Helper()

	snap, err := Snapshot(g)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, name, snap)
}

func renderToken(tok *token.Token) ir.Object {
	fields := ir.Object{}
	for _, name := range tok.FieldNames() {
		fields[name] = renderField(tok, name)
	}

	return ir.Object{
		"id":     ir.Int(int64(tok.ID())),
		"props":  tok.Props(),
		"fields": fields,
	}
}

func renderField(tok *token.Token, name string) ir.Value {
	f := tok.Field(name)

	if f.Def().Kind != ir.FieldArray {
		return renderCell(tok, name, nil)
	}

	cells := ir.List{}
	for _, coords := range f.AllCoords() {
		children := renderCell(tok, name, coords)
		if len(children) == 0 {
			continue
		}
		cells = append(cells, ir.Object{
			"coords": ir.Coords(coords),
			"tokens": children,
		})
	}
	return cells
}

func renderCell(tok *token.Token, name string, coords []int) ir.List {
	children := tok.Children(name, coords)
	out := make(ir.List, 0, len(children))
	for _, child := range children {
		out = append(out, renderToken(child))
	}
	return out
}
