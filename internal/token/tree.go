// Package token implements the rooted token tree: every piece of game
// state - boards, cards, hands, markers - is a token owning shaped fields
// of child token IDs and a mutable props bag.
//
// INVARIANTS:
//   - IDs are assigned sequentially starting at 0 (the root) and are stable
//     for the tree's lifetime
//   - every token except the root has exactly one non-nil parent link
//   - a token's ID appears in exactly one field cell across the whole tree;
//     MoveTo removes it from its current cell and appends it to the
//     destination cell as one step
package token

import (
	"fmt"
	"math/rand"

	"github.com/roach88/tabula/internal/field"
	"github.com/roach88/tabula/internal/ir"
)

// rootDef is the synthesized root token's definition: two built-in single
// fields and no props. The root has no parent and never has an owner.
var rootDef = ir.TokenDef{
	Name: "!root",
	Fields: map[string]ir.FieldDef{
		ir.RootTable: {Kind: ir.FieldSingle},
		ir.RootBox:   {Kind: ir.FieldSingle},
	},
}

// Tree owns every token of one game instance and hands out IDs. Not safe
// for concurrent use: one game instance is single-threaded by design.
type Tree struct {
	nodes  map[int]*Token
	nextID int
	rng    *rand.Rand
}

// NewTree creates a tree holding only the synthesized root (ID 0).
// The rng drives ShuffleField; pass a seeded source for deterministic play.
func NewTree(rng *rand.Rand) *Tree {
	t := &Tree{
		nodes: make(map[int]*Token),
		rng:   rng,
	}
	t.newToken(&rootDef)
	return t
}

// Root returns the synthesized root token.
func (t *Tree) Root() *Token {
	return t.nodes[0]
}

// Get returns the token with the given ID, or nil.
func (t *Tree) Get(id int) *Token {
	return t.nodes[id]
}

// Len returns the number of tokens in the tree, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Spawn instantiates def as a new token appended to the addressed cell of
// parent's field. Returns an error if parent is nil or does not declare the
// field.
func (t *Tree) Spawn(parent *Token, fieldName string, coords []int, def *ir.TokenDef) (*Token, error) {
	if parent == nil {
		return nil, fmt.Errorf("spawn: parent token is required")
	}
	if def == nil {
		return nil, fmt.Errorf("spawn: token definition is required")
	}
	pf, ok := parent.fields[fieldName]
	if !ok {
		return nil, fmt.Errorf("spawn: parent has no field %q", fieldName)
	}

	tok := t.newToken(def)
	if err := pf.Append(coords, tok.id); err != nil {
		delete(t.nodes, tok.id)
		t.nextID--
		return nil, fmt.Errorf("spawn: %w", err)
	}
	tok.parent = &parentLink{id: parent.id, field: fieldName, coords: cloneCoords(coords)}
	return tok, nil
}

// newToken builds a token with the next sequential ID, cloning the
// definition's props and creating one empty field per declared field name.
func (t *Tree) newToken(def *ir.TokenDef) *Token {
	tok := &Token{
		tree:   t,
		id:     t.nextID,
		def:    def,
		props:  def.Props.Clone(),
		fields: make(map[string]*field.Field, len(def.Fields)),
	}
	if tok.props == nil {
		tok.props = ir.Props{}
	}
	for name, fd := range def.Fields {
		tok.fields[name] = field.New(fd)
	}
	t.nodes[tok.id] = tok
	t.nextID++
	return tok
}

func cloneCoords(coords []int) []int {
	if coords == nil {
		return nil
	}
	out := make([]int, len(coords))
	copy(out, coords)
	return out
}
