package ir

// FieldKind selects the shape of a field container.
type FieldKind string

const (
	// FieldSingle is one flat ordered sequence of token IDs.
	FieldSingle FieldKind = "single"
	// FieldArray is an N-dimensional grid whose leaf cells are each an
	// ordered sequence of token IDs.
	FieldArray FieldKind = "array"
)

// FieldDef describes the shape of one field. Immutable; shared by reference
// across every token instantiated from the same TokenDef.
type FieldDef struct {
	Kind FieldKind `json:"kind"`
	Dims []int     `json:"dims,omitempty"` // array only; every entry > 0
}

// TokenDef is an immutable token template. Count instructs the game manager
// to instantiate that many independent tokens at load time, all sharing this
// definition by reference.
type TokenDef struct {
	Name   string              `json:"name"`
	Fields map[string]FieldDef `json:"fields,omitempty"`
	Props  Props               `json:"props,omitempty"`
	Count  int                 `json:"count,omitempty"` // defaults to 1
}

// Instances returns the number of tokens to instantiate for this definition.
func (d *TokenDef) Instances() int {
	if d.Count < 1 {
		return 1
	}
	return d.Count
}

// GameDef is a compiled game definition: opaque metadata plus the ordered
// token templates. Rule predicates and handlers are Go code and are never
// part of a GameDef.
type GameDef struct {
	Name   string     `json:"name"`
	Meta   Object     `json:"meta,omitempty"`
	Tokens []TokenDef `json:"tokens"`
}

// State is the game's current state value. Wholesale-replaced on every
// transition - there is no partial merge. Always carries at least "name".
type State = Object

// StateName extracts the name field from a state value.
func StateName(s State) string {
	if n, ok := s["name"].(String); ok {
		return string(n)
	}
	return ""
}

// InitialState is the state entered by Game.Start before any entry rule has
// run.
const InitialState = "!initial"

// Built-in fields on the synthesized root token.
const (
	// RootTable holds tokens in play.
	RootTable = "!table"
	// RootBox holds tokens not yet (or no longer) in play. Freshly
	// instantiated tokens land here.
	RootBox = "!box"
)
