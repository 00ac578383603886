package engine

import "github.com/roach88/tabula/internal/ir"

// Op is one declarative effect returned by a rule handler. Ops are produced
// transiently per resolution pass and never persisted.
//
// The three kinds:
//   - ChangeState: replace the state wholesale and re-resolve entry rules
//   - AddChoices: advertise a move template for callers to complete
//   - FilterChoices: constrain the legal parameter values of a move
type Op interface {
	op() // Sealed - only the three kinds implement it
}

// ChangeState replaces the game state with State. The first ChangeState in
// a resolution pass wins; all other ops from that pass are discarded.
type ChangeState struct {
	State ir.State
}

func (ChangeState) op() {}

// AddChoices advertises one move template. When multiple applicable rules
// advertise the same move name, the latest-declared rule's template wins.
type AddChoices struct {
	Move MoveTemplate
}

func (AddChoices) op() {}

// FilterChoices constrains a move's parameters. The predicate is enforced
// only once every required param is set on the choice under construction;
// until then the op is not yet enforceable and is skipped.
type FilterChoices struct {
	// Move names the move template this filter applies to.
	Move string

	// Requires lists the choice names that must be set before Pred can be
	// evaluated.
	Requires []string

	// Pred reports whether the choice's current params are legal.
	Pred func(c *Choice) bool
}

func (FilterChoices) op() {}

// Ops is a convenience constructor for handler return values.
func Ops(ops ...Op) []Op {
	return ops
}

// MoveTemplate describes one advertised move: its name, the player it is
// offered to, and the ordered parameters a caller must resolve. Parameter
// order is declaration order - NextChoice resolves them front to back.
type MoveTemplate struct {
	Name    string
	Player  string
	Choices []ChoiceSpec
}

// ChoiceSpec declares one parameter of a move: its name and a generator
// producing the ordered candidate values given the params set so far.
type ChoiceSpec struct {
	Name   string
	Values func(c *Choice) []ir.Value
}
