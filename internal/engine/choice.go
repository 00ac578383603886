package engine

import "github.com/roach88/tabula/internal/ir"

// Choice is one pending, possibly multi-parameter move under construction.
// A caller resolves parameters one at a time via NextChoice, assigns the
// picked value into Params, and hands the completed choice to
// Game.PerformMove. An abandoned choice is simply discarded.
//
// Later parameters' legal values may depend on earlier ones: generators
// receive the choice itself and read Params.
type Choice struct {
	// Name is the move name from the advertised template.
	Name string

	// Player is the player the move is offered to.
	Player string

	// Params holds the chosen values, keyed by choice name. Callers assign
	// entries directly; rules may preset extra keys that are not declared
	// choices.
	Params map[string]ir.Value

	specs   []ChoiceSpec
	filters []FilterChoices
}

// newChoice materializes a pending move from an advertised template,
// carrying the FilterChoices ops relevant to its move name.
func newChoice(tmpl MoveTemplate, filters []FilterChoices) *Choice {
	c := &Choice{
		Name:   tmpl.Name,
		Player: tmpl.Player,
		Params: make(map[string]ir.Value),
		specs:  tmpl.Choices,
	}
	for _, f := range filters {
		if f.Move == tmpl.Name {
			c.filters = append(c.filters, f)
		}
	}
	return c
}

// NextChoice describes the next unresolved parameter and its currently
// legal candidate values.
type NextChoice struct {
	Name   string
	Values []ir.Value
}

// NextChoice returns the first declared parameter (in template order) not
// yet present in Params, with its legal values: each candidate from the
// generator is tentatively set, Valid is consulted, and the candidate is
// unset again. Returns nil once the choice is complete.
func (c *Choice) NextChoice() *NextChoice {
	for _, spec := range c.specs {
		if _, ok := c.Params[spec.Name]; ok {
			continue
		}

		var legal []ir.Value
		for _, cand := range spec.Values(c) {
			c.Params[spec.Name] = cand
			if c.Valid() {
				legal = append(legal, cand)
			}
			delete(c.Params, spec.Name)
		}
		return &NextChoice{Name: spec.Name, Values: legal}
	}
	return nil
}

// Complete reports whether every declared choice name has an entry in
// Params. Membership only - Valid is a separate question. A move with no
// choices is trivially complete.
func (c *Choice) Complete() bool {
	for _, spec := range c.specs {
		if _, ok := c.Params[spec.Name]; !ok {
			return false
		}
	}
	return true
}

// Valid reports whether the currently-set params are legal:
//
//   - every set param that is a declared choice name must appear in that
//     choice's generator output, re-evaluated against the current Params
//   - every filter whose required params are all set must pass; filters
//     with unset required params are not yet enforceable and are skipped
//
// A move with no choices is trivially valid.
func (c *Choice) Valid() bool {
	for _, spec := range c.specs {
		v, ok := c.Params[spec.Name]
		if !ok {
			continue
		}
		if !containsValue(spec.Values(c), v) {
			return false
		}
	}

	for _, f := range c.filters {
		if !c.allSet(f.Requires) {
			continue
		}
		if f.Pred != nil && !f.Pred(c) {
			return false
		}
	}

	return true
}

func (c *Choice) allSet(names []string) bool {
	for _, n := range names {
		if _, ok := c.Params[n]; !ok {
			return false
		}
	}
	return true
}

func containsValue(values []ir.Value, v ir.Value) bool {
	for _, cand := range values {
		if ir.Equal(cand, v) {
			return true
		}
	}
	return false
}

// ParamsObject returns the params as an ir.Object snapshot, for journaling
// and logging.
func (c *Choice) ParamsObject() ir.Object {
	out := make(ir.Object, len(c.Params))
	for k, v := range c.Params {
		out[k] = v
	}
	return out
}
