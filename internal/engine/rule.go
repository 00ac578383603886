package engine

import "log/slog"

// Trigger partitions rules into the three resolution buckets.
type Trigger string

const (
	// OnEntry rules run whenever the state machine enters a state.
	OnEntry Trigger = "entry"
	// OnChoice rules run when a completed move is submitted.
	OnChoice Trigger = "choice"
	// OnCall rules are ad hoc named extension points invoked outside the
	// state machine.
	OnCall Trigger = "call"
)

// Predicate gates a rule against the current game and trigger arguments.
type Predicate func(g *Game, args ...any) bool

// Handler is a rule's effect function. Entry and choice handlers return a
// []Op (or nil); call handlers return whatever the call site expects.
type Handler func(g *Game, args ...any) any

// Rule is one declarative rule: trigger, optional state filter, optional
// predicate, handler. Immutable once registered. Declaration order is
// semantically significant: among applicable rules sharing a name, the one
// declared latest wins, and distinct names run latest-declared first.
type Rule struct {
	// Name identifies the rule for deduplication. Reusing a name is how a
	// later rule overrides an earlier one in a narrower state.
	Name string

	// On selects the resolution bucket.
	On Trigger

	// State, when non-empty, restricts the rule to states with this name.
	State string

	// Call names the extension point for OnCall rules; ignored otherwise.
	Call string

	// Pred, when non-nil, must return true for the rule to apply.
	Pred Predicate

	// Fn is invoked for each surviving rule. A nil Fn contributes nothing
	// but still shadows earlier rules of the same name.
	Fn Handler
}

// runRules is the core resolution algorithm, shared by every trigger kind:
//
//  1. Filter to rules whose state filter is absent or equals the current
//     state's name AND whose predicate is absent or passes.
//  2. Walk the survivors in reverse declaration order, deduplicating by
//     name (first hit per name survives). Net effect: the latest-declared
//     rule of a name wins, and distinct names run latest-declared first.
//  3. Invoke each survivor's handler, dropping nil results.
//
// Returns the ordered non-nil handler results.
func (g *Game) runRules(rules []Rule, args ...any) []any {
	stateName := g.StateName()

	applicable := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.State != "" && r.State != stateName {
			continue
		}
		if r.Pred != nil && !r.Pred(g, args...) {
			continue
		}
		applicable = append(applicable, r)
	}

	seen := make(map[string]bool, len(applicable))
	var results []any
	for i := len(applicable) - 1; i >= 0; i-- {
		r := applicable[i]
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		if r.Fn == nil {
			continue
		}

		slog.Debug("rule fired",
			"rule", r.Name,
			"trigger", r.On,
			"state", stateName,
		)

		if res := r.Fn(g, args...); res != nil {
			results = append(results, res)
		}
	}

	return results
}

// applyRules wraps runRules and interprets the results as Ops:
//
//   - Handler results are flattened into one op sequence ([]Op or a single
//     Op per result).
//   - If any ChangeState op is present, the FIRST one in resolved order is
//     applied: the state is replaced wholesale and entry rules re-resolve
//     against the new state. No other op kind from this pass is processed.
//   - Otherwise FilterChoices ops become the active constraint set and
//     AddChoices ops, deduplicated by move name (first occurrence - the
//     latest-declared rule's op - wins), become the advertised templates.
func (g *Game) applyRules(rules []Rule, depth int, args ...any) error {
	results := g.runRules(rules, args...)

	var ops []Op
	for _, res := range results {
		switch v := res.(type) {
		case []Op:
			ops = append(ops, v...)
		case Op:
			ops = append(ops, v)
		}
	}

	for _, op := range ops {
		if cs, ok := op.(ChangeState); ok {
			return g.setState(cs.State, depth+1)
		}
	}

	var filters []FilterChoices
	var templates []MoveTemplate
	seen := make(map[string]bool)
	for _, op := range ops {
		switch v := op.(type) {
		case FilterChoices:
			filters = append(filters, v)
		case AddChoices:
			if seen[v.Move.Name] {
				continue
			}
			seen[v.Move.Name] = true
			templates = append(templates, v.Move)
		}
	}

	g.filters = filters
	g.templates = templates
	return nil
}
