package harness

import (
	"fmt"

	"github.com/roach88/tabula/internal/engine"
	"github.com/roach88/tabula/internal/ir"
)

// Play starts the game and applies every scripted move in order.
//
// For each step the advertised choices are consulted fresh: the step's move
// name must be among them, every param must convert to a prop value, and
// the completed choice must be Complete and Valid before it is submitted.
// Any deviation fails the scenario immediately with a positioned error.
func Play(g *engine.Game, sc *Scenario) error {
	if err := g.Start(); err != nil {
		return fmt.Errorf("scenario %s: start: %w", sc.Name, err)
	}

	for i, step := range sc.Moves {
		if err := playStep(g, step); err != nil {
			return fmt.Errorf("scenario %s: move %d (%s): %w", sc.Name, i, step.Move, err)
		}
	}

	return nil
}

func playStep(g *engine.Game, step MoveStep) error {
	choice := findChoice(g, step.Move)
	if choice == nil {
		return fmt.Errorf("move %q is not advertised in state %q", step.Move, g.StateName())
	}

	for name, raw := range step.Params {
		v, err := ir.FromGo(raw)
		if err != nil {
			return fmt.Errorf("param %q: %w", name, err)
		}
		choice.Params[name] = v
	}

	if !choice.Complete() {
		next := choice.NextChoice()
		return fmt.Errorf("incomplete move: next unresolved choice is %q", next.Name)
	}
	if !choice.Valid() {
		return fmt.Errorf("invalid params for move %q", step.Move)
	}

	return g.PerformMove(choice)
}

// findChoice returns the advertised choice with the given move name, or
// nil.
func findChoice(g *engine.Game, name string) *engine.Choice {
	for _, c := range g.GetChoices() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
