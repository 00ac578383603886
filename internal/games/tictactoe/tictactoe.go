// Package tictactoe is the built-in demonstration game: a complete game
// definition (token templates plus entry/choice/call rules) driving the
// tabula engine end to end. It doubles as the reference for rule authors.
//
// Shape of play:
//   - "!initial": the board moves from the box to the table, then the
//     state changes to {turn, player: x}
//   - "turn": a "place" move is advertised; its single "cell" parameter
//     enumerates every board cell, constrained to empty cells by a
//     FilterChoices op
//   - submitting "place" moves the current player's next piece from the
//     box onto the chosen cell, then transitions to the next turn, a win,
//     or a draw
//   - "winner" is a call rule scanning the eight lines
package tictactoe

import (
	"github.com/roach88/tabula/internal/engine"
	"github.com/roach88/tabula/internal/ir"
	"github.com/roach88/tabula/internal/token"
)

// Board field dimensions.
const boardSize = 3

// Move and state names.
const (
	MovePlace  = "place"
	StateTurn  = "turn"
	StateWon   = "won"
	StateDraw  = "draw"
	CallWinner = "winner"
)

// Info returns the opaque game metadata.
func Info() ir.Object {
	return ir.Object{
		"name":    ir.String("tictactoe"),
		"players": ir.Int(2),
	}
}

// Tokens returns the ordered token templates: one board and nine pieces.
// X moves first and therefore gets the extra piece.
func Tokens() []ir.TokenDef {
	return []ir.TokenDef{
		{
			Name: "board",
			Fields: map[string]ir.FieldDef{
				"cells": {Kind: ir.FieldArray, Dims: []int{boardSize, boardSize}},
			},
			Props: ir.Props{"name": ir.String("board")},
		},
		{
			Name:  "x-piece",
			Props: ir.Props{"name": ir.String("piece"), "mark": ir.String("x"), "owner": ir.String("x")},
			Count: 5,
		},
		{
			Name:  "o-piece",
			Props: ir.Props{"name": ir.String("piece"), "mark": ir.String("o"), "owner": ir.String("o")},
			Count: 4,
		},
	}
}

// New constructs a ready-to-start tic-tac-toe game.
func New(opts ...engine.Option) (*engine.Game, error) {
	return engine.New(Info(), Tokens(), Rules(), opts...)
}

// Board finds the board token from the root.
func Board(g *engine.Game) *token.Token {
	return g.Root().Find(token.Name("board"), "", nil)
}

// CurrentPlayer reads the player mark from the state.
func CurrentPlayer(g *engine.Game) string {
	if p, ok := g.State()["player"].(ir.String); ok {
		return string(p)
	}
	return ""
}

// markAt returns the mark occupying a cell, or "" for an empty cell.
func markAt(board *token.Token, coords []int) string {
	pieces := board.Children("cells", coords)
	if len(pieces) == 0 {
		return ""
	}
	if m, ok := pieces[0].Prop("mark"); ok {
		if s, ok := m.(ir.String); ok {
			return string(s)
		}
	}
	return ""
}

func otherPlayer(mark string) string {
	if mark == "x" {
		return "o"
	}
	return "x"
}

func turnState(player string) ir.State {
	return ir.State{
		"name":   ir.String(StateTurn),
		"player": ir.String(player),
	}
}

// Rules returns the declarative rule set in declaration order.
func Rules() []engine.Rule {
	return []engine.Rule{
		{
			Name:  "setup",
			On:    engine.OnEntry,
			State: ir.InitialState,
			Fn: func(g *engine.Game, args ...any) any {
				board := Board(g)
				if err := board.MoveTo(g.Root(), ir.RootTable, nil); err != nil {
					return nil
				}
				return engine.Ops(engine.ChangeState{State: turnState("x")})
			},
		},
		{
			Name:  "offer-place",
			On:    engine.OnEntry,
			State: StateTurn,
			Fn: func(g *engine.Game, args ...any) any {
				board := Board(g)
				return engine.Ops(
					engine.AddChoices{Move: engine.MoveTemplate{
						Name:   MovePlace,
						Player: CurrentPlayer(g),
						Choices: []engine.ChoiceSpec{
							{
								Name: "cell",
								Values: func(c *engine.Choice) []ir.Value {
									coords := board.Field("cells").AllCoords()
									out := make([]ir.Value, 0, len(coords))
									for _, cc := range coords {
										out = append(out, ir.Coords(cc))
									}
									return out
								},
							},
						},
					}},
					engine.FilterChoices{
						Move:     MovePlace,
						Requires: []string{"cell"},
						Pred: func(c *engine.Choice) bool {
							coords, ok := ir.CoordsOf(c.Params["cell"])
							if !ok {
								return false
							}
							return markAt(board, coords) == ""
						},
					},
				)
			},
		},
		{
			Name: "apply-place",
			On:   engine.OnChoice,
			Pred: func(g *engine.Game, args ...any) bool {
				move, ok := moveArg(args)
				return ok && move.Name == MovePlace
			},
			Fn: func(g *engine.Game, args ...any) any {
				move, ok := moveArg(args)
				if !ok {
					return nil
				}
				coords, ok := ir.CoordsOf(move.Params["cell"])
				if !ok {
					return nil
				}

				player := CurrentPlayer(g)
				piece := g.Root().Find(token.Subset{
					"name": ir.String("piece"),
					"mark": ir.String(player),
				}, ir.RootBox, nil)
				if piece == nil {
					return nil
				}

				board := Board(g)
				if err := piece.MoveTo(board, "cells", coords); err != nil {
					return nil
				}

				if results := g.CallRule(CallWinner); len(results) > 0 {
					if mark, ok := results[0].(string); ok && mark != "" {
						return engine.Ops(engine.ChangeState{State: ir.State{
							"name":   ir.String(StateWon),
							"winner": ir.String(mark),
						}})
					}
				}

				if boardFull(board) {
					return engine.Ops(engine.ChangeState{State: ir.State{
						"name": ir.String(StateDraw),
					}})
				}

				return engine.Ops(engine.ChangeState{State: turnState(otherPlayer(player))})
			},
		},
		{
			Name: "scan-lines",
			On:   engine.OnCall,
			Call: CallWinner,
			Fn: func(g *engine.Game, args ...any) any {
				return winnerMark(Board(g))
			},
		},
	}
}

// moveArg extracts the submitted move from choice-trigger args.
func moveArg(args []any) (*engine.Choice, bool) {
	if len(args) == 0 {
		return nil, false
	}
	move, ok := args[0].(*engine.Choice)
	return move, ok
}

func boardFull(board *token.Token) bool {
	for _, coords := range board.Field("cells").AllCoords() {
		if markAt(board, coords) == "" {
			return false
		}
	}
	return true
}

// winnerMark scans rows, columns, and both diagonals. Returns "" when no
// line is complete.
func winnerMark(board *token.Token) string {
	lines := make([][][]int, 0, 2*boardSize+2)

	for i := 0; i < boardSize; i++ {
		var row, col [][]int
		for j := 0; j < boardSize; j++ {
			row = append(row, []int{i, j})
			col = append(col, []int{j, i})
		}
		lines = append(lines, row, col)
	}

	var diag, anti [][]int
	for i := 0; i < boardSize; i++ {
		diag = append(diag, []int{i, i})
		anti = append(anti, []int{i, boardSize - 1 - i})
	}
	lines = append(lines, diag, anti)

	for _, line := range lines {
		mark := markAt(board, line[0])
		if mark == "" {
			continue
		}
		won := true
		for _, coords := range line[1:] {
			if markAt(board, coords) != mark {
				won = false
				break
			}
		}
		if won {
			return mark
		}
	}
	return ""
}
