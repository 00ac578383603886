package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/roach88/tabula/internal/ir"
	"github.com/roach88/tabula/internal/token"
)

// Game is one logical game instance: the authoritative token tree, the
// current state value, and the rule registry. All mutation funnels through
// a single Game; there are no process-wide singletons.
//
// INVARIANTS:
//   - rule slice order inside each bucket NEVER changes after construction;
//     resolution depends on declaration order
//   - the state value is wholesale-replaced, never partially merged
//   - token IDs are assigned sequentially at load time, root first
type Game struct {
	info  any
	tree  *token.Tree
	state ir.State

	entry  []Rule
	choice []Rule
	call   []Rule

	// Advertised AddChoices templates and active FilterChoices constraints
	// from the most recent resolution pass.
	templates []MoveTemplate
	filters   []FilterChoices

	clock      *Clock
	recorder   Recorder
	maxCascade int // 0 = unbounded, matching the source semantics
}

// Option configures a Game.
type Option func(*Game)

// WithMaxCascade bounds recursive ChangeState resolution. The default (0)
// leaves cascades unbounded: a rule set whose entry rules always re-trigger
// another state change will exhaust the stack, exactly as authored. The
// guard is opt-in so the engine never silently rewrites rule semantics.
func WithMaxCascade(limit int) Option {
	return func(g *Game) {
		g.maxCascade = limit
	}
}

// WithRecorder wires a journal. Recorder errors are logged and play
// continues.
func WithRecorder(r Recorder) Option {
	return func(g *Game) {
		g.recorder = r
	}
}

// WithRand injects the shuffle randomness source. Tests pass a seeded rand
// for deterministic shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.tree = token.NewTree(rng)
	}
}

// WithClock injects a pre-positioned clock, used to resume a journaled game
// from its last sequence number.
func WithClock(c *Clock) Option {
	return func(g *Game) {
		g.clock = c
	}
}

// New creates a Game from opaque game metadata, ordered token definitions,
// and ordered rule declarations.
//
// Each token definition is instantiated Count times (default 1) as a direct
// child of the synthesized root's "!box" field, in declaration order, so
// token IDs are reproducible across runs. Rules are partitioned by trigger;
// order within each bucket is declaration order and is preserved for the
// lifetime of the game.
func New(info any, tokens []ir.TokenDef, rules []Rule, opts ...Option) (*Game, error) {
	g := &Game{
		info:     info,
		state:    ir.State{},
		clock:    NewClock(),
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(g)
	}
	if g.tree == nil {
		g.tree = token.NewTree(rand.New(rand.NewSource(rand.Int63())))
	}

	for i := range tokens {
		def := &tokens[i]
		for n := 0; n < def.Instances(); n++ {
			if _, err := g.tree.Spawn(g.tree.Root(), ir.RootBox, nil, def); err != nil {
				return nil, &RuntimeError{
					Code:    ErrCodeBadDefinition,
					Message: fmt.Sprintf("token definition %d (%s): %v", i, def.Name, err),
				}
			}
		}
	}

	for _, r := range rules {
		switch r.On {
		case OnEntry:
			g.entry = append(g.entry, r)
		case OnChoice:
			g.choice = append(g.choice, r)
		case OnCall:
			g.call = append(g.call, r)
		default:
			return nil, &RuntimeError{
				Code:    ErrCodeBadDefinition,
				Message: fmt.Sprintf("rule %q: unknown trigger %q", r.Name, r.On),
			}
		}
	}

	return g, nil
}

// Info returns the opaque game metadata passed to New, untouched.
func (g *Game) Info() any {
	return g.info
}

// Root returns the synthetic root token, the entry point for all tree
// queries.
func (g *Game) Root() *token.Token {
	return g.tree.Root()
}

// Tree returns the token tree for collaborators that render or serialize
// state.
func (g *Game) Tree() *token.Tree {
	return g.tree
}

// State returns the current state value. Treat as read-only; transitions go
// through ChangeState ops.
func (g *Game) State() ir.State {
	return g.state
}

// StateName returns the current state's name.
func (g *Game) StateName() string {
	return ir.StateName(g.state)
}

// Clock returns the game's logical clock.
func (g *Game) Clock() *Clock {
	return g.clock
}

// Start begins the state machine: the state becomes {name: "!initial"} and
// entry rules resolve against it.
func (g *Game) Start() error {
	return g.setState(ir.State{"name": ir.String(ir.InitialState)}, 0)
}

// setState replaces the state wholesale, journals the transition, and
// resolves entry rules against the new state. Cascading ChangeState ops
// re-enter here with depth+1.
func (g *Game) setState(next ir.State, depth int) error {
	if g.maxCascade > 0 && depth > g.maxCascade {
		return NewCascadeError(ir.StateName(next), depth, g.maxCascade)
	}

	from := g.state
	g.state = next
	seq := g.clock.Next()

	slog.Info("state changed",
		"from", ir.StateName(from),
		"to", ir.StateName(next),
		"seq", seq,
		"depth", depth,
	)

	if err := g.recorder.RecordTransition(seq, from, next); err != nil {
		// Log and continue: retrying a journal write would make replay
		// non-deterministic.
		slog.Error("journal transition failed",
			"error", err,
			"seq", seq,
			"to", ir.StateName(next),
		)
	}

	return g.applyRules(g.entry, depth)
}

// GetChoices materializes one Choice per currently advertised move
// template, each carrying the active FilterChoices set for its move name.
// Templates are re-materialized on every call: a Choice holds caller-local
// params and is never shared.
func (g *Game) GetChoices() []*Choice {
	out := make([]*Choice, 0, len(g.templates))
	for _, tmpl := range g.templates {
		out = append(out, newChoice(tmpl, g.filters))
	}
	return out
}

// PerformMove applies a completed move's effects by resolving choice rules
// against (game, move). No built-in filtering by move name: choice rule
// predicates are expected to test move.Name themselves. The engine does not
// re-check Valid here - rejecting invalid submissions is the collaborator's
// responsibility, with Choice.Valid as the predicate.
func (g *Game) PerformMove(move *Choice) error {
	if move == nil {
		return &RuntimeError{
			Code:    ErrCodeMissingMove,
			Message: "perform move: move is required",
		}
	}

	seq := g.clock.Next()
	slog.Info("move submitted",
		"move", move.Name,
		"player", move.Player,
		"seq", seq,
	)

	if err := g.recorder.RecordMove(seq, move.Name, move.ParamsObject()); err != nil {
		slog.Error("journal move failed",
			"error", err,
			"seq", seq,
			"move", move.Name,
		)
	}

	return g.applyRules(g.choice, 0, move)
}

// CallRule invokes the ad hoc extension point named callName: call-bucket
// rules with that name resolve via runRules and their results are returned
// directly, not interpreted as Ops.
func (g *Game) CallRule(callName string, args ...any) []any {
	matching := make([]Rule, 0, len(g.call))
	for _, r := range g.call {
		if r.Call == callName {
			matching = append(matching, r)
		}
	}
	return g.runRules(matching, args...)
}
