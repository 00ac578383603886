package cli

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/roach88/tabula/internal/engine"
	"github.com/roach88/tabula/internal/games/tictactoe"
	"github.com/roach88/tabula/internal/harness"
	"github.com/roach88/tabula/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Journal string
	Seed    int64
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Play a scripted game from a YAML scenario",
		Long: `Play the built-in tic-tac-toe game from a YAML move script.

The engine instantiates the game, resolves the scripted moves in order,
and prints the final state. With --journal, every transition and move
is recorded to a SQLite journal (created if it doesn't exist).

Example:
  tabula run ./scenario.yaml
  tabula run --journal ./game.db ./scenario.yaml --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (optional)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for shuffles (0 = nondeterministic)")

	return cmd
}

func runScenario(opts *RunOptions, scenarioPath string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	sc, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	slog.Info("scenario loaded", "name", sc.Name, "moves", len(sc.Moves))

	var gameOpts []engine.Option
	if opts.Seed != 0 {
		gameOpts = append(gameOpts, engine.WithRand(rand.New(rand.NewSource(opts.Seed))))
	}

	if opts.Journal != "" {
		slog.Info("opening journal", "path", opts.Journal)
		j, err := store.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()
		gameOpts = append(gameOpts, engine.WithRecorder(j))
	}

	g, err := tictactoe.New(gameOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create game", err)
	}

	if err := harness.Play(g, sc); err != nil {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %q failed: %v", sc.Name, err))
	}

	return outputRunResult(opts, g, cmd)
}

// outputRunResult prints the final game state after a scenario completes.
func outputRunResult(opts *RunOptions, g *engine.Game, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if formatter.Format == "json" {
		snap, err := harness.Snapshot(g)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to render final state", err)
		}
		fmt.Fprintln(formatter.Writer, string(snap))
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Scenario complete\n")
	fmt.Fprintf(formatter.Writer, "  state: %s\n", g.StateName())
	fmt.Fprintf(formatter.Writer, "  seq:   %d\n", g.Clock().Current())
	if choices := g.GetChoices(); len(choices) > 0 {
		fmt.Fprintf(formatter.Writer, "  open moves: %d\n", len(choices))
	}

	return nil
}
