package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tabula/internal/compiler"
	"github.com/roach88/tabula/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult holds the compiled game definition.
type CompilationResult struct {
	Game *ir.GameDef `json:"game"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	TokenCount    int
	InstanceCount int
	FieldCount    int
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <game-dir>",
		Short: "Compile a CUE game definition",
		Long: `Compile a CUE game definition to its canonical form.

The compiler parses CUE files, validates the token and field
declarations, and outputs canonical JSON for use by the engine.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, gameDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, err := LoadGameDef(gameDir)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, gameDir)
	for _, tok := range loadResult.Game.Tokens {
		formatter.VerboseLog("Compiling token: %s", tok.Name)
	}

	// Schema validation on the compiled definition
	if validationErrs := compiler.Validate(loadResult.Game); len(validationErrs) > 0 {
		return outputCompileErrors(formatter, validationErrs)
	}

	result := &CompilationResult{Game: loadResult.Game}
	stats := calculateStats(result)

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeDefToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeGeneric, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, stats, opts.Output)
}

// calculateStats computes summary statistics from a compilation result.
func calculateStats(result *CompilationResult) CompilationStats {
	stats := CompilationStats{
		TokenCount: len(result.Game.Tokens),
	}

	for _, tok := range result.Game.Tokens {
		stats.InstanceCount += tok.Instances()
		stats.FieldCount += len(tok.Fields)
	}

	return stats
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, stats CompilationStats, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Compiled game %q: %d token type(s), %d instance(s)\n\n",
		result.Game.Name, stats.TokenCount, stats.InstanceCount)

	fmt.Fprintln(formatter.Writer, "Tokens:")
	for _, tok := range result.Game.Tokens {
		fmt.Fprintf(formatter.Writer, "  %s: %d instance(s), %d field(s)\n",
			tok.Name, tok.Instances(), len(tok.Fields))
	}
	fmt.Fprintln(formatter.Writer)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote canonical definition to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple validation errors found during compilation.
func outputCompileErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, verr := range errs {
			cliErrors[i] = CLIError{
				Code:    verr.Code,
				Message: verr.Message,
			}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, verr := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", verr.Code, verr.Field, verr.Message)
	}
	fmt.Fprintln(formatter.Writer)

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// writeDefToFile writes the compilation result to a file.
func writeDefToFile(result *CompilationResult, filename string) error {
	// Indented JSON for readability; canonical JSON without indentation
	// is used only for hashing.
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling definition: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
