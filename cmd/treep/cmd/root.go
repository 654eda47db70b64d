package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/config"
	"github.com/treep-lang/treep/internal/diagnostics"
)

var rootCmd = &cobra.Command{
	Use:   "treep",
	Short: "TreeP language toolchain",
	Long: `treep is the toolchain for TreeP, a small functional language in
which every phase after parsing operates on a single uniform tree
representation (the Element tree).

Subcommands cover each pipeline stage: tokenize, macro-expand,
type-check, run, and apply declarative tree-rewrite rules.`,
	Version: config.Version,
}

// exitCode carries the process exit status out of a successful `run`
// invocation (the integer main returns, per the language's exit
// behavior). Cobra errors map to exit status 1 instead.
var exitCode int

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "report per-stage timings")
}

// readInput resolves a command's source text from either the -e flag or
// a single file argument.
func readInput(evalExpr string, args []string) (filename, source string, err error) {
	if evalExpr != "" {
		return "<eval>", evalExpr, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return args[0], string(content), nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// reportErrors pretty-prints every diagnostic a pipeline run collected
// and returns an error summarizing the count, so RunE callers fail the
// command after printing.
func reportErrors(errs []*diagnostics.Error) error {
	fmt.Fprint(os.Stderr, diagnostics.FormatErrors(errs, diagnostics.UseColor(os.Stderr)))
	return fmt.Errorf("failed with %d error(s)", len(errs))
}
