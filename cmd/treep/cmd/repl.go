package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/hm"
	"github.com/treep-lang/treep/internal/interp"
	"github.com/treep-lang/treep/internal/macro"
	"github.com/treep-lang/treep/internal/normalize"
	"github.com/treep-lang/treep/internal/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive TreeP session",
	Long: `Read-eval-print loop. Each line runs through the full pipeline
(parse, normalize, macro-expand, infer, evaluate) against environments
that persist across lines, so defs and lets accumulate.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func evalStatements(ev *interp.Evaluator, env *interp.Environment, tree *element.Element) (interp.Object, error) {
	var last interp.Object = interp.UnitValue
	for _, stmt := range tree.Children {
		v, err := ev.Eval(env, stmt)
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*interp.ReturnValue); ok {
			return rv.Value, nil
		}
		last = v
	}
	return last, nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	color := diagnostics.UseColor(os.Stderr)
	expander := macro.New()
	typeEnv := hm.NewEnv()
	ev := interp.New(os.Stdout)
	env := ev.NewGlobalEnv()

	fmt.Println("TreeP repl — empty line or Ctrl-D to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			return nil
		}

		p := parser.New("<repl>", line)
		prog := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			fmt.Fprint(os.Stderr, diagnostics.FormatErrors(errs, color))
			continue
		}
		tree, err := expander.Expand(normalize.Normalize(prog))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		typ, err := hm.NewInferencer().Infer(typeEnv, tree)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		// Unlike `treep run`, a bound main is not re-invoked per line;
		// statements evaluate directly against the persistent env.
		result, err := evalStatements(ev, env, tree)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if _, isUnit := result.(*interp.Unit); !isUnit {
			fmt.Printf("%s : %s\n", result.Inspect(), typ)
		}
	}
}
