package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/hm"
	"github.com/treep-lang/treep/internal/lexer"
	"github.com/treep-lang/treep/internal/macro"
	"github.com/treep-lang/treep/internal/normalize"
	"github.com/treep-lang/treep/internal/parser"
	"github.com/treep-lang/treep/internal/pipeline"
)

var typecheckEval string

var typecheckCmd = &cobra.Command{
	Use:   "typecheck [file]",
	Short: "Type-check a TreeP file without running it",
	Long: `Run the full frontend (lex, parse, normalize, macro-expand,
infer) and print the program's inferred type. Exits non-zero on any
type error.

Examples:
  treep typecheck hello.tp
  treep typecheck -e "def add(x, y) { return x + y } add"`,
	Args: cobra.MaximumNArgs(1),
	RunE: typecheckScript,
}

func init() {
	rootCmd.AddCommand(typecheckCmd)

	typecheckCmd.Flags().StringVarP(&typecheckEval, "eval", "e", "", "type-check inline code instead of reading from file")
}

func typecheckScript(cmd *cobra.Command, args []string) error {
	filename, source, err := readInput(typecheckEval, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	ctx := pipeline.NewContext(filename, source, io.Discard)
	ctx.Verbose = verbose
	pipeline.New(
		&lexer.Processor{},
		&parser.Processor{},
		&normalize.Processor{},
		macro.NewProcessor(),
		&hm.Processor{},
	).Run(ctx)
	if len(ctx.Errors) > 0 {
		return reportErrors(ctx.Errors)
	}

	if sc, ok := ctx.TypeEnv.Lookup("main"); ok {
		fmt.Printf("main : %s\n", hm.NewInferencer().Instantiate(sc))
		return nil
	}
	fmt.Println(ctx.Type.String())
	return nil
}
