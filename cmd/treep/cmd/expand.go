package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/lexer"
	"github.com/treep-lang/treep/internal/macro"
	"github.com/treep-lang/treep/internal/normalize"
	"github.com/treep-lang/treep/internal/parser"
	"github.com/treep-lang/treep/internal/pipeline"
)

var expandEval string

var expandCmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "Macro-expand a TreeP file and print the resulting tree",
	Long: `Lex, parse, normalize, and macro-expand a TreeP program, then
print the expanded Element tree as JSON without type-checking or
running it.

Examples:
  treep expand hello.tp
  treep expand -e "when(x > 0) { println(\"positive\") }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: expandScript,
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().StringVarP(&expandEval, "eval", "e", "", "expand inline code instead of reading from file")
}

func expandScript(cmd *cobra.Command, args []string) error {
	filename, source, err := readInput(expandEval, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	ctx := pipeline.NewContext(filename, source, os.Stdout)
	ctx.Verbose = verbose
	pipeline.New(
		&lexer.Processor{},
		&parser.Processor{},
		&normalize.Processor{},
		macro.NewProcessor(),
	).Run(ctx)
	if len(ctx.Errors) > 0 {
		return reportErrors(ctx.Errors)
	}

	out, err := json.MarshalIndent(ctx.Tree, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
