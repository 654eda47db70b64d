package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/cache"
	"github.com/treep-lang/treep/internal/config"
	"github.com/treep-lang/treep/internal/hm"
	"github.com/treep-lang/treep/internal/interp"
	"github.com/treep-lang/treep/internal/lexer"
	"github.com/treep-lang/treep/internal/macro"
	"github.com/treep-lang/treep/internal/normalize"
	"github.com/treep-lang/treep/internal/parser"
	"github.com/treep-lang/treep/internal/pipeline"
)

var (
	runEval      string
	runTypeCheck bool
	runCachePath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a TreeP file or expression",
	Long: `Compile and execute a TreeP program from a file or inline
expression. If the program defines main, it is invoked after the
top-level statements and the integer it returns becomes the process
exit status.

Examples:
  # Run a script file
  treep run hello.tp

  # Evaluate an inline expression
  treep run -e "println(\"Hello, TreeP!\")"

  # Memoize the expanded tree across runs of the same source
  treep run --cache .treep-cache.db hello.tp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runTypeCheck, "type-check", true, "type-check before execution")
	runCmd.Flags().StringVar(&runCachePath, "cache", "", "path to a sqlite cache of expanded trees (off when empty)")
}

func runScript(cmd *cobra.Command, args []string) error {
	filename, source, err := readInput(runEval, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if len(args) == 1 && !config.HasSourceExt(filename) {
		fmt.Fprintf(os.Stderr, "warning: %s has no recognized TreeP extension (%v)\n",
			filename, config.SourceFileExtensions)
	}

	ctx := pipeline.NewContext(filename, source, os.Stdout)
	ctx.Verbose = verbose

	var store *cache.Store
	if runCachePath != "" {
		store, err = cache.Open(runCachePath)
		if err != nil {
			return err
		}
		defer store.Close()
	}
	hash := cache.Hash(source)

	cached := false
	if store != nil {
		if entry, ok, err := store.Get(hash); err == nil && ok {
			ctx.Tree = entry.Tree
			cached = true
		}
	}

	if !cached {
		stages := []pipeline.Processor{
			&lexer.Processor{},
			&parser.Processor{},
			&normalize.Processor{},
			macro.NewProcessor(),
		}
		if runTypeCheck {
			stages = append(stages, &hm.Processor{})
		}
		pipeline.New(stages...).Run(ctx)
		if len(ctx.Errors) > 0 {
			return reportErrors(ctx.Errors)
		}
		if store != nil {
			if err := store.Put(hash, ctx.Tree, ctx.Type, ctx.RunID); err != nil {
				return err
			}
		}
	}

	interpProc := &interp.Processor{}
	pipeline.New(interpProc).Run(ctx)
	if len(ctx.Errors) > 0 {
		return reportErrors(ctx.Errors)
	}

	if i, ok := interpProc.Result.(*interp.Integer); ok {
		exitCode = int(i.Value)
	}
	return nil
}
