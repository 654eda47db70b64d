package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/lexer"
	"github.com/treep-lang/treep/internal/token"
)

var (
	tokensEval    string
	tokensShowPos bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a TreeP file and print the token stream",
	Long: `Tokenize a TreeP program and print one token per line, for
debugging the lexer and seeing how source is split up.

Examples:
  treep tokens hello.tp
  treep tokens --show-pos -e "let x = 1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: tokenizeScript,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show token positions (line:column)")
}

func tokenizeScript(cmd *cobra.Command, args []string) error {
	_, source, err := readInput(tokensEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.NextToken()
		line := fmt.Sprintf("%-10s %q", tok.Type, tok.Literal)
		if tokensShowPos {
			line += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
		}
		fmt.Println(line)
		if tok.Type == token.EOF {
			return nil
		}
	}
}
