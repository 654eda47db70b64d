package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/ruleset"
	"github.com/treep-lang/treep/internal/transducer"
	"github.com/treep-lang/treep/pkg/api"
)

var (
	transduceRules      string
	transduceFixpoint   bool
	transduceFromSource bool
)

var transduceCmd = &cobra.Command{
	Use:   "transduce [file]",
	Short: "Apply a YAML rule set to an Element tree",
	Long: `Load transducer rules from a YAML file and apply them to an
Element tree read from a JSON file (or produced by expanding TreeP
source with --from-source). The rewritten tree is printed as JSON.

Examples:
  # Rewrite an exported tree
  treep transduce --rules rename.yaml tree.json

  # Expand a source file first, then rewrite the expanded tree
  treep transduce --rules simplify.yaml --from-source prog.tp

  # Apply until the tree stops changing
  treep transduce --rules identities.yaml --fixpoint tree.json`,
	Args: cobra.ExactArgs(1),
	RunE: transduceTree,
}

func init() {
	rootCmd.AddCommand(transduceCmd)

	transduceCmd.Flags().StringVar(&transduceRules, "rules", "", "YAML rule-set file (required)")
	transduceCmd.Flags().BoolVar(&transduceFixpoint, "fixpoint", false, "apply rules repeatedly until the tree stops changing")
	transduceCmd.Flags().BoolVar(&transduceFromSource, "from-source", false, "treat the input as TreeP source and expand it first")
	transduceCmd.MarkFlagRequired("rules")
}

func transduceTree(cmd *cobra.Command, args []string) error {
	ruleData, err := os.ReadFile(transduceRules)
	if err != nil {
		return fmt.Errorf("failed to read rules %s: %w", transduceRules, err)
	}
	rules, err := ruleset.Load(ruleData)
	if err != nil {
		return err
	}

	tree, err := loadTree(args[0])
	if err != nil {
		return err
	}

	tr := transducer.New(rules...)
	var out *element.Element
	if transduceFixpoint {
		out, err = transducer.Fixpoint(tr, tree)
	} else {
		out, err = tr.Transform(tree)
	}
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func loadTree(path string) (*element.Element, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if transduceFromSource {
		return api.Expand(string(content))
	}
	var tree element.Element
	if err := json.Unmarshal(content, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode tree %s: %w", path, err)
	}
	return &tree, nil
}
