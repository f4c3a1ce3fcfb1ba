package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearbill/assess/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.yaml]",
	Short: "Validate a question catalog",
	Long: `Parses and validates a catalog file: weight sums, category indices,
conditional references, recommendation triggers, force mappings, and
projection improvements. With no argument the configured catalog path
(or the embedded default) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := cfg.Catalog.Path
	if len(args) == 1 {
		path = args[0]
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("catalog valid\n")
	fmt.Printf("  version:         %s\n", cat.Version)
	fmt.Printf("  categories:      %d\n", len(cat.CategoryNames))
	fmt.Printf("  segments:        %d\n", len(cat.Segments))
	fmt.Printf("  questions:       %d\n", len(cat.Questions))
	fmt.Printf("  recommendations: %d\n", len(cat.Recommendations))
	fmt.Printf("  forces:          %d\n", len(cat.Forces))
	return nil
}
