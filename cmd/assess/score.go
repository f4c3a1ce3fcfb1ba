package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearbill/assess/internal/catalog"
	"github.com/clearbill/assess/internal/export"
	"github.com/clearbill/assess/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answer file and print the full report",
	Long: `Reads a JSON object mapping question IDs to raw answer values and prints
the complete assessment report: category scores, benchmark gap, triggered
recommendations, projections, financial insights, resiliency index, and
strengths.

Examples:
  # Full report as JSON
  assess score --answers answers.json

  # Flat export record as CSV
  assess score --answers answers.json --format csv

  # Read answers from stdin
  cat answers.json | assess score --answers -`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("answers", "", "path to answers JSON file, or - for stdin")
	f.String("format", "json", "output format: json or csv")
	scoreCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	answersPath, _ := cmd.Flags().GetString("answers")
	format, _ := cmd.Flags().GetString("format")

	var data []byte
	var err error
	if answersPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(answersPath)
	}
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	var answers scoring.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return fmt.Errorf("parse answers: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	engine := scoring.NewEngine(cat, logger,
		scoring.WithNeutralScore(cfg.Scoring.NeutralCategoryScore))
	report := engine.BuildReport(answers)

	switch format {
	case "csv":
		rec := export.NewRecord(export.Respondent{}, answers, report)
		return export.WriteCSV(os.Stdout, []export.Record{rec})
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
