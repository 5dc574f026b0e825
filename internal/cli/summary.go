package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memvault/memvault/internal/service"
)

var summaryPeriod string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a period of your journal",
	Long: `Write a review of your memories for a period: a thoughtful AI
narrative when a model is configured, a statistics-based review
otherwise. Locked time capsules are never included.

Examples:
  memvault summary
  memvault summary --period month
  memvault summary --period all`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryPeriod, "period", "p", "week", "week, month, 3months, year or all")
}

func runSummary(cmd *cobra.Command, args []string) error {
	period, err := service.ParsePeriod(summaryPeriod)
	if err != nil {
		return err
	}

	svc, err := getSummary()
	if err != nil {
		return err
	}

	text, err := svc.Summarize(cmd.Context(), period)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	fmt.Println(text)
	return nil
}
