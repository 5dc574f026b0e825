package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var recallLimit int

var recallCmd = &cobra.Command{
	Use:   "recall <query>",
	Short: "Recall memories matching a query",
	Long: `Recall memories by meaning. The query goes through parameter
extraction, embedding similarity and AI re-ranking; every stage has a
local fallback, so recall always answers.

Examples:
  memvault recall "when was I happy at the beach"
  memvault recall "times with Maria" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecall,
}

func init() {
	recallCmd.Flags().IntVarP(&recallLimit, "limit", "n", 10, "max results")
}

func runRecall(cmd *cobra.Command, args []string) error {
	svc, err := getRecall()
	if err != nil {
		return err
	}

	results, err := svc.Recall(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("recall: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No memories found.")
		return nil
	}
	if len(results) > recallLimit {
		results = results[:recallLimit]
	}

	fmt.Printf("Found %d memories:\n\n", len(results))
	for _, m := range results {
		fmt.Println(renderMemoryCard(m, true))
	}
	return nil
}
