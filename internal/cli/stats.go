package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	stats, err := journal.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("Total memories:      %d\n", stats.TotalMemories)
	if stats.MostCommonEmotion != "" {
		fmt.Printf("Most common emotion: %s\n", stats.MostCommonEmotion)
	}
	fmt.Printf("Time capsules:       %d (%d locked)\n", stats.TimeCapsules, stats.LockedCapsules)

	if verbose && len(stats.Runtime.Operations) > 0 {
		fmt.Println("\nOperation timings (this session):")
		for op, snap := range stats.Runtime.Operations {
			fmt.Printf("  %-10s %d calls, avg %.1fms\n", op, snap.Count, snap.AvgTimeMs)
		}
	}
	return nil
}
