package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/memvault/memvault/internal/service"
)

var (
	listEmotion string
	listPerson  string
	listFrom    string
	listTo      string
	listLocked  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memories with optional filters",
	Long: `List stored memories in capture order.

Examples:
  memvault list
  memvault list --emotion happy
  memvault list --person Maria --from 2026-01-01
  memvault list --locked`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listEmotion, "emotion", "e", "", "filter by emotion")
	listCmd.Flags().StringVarP(&listPerson, "person", "p", "", "filter by person")
	listCmd.Flags().StringVar(&listFrom, "from", "", "earliest date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "latest date (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listLocked, "locked", false, "only locked time capsules")
}

func runList(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	filter := service.ListFilter{
		Emotion:  listEmotion,
		Person:   listPerson,
		FromDate: listFrom,
		ToDate:   listTo,
	}
	if listLocked {
		locked := true
		filter.Locked = &locked
	}

	memories, err := journal.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	if len(memories) == 0 {
		fmt.Println("No memories found.")
		return nil
	}
	now := time.Now()
	for _, m := range memories {
		if m.LockedAt(now) {
			fmt.Println(renderLockedCard(m))
			continue
		}
		fmt.Println(renderMemoryCard(m, false))
	}
	return nil
}
