package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a memory",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid memory id %q", args[0])
	}

	journal, err := getJournal()
	if err != nil {
		return err
	}
	if err := journal.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Memory #%d deleted.", id)))
	return nil
}
