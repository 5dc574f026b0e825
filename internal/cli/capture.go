package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memvault/memvault/internal/service"
)

var (
	capturePeople   []string
	captureLocation string
	captureUnlock   string
)

var captureCmd = &cobra.Command{
	Use:   "capture <text>",
	Short: "Capture a new memory",
	Long: `Capture a new memory. The text is analyzed for emotion, topics and
context (AI when configured, keyword analysis otherwise) and embedded
for semantic recall.

Examples:
  memvault capture "Had a great lunch with Maria at the harbor"
  memvault capture "Finished the marathon!" --people "Coach,Sam" --location "Berlin"
  memvault capture "Note to future me" --unlock 2027-01-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringSliceVarP(&capturePeople, "people", "p", nil, "people involved (overrides detection)")
	captureCmd.Flags().StringVarP(&captureLocation, "location", "l", "", "location (overrides detection)")
	captureCmd.Flags().StringVar(&captureUnlock, "unlock", "", "lock until this date (YYYY-MM-DD)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	memory, err := journal.Capture(cmd.Context(), service.CaptureInput{
		Text:       strings.Join(args, " "),
		People:     capturePeople,
		Location:   captureLocation,
		UnlockDate: captureUnlock,
	})
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	fmt.Println(successStyle.Render("Memory saved."))
	fmt.Println(renderMemoryCard(memory, false))
	return nil
}
