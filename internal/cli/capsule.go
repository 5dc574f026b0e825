package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memvault/memvault/internal/service"
)

var (
	capsuleEmotion string
	capsuleUnlock  string
)

var capsuleCmd = &cobra.Command{
	Use:   "capsule",
	Short: "Manage time capsule memories",
	Long: `Time capsules are messages to your future self. They stay locked —
hidden from recall, summaries and the mind map — until their unlock
date passes.`,
}

var capsuleCreateCmd = &cobra.Command{
	Use:   "create <text>",
	Short: "Create a time capsule",
	Long: `Create a time capsule.

Examples:
  memvault capsule create "Dear future me..." --unlock 2027-08-24
  memvault capsule create "One year from now" --unlock 2027-08-24 --emotion Hopeful`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCapsuleCreate,
}

var capsuleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time capsules, locked and unlocked",
	RunE:  runCapsuleList,
}

var capsuleRescheduleCmd = &cobra.Command{
	Use:   "reschedule <id> <date>",
	Short: "Move a capsule's unlock date",
	Long: `Move a capsule's unlock date. An empty date ("") unlocks it
immediately.`,
	Args: cobra.ExactArgs(2),
	RunE: runCapsuleReschedule,
}

func init() {
	capsuleCreateCmd.Flags().StringVar(&capsuleUnlock, "unlock", "", "unlock date (YYYY-MM-DD, required)")
	capsuleCreateCmd.Flags().StringVar(&capsuleEmotion, "emotion", "", "how you feel right now")
	capsuleCreateCmd.MarkFlagRequired("unlock")

	capsuleCmd.AddCommand(capsuleCreateCmd)
	capsuleCmd.AddCommand(capsuleListCmd)
	capsuleCmd.AddCommand(capsuleRescheduleCmd)
}

func runCapsuleCreate(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	memory, err := journal.CreateTimeCapsule(cmd.Context(), service.CapsuleInput{
		Text:       strings.Join(args, " "),
		Emotion:    capsuleEmotion,
		UnlockDate: capsuleUnlock,
	})
	if err != nil {
		return fmt.Errorf("create capsule: %w", err)
	}

	fmt.Println(successStyle.Render(
		fmt.Sprintf("Time capsule #%d created. It unlocks on %s.", memory.ID, memory.UnlockDate)))
	return nil
}

func runCapsuleList(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	locked, unlocked, err := journal.Capsules(cmd.Context())
	if err != nil {
		return fmt.Errorf("list capsules: %w", err)
	}

	if len(locked) == 0 && len(unlocked) == 0 {
		fmt.Println("No time capsules yet.")
		return nil
	}

	if len(locked) > 0 {
		fmt.Println(lockedStyle.Render("Locked"))
		for _, c := range locked {
			fmt.Println(renderLockedCard(c))
		}
	}
	if len(unlocked) > 0 {
		fmt.Println(successStyle.Render("Unlocked"))
		for _, c := range unlocked {
			fmt.Println(renderMemoryCard(c, false))
		}
	}
	return nil
}

func runCapsuleReschedule(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid memory id %q", args[0])
	}

	journal, err := getJournal()
	if err != nil {
		return err
	}
	if err := journal.Reschedule(cmd.Context(), id, args[1]); err != nil {
		return fmt.Errorf("reschedule capsule: %w", err)
	}

	if args[1] == "" {
		fmt.Println(successStyle.Render(fmt.Sprintf("Capsule #%d unlocked.", id)))
	} else {
		fmt.Println(successStyle.Render(fmt.Sprintf("Capsule #%d now unlocks on %s.", id, args[1])))
	}
	return nil
}
