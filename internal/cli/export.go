package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal as JSON",
	Long: `Export every memory as a JSON array for backup or transfer.
Embeddings are stripped; they are recomputed on import.

Examples:
  memvault export > backup.json
  memvault export -o backup.json`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import memories from a JSON export",
	Long: `Import memories from a JSON export file. Imported memories get
fresh ids and are appended to the existing journal.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	data, err := journal.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Println(successStyle.Render("Journal exported to " + exportOut + "."))
		return nil
	}
	fmt.Println(string(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	journal, err := getJournal()
	if err != nil {
		return err
	}

	n, err := journal.Import(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Imported %d memories.", n)))
	return nil
}
