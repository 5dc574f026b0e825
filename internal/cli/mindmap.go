package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	mindmapFormat string
	mindmapOut    string
	mindmapMax    int
)

var mindmapCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Render the memory connection graph",
	Long: `Build a graph connecting memories that share topics, people,
emotions or locations, and render it as Graphviz dot or JSON.

Examples:
  memvault mindmap
  memvault mindmap --format json
  memvault mindmap -o memories.dot`,
	RunE: runMindmap,
}

func init() {
	mindmapCmd.Flags().StringVarP(&mindmapFormat, "format", "f", "dot", "output format: dot or json")
	mindmapCmd.Flags().StringVarP(&mindmapOut, "out", "o", "", "write to file instead of stdout")
	mindmapCmd.Flags().IntVar(&mindmapMax, "max-connections", 0, "connection cap (default 50)")
}

func runMindmap(cmd *cobra.Command, args []string) error {
	journal, err := getJournal()
	if err != nil {
		return err
	}

	graph, err := journal.MindMap(cmd.Context(), mindmapMax)
	if err != nil {
		return fmt.Errorf("mind map: %w", err)
	}

	var out []byte
	switch mindmapFormat {
	case "dot":
		out = []byte(graph.DOT())
	case "json":
		out, err = graph.JSON()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (dot, json)", mindmapFormat)
	}

	if mindmapOut != "" {
		if err := os.WriteFile(mindmapOut, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", mindmapOut, err)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Mind map written to %s (%s).", mindmapOut, graph.Summary())))
		return nil
	}
	fmt.Print(string(out))
	return nil
}
