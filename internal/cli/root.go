// Package cli provides the command-line interface for memvault.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/memvault/memvault/internal/config"
	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/extract"
	"github.com/memvault/memvault/internal/llm"
	"github.com/memvault/memvault/internal/metrics"
	"github.com/memvault/memvault/internal/recall"
	"github.com/memvault/memvault/internal/service"
	"github.com/memvault/memvault/internal/store"
	"github.com/memvault/memvault/internal/summary"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Shared state initialized in PersistentPreRunE
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
	st       store.Store

	collector = metrics.NewCollector()

	// Lazy-initialized LLM components
	model    *llm.Model
	embedder embedding.Embedder
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "memvault",
	Short: "Personal AI memory journal",
	Long: `MemVault captures short notes about your life, tags them with emotions
and topics, and lets you recall them later by meaning, not just keywords.

Memories are stored locally. With an LLM provider configured the tagging,
recall ranking and summaries are AI-powered; without one everything still
works on deterministic local analysis.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

		var err error
		st, err = openStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			if err := st.Close(); err != nil {
				logger.Warn("close store", "error", err)
			}
		}
		if closeLog != nil {
			closeLog()
		}
	},
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		return store.NewSQLite(ctx, cfg.DataDir+"/memories.db")
	case config.StoreJSONFile, "":
		return store.NewJSONFile(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// initLLM lazily creates the chat model and the embedding chain. Both
// come back nil-model/pseudo-chain when no provider is configured, so
// every command works offline.
func initLLM() error {
	if embedder != nil {
		return nil
	}

	m, err := llm.NewModel(cfg)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}
	model = m

	live, err := llm.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}
	var primary embedding.Embedder
	if live != nil {
		primary = live
	}
	embedder = embedding.NewChain(primary, logger)
	return nil
}

// getJournal builds the journal service with LLM-backed analysis when
// available.
func getJournal() (*service.JournalService, error) {
	if err := initLLM(); err != nil {
		return nil, err
	}
	var analyzer extract.Analyzer
	if model != nil {
		analyzer = model
	}
	extractor := extract.New(analyzer, logger)
	return service.NewJournalService(st, extractor, embedder, collector, nil), nil
}

func getRecall() (*service.RecallService, error) {
	if err := initLLM(); err != nil {
		return nil, err
	}
	var params recall.ParamExtractor
	var ranker recall.Ranker
	if model != nil {
		params = model
		ranker = model
	}
	r := recall.New(embedder, params, ranker, logger)
	return service.NewRecallService(st, r, collector, nil), nil
}

func getSummary() (*service.SummaryService, error) {
	if err := initLLM(); err != nil {
		return nil, err
	}
	var narrator summary.Narrator
	if model != nil {
		narrator = model
	}
	s := summary.New(narrator, logger)
	return service.NewSummaryService(st, s, collector, nil), nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(recallCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(mindmapCmd)
	rootCmd.AddCommand(capsuleCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}
