// Package main provides the entry point for the memvault MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/memvault/memvault/internal/config"
	"github.com/memvault/memvault/internal/embedding"
	"github.com/memvault/memvault/internal/extract"
	"github.com/memvault/memvault/internal/llm"
	"github.com/memvault/memvault/internal/metrics"
	"github.com/memvault/memvault/internal/recall"
	"github.com/memvault/memvault/internal/server"
	"github.com/memvault/memvault/internal/service"
	"github.com/memvault/memvault/internal/store"
	"github.com/memvault/memvault/internal/summary"
	"github.com/memvault/memvault/internal/tools"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Dual output: stderr text + file JSON. Stdout stays clean for the
	// MCP stdio transport.
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("memvault-mcp starting",
		"version", version,
		"store", cfg.StoreBackend,
		"llm_provider", cfg.LLMProvider,
		"offline", cfg.Offline(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	var st store.Store
	var err error
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		st, err = store.NewSQLite(ctx, cfg.DataDir+"/memories.db")
	default:
		st, err = store.NewJSONFile(cfg.DataDir)
	}
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	model, err := llm.NewModel(cfg)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}
	live, err := llm.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}
	var primary embedding.Embedder
	if live != nil {
		primary = live
	}
	embedder := embedding.NewChain(primary, logger)

	var analyzer extract.Analyzer
	var params recall.ParamExtractor
	var ranker recall.Ranker
	var narrator summary.Narrator
	if model != nil {
		analyzer = model
		params = model
		ranker = model
		narrator = model
	}

	collector := metrics.NewCollector()
	deps := &tools.Dependencies{
		Journal: service.NewJournalService(st, extract.New(analyzer, logger), embedder, collector, nil),
		Recall:  service.NewRecallService(st, recall.New(embedder, params, ranker, logger), collector, nil),
		Summary: service.NewSummaryService(st, summary.New(narrator, logger), collector, nil),
		Logger:  logger,
	}

	srv := server.New(version, logger)
	srv.Setup()
	tools.RegisterAll(srv.MCPServer(), deps)

	return srv.Run(ctx)
}
