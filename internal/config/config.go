// Package config loads MemVault configuration from an optional YAML
// file and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifies an LLM or embedding backend.
type Provider string

const (
	// ProviderOpenAI uses the OpenAI API.
	ProviderOpenAI Provider = "openai"

	// ProviderAnthropic uses the Anthropic API.
	ProviderAnthropic Provider = "anthropic"

	// ProviderOllama uses a local Ollama server.
	ProviderOllama Provider = "ollama"

	// ProviderNone disables the external service entirely; every
	// component runs on its deterministic local fallback.
	ProviderNone Provider = "none"
)

// Store backends.
const (
	StoreJSONFile = "json"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration values.
type Config struct {
	// Storage
	DataDir      string `yaml:"data_dir"`
	StoreBackend string `yaml:"store_backend"` // "json" or "sqlite"

	// Chat model
	LLMProvider Provider `yaml:"llm_provider"`
	LLMModel    string   `yaml:"llm_model"`

	// Embeddings
	EmbedProvider  Provider `yaml:"embed_provider"`
	EmbedModel     string   `yaml:"embed_model"`
	EmbedDimension int      `yaml:"embed_dimension"`

	// Provider credentials / endpoints
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OllamaHost      string `yaml:"ollama_host"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`
}

// Load reads configuration with precedence: defaults, then the YAML file
// (MEMVAULT_CONFIG or <data dir>/config.yaml), then environment
// variables.
func Load() Config {
	cfg := defaults()

	path := os.Getenv("MEMVAULT_CONFIG")
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	if data, err := os.ReadFile(path); err == nil {
		// Unknown keys are tolerated; a malformed file is reported but
		// never fatal.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring malformed config %s: %v\n", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg
}

func defaults() Config {
	dataDir := filepath.Join(homeDir(), ".memvault")
	return Config{
		DataDir:        dataDir,
		StoreBackend:   StoreJSONFile,
		LLMProvider:    ProviderOpenAI,
		LLMModel:       "gpt-4o",
		EmbedProvider:  ProviderOpenAI,
		EmbedModel:     "text-embedding-3-small",
		EmbedDimension: 1536,
		OllamaHost:     "http://localhost:11434",
		LogFile:        filepath.Join(dataDir, "memvault.log"),
		LogLevel:       slog.LevelInfo,
	}
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.DataDir, "MEMVAULT_DATA_DIR")
	setEnv(&cfg.StoreBackend, "MEMVAULT_STORE")
	setEnvProvider(&cfg.LLMProvider, "MEMVAULT_LLM_PROVIDER")
	setEnv(&cfg.LLMModel, "MEMVAULT_LLM_MODEL")
	setEnvProvider(&cfg.EmbedProvider, "MEMVAULT_EMBED_PROVIDER")
	setEnv(&cfg.EmbedModel, "MEMVAULT_EMBED_MODEL")
	setEnv(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setEnv(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setEnv(&cfg.OllamaHost, "OLLAMA_HOST")
	setEnv(&cfg.LogFile, "MEMVAULT_LOG_FILE")

	if v := os.Getenv("MEMVAULT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	// No key means the OpenAI-backed defaults cannot work; degrade to
	// offline mode rather than failing every call at runtime.
	if cfg.LLMProvider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		cfg.LLMProvider = ProviderNone
	}
	if cfg.EmbedProvider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		cfg.EmbedProvider = ProviderNone
	}
}

// Offline reports whether no chat model is configured.
func (c Config) Offline() bool {
	return c.LLMProvider == ProviderNone || c.LLMProvider == ""
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setEnvProvider(dst *Provider, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = Provider(strings.ToLower(v))
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
