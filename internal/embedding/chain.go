package embedding

import (
	"context"
	"log/slog"
)

// Chain degrades from a live provider embedder to the deterministic
// pseudo-embedding. Any provider failure — auth, quota, network — is
// logged and answered locally, so Chain.Embed never returns an error.
// A nil primary means the provider is not configured at all (offline
// mode); the fallback then serves every call.
type Chain struct {
	primary  Embedder
	fallback Pseudo
	logger   *slog.Logger
}

var _ Embedder = (*Chain)(nil)

// NewChain wraps the (possibly nil) primary embedder with the pseudo
// fallback.
func NewChain(primary Embedder, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{primary: primary, logger: logger}
}

// Embed tries the primary embedder and degrades to the pseudo-embedding
// on any failure. No caching; recomputed per call.
func (c *Chain) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.primary != nil {
		vec, err := c.primary.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		c.logger.Warn("embedding provider failed, using pseudo-embedding",
			"model", c.primary.Model(), "error", err)
	}
	return c.fallback.Embed(ctx, text)
}

// Model returns the primary model name, or the fallback's when no
// primary is configured.
func (c *Chain) Model() string {
	if c.primary != nil {
		return c.primary.Model()
	}
	return c.fallback.Model()
}

// Dimension returns the primary dimension, or 10 when no primary is
// configured.
func (c *Chain) Dimension() int {
	if c.primary != nil {
		return c.primary.Dimension()
	}
	return c.fallback.Dimension()
}
