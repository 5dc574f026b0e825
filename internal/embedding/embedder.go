// Package embedding provides similarity vectors for memory text, with a
// deterministic local fallback when no provider is reachable.
package embedding

import "context"

// Embedder produces a vector embedding for a text.
// Implementations: the langchaingo-backed live embedder (internal/llm)
// and the deterministic hash fallback (Pseudo).
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the name of the embedding model being used.
	Model() string

	// Dimension returns the embedding vector dimension.
	Dimension() int
}
