package embedding

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"strings"

	"github.com/memvault/memvault/internal/models"
)

// PseudoModel is the model name reported by the fallback embedder.
const PseudoModel = "pseudo-hash-10d"

// Pseudo is the deterministic hash-derived fallback embedder. It maps
// each whitespace-separated token to a stable integer hash and derives a
// fixed 10-dimensional vector with values roughly in [-1, 1]. Not as
// effective as real embeddings, but it keeps similarity ranking working
// when no provider is available, and identical input always yields an
// identical vector.
type Pseudo struct{}

var _ Embedder = Pseudo{}

// Embed computes the pseudo-embedding. Never fails; empty text yields an
// all-zero vector of length 10.
func (Pseudo) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, models.PseudoEmbeddingDim)

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return vec, nil
	}

	hashes := make([]uint64, len(words))
	for i, w := range words {
		hashes[i] = tokenHash(w)
	}

	for dim := range vec {
		mod := uint64(100 + dim*10)
		var sum uint64
		for _, h := range hashes {
			sum += h % mod
		}
		avg := float64(sum) / float64(len(hashes)) / 100
		vec[dim] = float32(avg*2 - 1)
	}
	return vec, nil
}

// Model returns the fallback model name.
func (Pseudo) Model() string { return PseudoModel }

// Dimension returns the fixed fallback dimension (10).
func (Pseudo) Dimension() int { return models.PseudoEmbeddingDim }

// tokenHash derives a stable integer from a token via MD5. Only the
// first 8 bytes are used; stability matters here, not strength.
func tokenHash(token string) uint64 {
	sum := md5.Sum([]byte(token))
	return binary.BigEndian.Uint64(sum[:8])
}
