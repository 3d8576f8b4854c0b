package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// HashEmbedder is the offline default: tokens are hashed into buckets and
// the vector is L2-normalized. Deterministic and cheap, with no semantic
// guarantee beyond "same text, same vector".
type HashEmbedder struct {
	dim int
}

func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{dim: Dim}
}

func (h *HashEmbedder) Dimensions() int { return h.dim }
func (h *HashEmbedder) Name() string    { return "hash" }

func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)

	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?;:'\"()")
		if tok == "" {
			continue
		}

		f := fnv.New64a()
		_, _ = f.Write([]byte(tok))
		sum := f.Sum64()

		bucket := int(sum % uint64(h.dim))
		// top bit picks the sign so unrelated texts don't all point the
		// same way in the positive orthant
		if sum&(1<<63) != 0 {
			vec[bucket]--
		} else {
			vec[bucket]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}
