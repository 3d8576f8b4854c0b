// Package embed produces fixed-length vectors for transcript text.
package embed

import "context"

// Dim is the embedding length every provider must produce.
const Dim = 384

// Provider maps text to a fixed-length vector. Identical text must produce
// an identical vector; downstream only uses the vectors for similarity.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Name() string
}
