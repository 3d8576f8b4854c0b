// Package carryin decides whether a new entry continues an emotional or
// topical thread from the user's recent history.
package carryin

import (
	"context"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/similarity"
)

// DefaultThreshold is the cosine similarity above which an entry carries in
// even without theme overlap.
const DefaultThreshold = 0.86

// Scorer computes the maximum similarity between an embedding and the
// user's recent entries. Implementations may score in-process or push the
// comparison into the vector store.
type Scorer interface {
	MaxSimilarity(ctx context.Context, userID string, embedding []float32, recent []models.Entry) (float64, error)
}

// CosineScorer scores in-process over the window embeddings.
type CosineScorer struct{}

func (CosineScorer) MaxSimilarity(_ context.Context, _ string, embedding []float32, recent []models.Entry) (float64, error) {
	vecs := make([][]float32, 0, len(recent))
	for _, e := range recent {
		vecs = append(vecs, e.Embedding.Slice())
	}
	return similarity.Max(embedding, vecs), nil
}

// Decision is the carry-in outcome plus the diagnostics behind it.
// MaxSimilarity is reported even when CarryIn is false.
type Decision struct {
	CarryIn       bool    `json:"carry_in"`
	ThemeOverlap  bool    `json:"theme_overlap"`
	MaxSimilarity float64 `json:"max_similarity"`
	Degraded      bool    `json:"degraded"`
}

// Detector combines theme overlap against the recency window with a
// similarity scorer. A failing scorer degrades the decision to
// theme-overlap-only instead of failing the entry.
type Detector struct {
	Threshold float64
	Scorer    Scorer
}

// NewDetector returns a detector with the default threshold and the
// in-process cosine scorer.
func NewDetector() *Detector {
	return &Detector{Threshold: DefaultThreshold, Scorer: CosineScorer{}}
}

// Detect reports carry-in for a new entry against the recency window.
// An empty window always yields a false decision.
func (d *Detector) Detect(ctx context.Context, userID string, parsed models.ParsedEntry, embedding []float32, recent []models.Entry) Decision {
	if len(recent) == 0 {
		return Decision{}
	}

	dec := Decision{ThemeOverlap: overlapsWindow(parsed.Themes, recent)}

	scorer := d.Scorer
	if scorer == nil {
		scorer = CosineScorer{}
	}

	maxSim, err := scorer.MaxSimilarity(ctx, userID, embedding, recent)
	if err != nil {
		dec.Degraded = true
		dec.CarryIn = dec.ThemeOverlap
		return dec
	}

	dec.MaxSimilarity = maxSim
	dec.CarryIn = dec.ThemeOverlap || maxSim >= d.Threshold
	return dec
}

func overlapsWindow(themes []string, recent []models.Entry) bool {
	seen := map[string]struct{}{}
	for _, e := range recent {
		for _, t := range e.Parsed.Themes {
			seen[t] = struct{}{}
		}
	}
	for _, t := range themes {
		if _, ok := seen[t]; ok {
			return true
		}
	}
	return false
}
