package services

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/carryin"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	pgrepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/postgres"
)

// repoScorer pushes max-similarity into the entry store (pgvector `<=>`).
// When it errors the detector falls back to theme-overlap-only, so a down
// vector backend degrades the decision instead of failing the entry.
type repoScorer struct {
	entries pgrepo.EntryRepository
	n       int
}

// NewRepoScorer returns a carryin.Scorer backed by the entry repository.
func NewRepoScorer(entries pgrepo.EntryRepository, windowSize int) carryin.Scorer {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &repoScorer{entries: entries, n: windowSize}
}

func (s *repoScorer) MaxSimilarity(ctx context.Context, userID string, embedding []float32, recent []models.Entry) (float64, error) {
	if len(recent) == 0 {
		return 0, nil
	}
	return s.entries.MaxSimilarity(ctx, userID, pgvector.NewVector(embedding), s.n)
}
