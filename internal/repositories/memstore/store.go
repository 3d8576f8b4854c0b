// Package memstore is the in-memory counterpart of the postgres
// repositories. One Store per test or demo run; nothing is shared at
// package scope.
package memstore

import (
	"context"
	"sync"

	"github.com/pgvector/pgvector-go"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/similarity"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

// Store implements postgres.EntryRepository, postgres.ProfileRepository,
// and postgres.Store over process memory.
type Store struct {
	mu       sync.Mutex
	entries  map[string][]models.Entry
	profiles map[string]*models.UserProfile
}

func New() *Store {
	return &Store{
		entries:  map[string][]models.Entry{},
		profiles: map[string]*models.UserProfile{},
	}
}

func (s *Store) Insert(_ context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.UserID] = append(s.entries[e.UserID], *e)
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, log := range s.entries {
		for i := range log {
			if log[i].ID == id {
				e := log[i]
				return &e, nil
			}
		}
	}
	return nil, utils.ErrNotFound
}

// LatestN returns up to n entries, most-recent-first, matching the
// postgres repo's ordering.
func (s *Store) LatestN(_ context.Context, userID string, n int) ([]models.Entry, error) {
	if n <= 0 {
		n = 5
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.entries[userID]
	out := make([]models.Entry, 0, n)
	for i := len(log) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, log[i])
	}
	return out, nil
}

func (s *Store) CountByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.entries[userID])), nil
}

func (s *Store) MaxSimilarity(ctx context.Context, userID string, embedding pgvector.Vector, n int) (float64, error) {
	recent, _ := s.LatestN(ctx, userID, n)
	vecs := make([][]float32, 0, len(recent))
	for _, e := range recent {
		vecs = append(vecs, e.Embedding.Slice())
	}
	return similarity.Max(embedding.Slice(), vecs), nil
}

func (s *Store) GetByUserID(_ context.Context, userID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := cloneProfile(p)
	return &out, nil
}

func (s *Store) Upsert(_ context.Context, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := cloneProfile(p)
	s.profiles[p.UserID] = &clone
	return nil
}

func (s *Store) SaveEntryAndProfile(_ context.Context, e *models.Entry, p *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.UserID] = append(s.entries[e.UserID], *e)
	clone := cloneProfile(p)
	s.profiles[p.UserID] = &clone
	return nil
}

func (s *Store) ResetUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	delete(s.profiles, userID)
	return nil
}

// cloneProfile keeps callers from mutating stored state through shared
// maps and slices.
func cloneProfile(p *models.UserProfile) models.UserProfile {
	out := *p
	out.ThemeCount = cloneCounts(p.ThemeCount)
	out.VibeCount = cloneCounts(p.VibeCount)
	out.BucketCount = cloneCounts(p.BucketCount)
	out.ThemeOrder = append([]string(nil), p.ThemeOrder...)
	out.VibeOrder = append([]string(nil), p.VibeOrder...)
	out.TopThemes = append([]string(nil), p.TopThemes...)
	out.TraitPool = append([]string(nil), p.TraitPool...)
	return out
}

func cloneCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
