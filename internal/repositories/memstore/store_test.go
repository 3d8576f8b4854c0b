package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

func TestLatestNOrderAndLimit(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		err := s.Insert(ctx, &models.Entry{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	recent, err := s.LatestN(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("LatestN: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("window size=%d, want 5", len(recent))
	}
	if recent[0].ID != "g" || recent[4].ID != "c" {
		t.Fatalf("window not most-recent-first: %v ... %v", recent[0].ID, recent[4].ID)
	}
}

func TestLatestNEmpty(t *testing.T) {
	recent, err := New().LatestN(context.Background(), "nobody", 5)
	if err != nil {
		t.Fatalf("LatestN: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty window, got %d", len(recent))
	}
}

func TestProfileRoundTripIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := models.NewUserProfile("u1")
	p.Apply(models.ParsedEntry{Themes: []string{"a"}, Vibes: []string{"v"}, Traits: []string{"t"}, Buckets: []string{"b"}})
	if err := s.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// mutating the caller's copy must not leak into the store
	p.ThemeCount["a"] = 99

	got, err := s.GetByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.ThemeCount["a"] != 1 {
		t.Fatalf("stored profile aliased caller state: %v", got.ThemeCount)
	}
}

func TestGetByUserIDNotFound(t *testing.T) {
	_, err := New().GetByUserID(context.Background(), "missing")
	if err != utils.ErrNotFound {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestResetUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	e := &models.Entry{ID: "e1", UserID: "u1", Embedding: pgvector.NewVector([]float32{1, 0})}
	if err := s.SaveEntryAndProfile(ctx, e, models.NewUserProfile("u1")); err != nil {
		t.Fatalf("SaveEntryAndProfile: %v", err)
	}

	if err := s.ResetUser(ctx, "u1"); err != nil {
		t.Fatalf("ResetUser: %v", err)
	}

	count, _ := s.CountByUser(ctx, "u1")
	if count != 0 {
		t.Fatalf("count after reset=%d", count)
	}
	if _, err := s.GetByUserID(ctx, "u1"); err != utils.ErrNotFound {
		t.Fatalf("profile survived reset: %v", err)
	}
}
