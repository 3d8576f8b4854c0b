package embed

import (
	"context"
	"testing"
)

func TestHashEmbedderDeterministic(t *testing.T) {
	h := NewHashEmbedder()

	a, err := h.Embed(context.Background(), "I'm stressed about my job and deadlines.")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := h.Embed(context.Background(), "I'm stressed about my job and deadlines.")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(a) != Dim || len(b) != Dim {
		t.Fatalf("dims %d/%d, want %d", len(a), len(b), Dim)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHashEmbedderNormalized(t *testing.T) {
	h := NewHashEmbedder()

	vec, err := h.Embed(context.Background(), "a quiet evening walk")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm < 0.999 || norm > 1.001 {
		t.Fatalf("norm^2=%v, want ~1", norm)
	}
}

func TestHashEmbedderEmptyText(t *testing.T) {
	vec, err := NewHashEmbedder().Embed(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != Dim {
		t.Fatalf("dim=%d, want %d", len(vec), Dim)
	}
	for _, v := range vec {
		if v != 0 {
			t.Fatalf("whitespace-only text must embed to the zero vector")
		}
	}
}
