package carryin

import (
	"context"
	"errors"
	"testing"

	"github.com/pgvector/pgvector-go"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
)

func entryWith(themes []string, vec []float32) models.Entry {
	return models.Entry{
		Embedding: pgvector.NewVector(vec),
		Parsed:    models.ParsedEntry{Themes: themes},
	}
}

func TestDetectEmptyWindow(t *testing.T) {
	d := NewDetector()
	dec := d.Detect(context.Background(), "u1", models.ParsedEntry{Themes: []string{"work-life balance"}}, []float32{1, 0}, nil)
	if dec.CarryIn {
		t.Fatal("empty window must never carry in")
	}
	if dec.MaxSimilarity != 0 || dec.ThemeOverlap {
		t.Fatalf("empty window decision not zero: %+v", dec)
	}
}

func TestDetectThemeOverlap(t *testing.T) {
	d := NewDetector()
	recent := []models.Entry{entryWith([]string{"work-life balance"}, []float32{0, 1})}

	dec := d.Detect(context.Background(), "u1",
		models.ParsedEntry{Themes: []string{"work-life balance"}},
		[]float32{1, 0}, recent)
	if !dec.CarryIn || !dec.ThemeOverlap {
		t.Fatalf("overlapping theme must carry in: %+v", dec)
	}
}

func TestDetectSimilarityThreshold(t *testing.T) {
	d := NewDetector()
	recent := []models.Entry{entryWith([]string{"health"}, []float32{1, 0})}

	// identical embedding, disjoint themes: similarity path fires
	dec := d.Detect(context.Background(), "u1",
		models.ParsedEntry{Themes: []string{"money"}},
		[]float32{1, 0}, recent)
	if !dec.CarryIn || dec.ThemeOverlap {
		t.Fatalf("similarity >= threshold must carry in: %+v", dec)
	}
	if dec.MaxSimilarity < d.Threshold {
		t.Fatalf("MaxSimilarity=%v below threshold", dec.MaxSimilarity)
	}

	// orthogonal embedding, disjoint themes: nothing fires
	dec = d.Detect(context.Background(), "u1",
		models.ParsedEntry{Themes: []string{"money"}},
		[]float32{0, 1}, recent)
	if dec.CarryIn {
		t.Fatalf("disjoint themes, dissimilar content must not carry in: %+v", dec)
	}
}

func TestDetectMaxSimilarityReportedWhenFalse(t *testing.T) {
	d := NewDetector()
	recent := []models.Entry{entryWith([]string{"health"}, []float32{1, 1})}

	dec := d.Detect(context.Background(), "u1",
		models.ParsedEntry{Themes: []string{"money"}},
		[]float32{1, 0}, recent)
	if dec.CarryIn {
		t.Fatalf("unexpected carry-in: %+v", dec)
	}
	if dec.MaxSimilarity <= 0 {
		t.Fatalf("MaxSimilarity must be reported for diagnostics, got %v", dec.MaxSimilarity)
	}
}

type failingScorer struct{}

func (failingScorer) MaxSimilarity(context.Context, string, []float32, []models.Entry) (float64, error) {
	return 0, errors.New("vector backend down")
}

func TestDetectDegradesToThemeOverlap(t *testing.T) {
	d := &Detector{Threshold: DefaultThreshold, Scorer: failingScorer{}}
	recent := []models.Entry{entryWith([]string{"work-life balance"}, []float32{1, 0})}

	dec := d.Detect(context.Background(), "u1",
		models.ParsedEntry{Themes: []string{"work-life balance"}},
		[]float32{1, 0}, recent)
	if !dec.CarryIn || !dec.Degraded {
		t.Fatalf("degraded overlap must still carry in: %+v", dec)
	}

	dec = d.Detect(context.Background(), "u1",
		models.ParsedEntry{Themes: []string{"money"}},
		[]float32{1, 0}, recent)
	if dec.CarryIn || !dec.Degraded {
		t.Fatalf("degraded without overlap must not carry in: %+v", dec)
	}
}
