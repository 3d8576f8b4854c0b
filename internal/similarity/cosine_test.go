package similarity

import (
	"math"
	"testing"
)

func TestCosineSelfIdentity(t *testing.T) {
	a := []float32{0.5, -1.25, 3, 0.001}
	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Fatalf("Cosine(a,a)=%v, want 1", got)
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-4, 0.5, 9}
	if Cosine(a, b) != Cosine(b, a) {
		t.Fatalf("Cosine(a,b)=%v != Cosine(b,a)=%v", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosineLengthMismatch(t *testing.T) {
	if got := Cosine([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
		t.Fatalf("Cosine(mismatched)=%v, want 0", got)
	}
	if got := Cosine(nil, []float32{1}); got != 0 {
		t.Fatalf("Cosine(nil,b)=%v, want 0", got)
	}
}

func TestCosineZeroMagnitude(t *testing.T) {
	if got := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}); got != 0 {
		t.Fatalf("Cosine(zero,b)=%v, want 0", got)
	}
}

func TestCosineOpposite(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}
	if got := Cosine(a, b); math.Abs(got+1) > 1e-9 {
		t.Fatalf("Cosine(a,-a)=%v, want -1", got)
	}
}

func TestMax(t *testing.T) {
	vec := []float32{1, 0}
	cands := [][]float32{{0, 1}, {1, 1}, {-1, 0}}
	got := Max(vec, cands)
	want := Cosine(vec, []float32{1, 1})
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Max=%v, want %v", got, want)
	}

	if got := Max(vec, nil); got != 0 {
		t.Fatalf("Max(empty)=%v, want 0", got)
	}
}
