// Package similarity holds the cosine kernel used by carry-in detection.
package similarity

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1].
//
// Mismatched lengths and zero-magnitude vectors return 0 instead of an
// error so a stale embedding version can never fail entry processing.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Max returns the highest cosine similarity between vec and any of the
// candidate vectors. Empty candidates yield 0.
func Max(vec []float32, candidates [][]float32) float64 {
	best := 0.0
	for i, c := range candidates {
		s := Cosine(vec, c)
		if i == 0 || s > best {
			best = s
		}
	}
	return best
}
