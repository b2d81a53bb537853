package embedding

import "math"

// Cosine returns the cosine similarity between two vectors.
func Cosine(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// CosineDistance is 1 - Cosine clamped to [0, 2]. Float32 rounding can put
// identical vectors a hair below zero.
func CosineDistance(a, b []float32) float64 {
	d := 1 - float64(Cosine(a, b))
	return math.Min(math.Max(d, 0), 2)
}

// Normalize performs L2 normalization on v in place and returns it.
func Normalize(v []float32) []float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	norm := float32(math.Sqrt(float64(sum)))
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}
