package retrieval

import "math"

// Cosine computes the cosine similarity between two vectors, in
// [-1, 1]. It is total: mismatched lengths or a zero-magnitude vector
// yield exactly 0 rather than an error. Accumulation runs in float64
// to limit rounding drift on high-dimensional vectors.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
