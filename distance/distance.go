package distance

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
// Uses 4-way loop unrolling for better instruction-level parallelism.
func SquaredL2(a, b []float64) float64 {
	n := len(a)
	var sum0, sum1, sum2, sum3 float64

	i := 0
	for ; i <= n-4; i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		sum0 += d0 * d0
		sum1 += d1 * d1
		sum2 += d2 * d2
		sum3 += d3 * d3
	}

	for ; i < n; i++ {
		d := a[i] - b[i]
		sum0 += d * d
	}

	return sum0 + sum1 + sum2 + sum3
}

// Nearest returns the index of the centroid closest to vec and its squared
// L2 distance. centroids is a flattened k*dim matrix.
//
// Exact ties resolve to the lowest centroid index. Returns -1 if there are
// no centroids.
func Nearest(vec, centroids []float64, dim int) (int, float64) {
	k := len(centroids) / dim
	if k == 0 {
		return -1, math.Inf(1)
	}

	best := 0
	minDist := SquaredL2(vec, centroids[:dim])

	for c := 1; c < k; c++ {
		d := SquaredL2(vec, centroids[c*dim:(c+1)*dim])
		if d < minDist {
			minDist = d
			best = c
		}
	}

	return best, minDist
}
