package kmeans

import (
	"math/rand"

	"github.com/hupe1980/kmeans/distance"
)

// initialize selects k starting centroids from the n*dim flattened points.
// The caller guarantees 0 < k <= n.
func initialize(points []float64, dim, k int, seed int64, method InitMethod) ([]float64, error) {
	rng := rand.New(rand.NewSource(seed))

	switch method {
	case InitRandom:
		return initRandom(rng, points, dim, k), nil
	case InitKMeansPlusPlus:
		return initKMeansPlusPlus(rng, points, dim, k), nil
	default:
		return nil, invalid("init", "unsupported method %d", int(method))
	}
}

// initRandom picks k distinct points uniformly at random.
func initRandom(rng *rand.Rand, points []float64, dim, k int) []float64 {
	n := len(points) / dim
	perm := rng.Perm(n)

	centroids := make([]float64, k*dim)
	for i := 0; i < k; i++ {
		copy(centroids[i*dim:(i+1)*dim], points[perm[i]*dim:(perm[i]+1)*dim])
	}
	return centroids
}

// initKMeansPlusPlus picks the first centroid uniformly and every further
// centroid with probability proportional to its squared distance from the
// nearest centroid chosen so far. A point is never chosen twice.
func initKMeansPlusPlus(rng *rand.Rand, points []float64, dim, k int) []float64 {
	n := len(points) / dim
	centroids := make([]float64, k*dim)
	chosen := make([]bool, n)

	first := rng.Intn(n)
	chosen[first] = true
	copy(centroids[:dim], points[first*dim:(first+1)*dim])

	// Distance to nearest chosen centroid (cached)
	minDistances := make([]float64, n)
	for i := 0; i < n; i++ {
		minDistances[i] = distance.SquaredL2(points[i*dim:(i+1)*dim], centroids[:dim])
	}
	minDistances[first] = 0

	for c := 1; c < k; c++ {
		totalWeight := 0.0
		for _, d := range minDistances {
			totalWeight += d
		}

		selected := -1
		if totalWeight > 0 {
			target := rng.Float64() * totalWeight
			cumWeight := 0.0
			for i, d := range minDistances {
				if d == 0 {
					continue
				}
				cumWeight += d
				selected = i
				if cumWeight >= target {
					break
				}
			}
		}

		if selected < 0 {
			// Every remaining point coincides with a chosen centroid.
			selected = pickUnchosen(rng, chosen)
		}

		chosen[selected] = true
		centroid := centroids[c*dim : (c+1)*dim]
		copy(centroid, points[selected*dim:(selected+1)*dim])

		for i := 0; i < n; i++ {
			if chosen[i] {
				minDistances[i] = 0
				continue
			}
			if d := distance.SquaredL2(points[i*dim:(i+1)*dim], centroid); d < minDistances[i] {
				minDistances[i] = d
			}
		}
	}

	return centroids
}

func pickUnchosen(rng *rand.Rand, chosen []bool) int {
	free := make([]int, 0, len(chosen))
	for i, c := range chosen {
		if !c {
			free = append(free, i)
		}
	}
	return free[rng.Intn(len(free))]
}
