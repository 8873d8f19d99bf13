package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints returns n points of dimension dim with coordinates in [0, 1).
func (r *RNG) UniformPoints(n, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, n)
	for i := range points {
		p := make([]float64, dim)
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// GaussianBlobs returns perCenter points drawn from an isotropic normal
// distribution around every center, together with the index of the center
// each point was drawn from. Points are grouped by center.
func (r *RNG) GaussianBlobs(centers [][]float64, perCenter int, stddev float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, 0, len(centers)*perCenter)
	labels := make([]int, 0, len(centers)*perCenter)

	for c, center := range centers {
		for i := 0; i < perCenter; i++ {
			p := make([]float64, len(center))
			for j, v := range center {
				p[j] = v + r.rand.NormFloat64()*stddev
			}
			points = append(points, p)
			labels = append(labels, c)
		}
	}

	return points, labels
}

// Shuffle returns a copy of points and labels permuted together.
func (r *RNG) Shuffle(points [][]float64, labels []int) ([][]float64, []int) {
	r.mu.Lock()
	perm := r.rand.Perm(len(points))
	r.mu.Unlock()

	p := make([][]float64, len(points))
	l := make([]int, len(labels))
	for i, j := range perm {
		p[i] = points[j]
		if len(labels) == len(points) {
			l[i] = labels[j]
		}
	}
	return p, l
}
