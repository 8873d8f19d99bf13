package kmeans

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans/distance"
)

// Result is the immutable outcome of a clustering run.
//
// Accessors return copies; a Result can be shared between goroutines.
type Result struct {
	dim         int
	centroids   []float64 // k*dim, row-major
	assignments []int
	goal        float64
	iterations  int
	members     []*roaring.Bitmap
}

// NewResult assembles a Result from its parts, for example when restoring a
// persisted run. The inputs are copied and validated.
func NewResult(centroids [][]float64, assignments []int, goal float64, iterations int) (*Result, error) {
	if len(centroids) == 0 {
		return nil, invalid("centroids", "must not be empty")
	}

	dim := len(centroids[0])
	if dim == 0 {
		return nil, invalid("centroids", "dimension must be positive")
	}

	flat, err := flattenCentroids(centroids, len(centroids), dim)
	if err != nil {
		return nil, err
	}

	if len(assignments) < len(centroids) {
		return nil, invalid("assignments", "got %d points for %d clusters", len(assignments), len(centroids))
	}
	for i, c := range assignments {
		if c < 0 || c >= len(centroids) {
			return nil, invalid("assignments", "point %d assigned to cluster %d, want [0, %d)", i, c, len(centroids))
		}
	}

	// +Inf is a valid goal: squared distances of large finite points overflow.
	if math.IsNaN(goal) || goal < 0 {
		return nil, invalid("goal", "must be non-negative, got %v", goal)
	}
	if iterations <= 0 {
		return nil, invalid("iterations", "must be positive, got %d", iterations)
	}

	a := make([]int, len(assignments))
	copy(a, assignments)

	return newResult(flat, dim, a, goal, iterations), nil
}

// newResult takes ownership of centroids and assignments.
func newResult(centroids []float64, dim int, assignments []int, goal float64, iterations int) *Result {
	k := len(centroids) / dim

	members := make([]*roaring.Bitmap, k)
	for c := range members {
		members[c] = roaring.New()
	}
	for i, c := range assignments {
		members[c].Add(uint32(i))
	}

	return &Result{
		dim:         dim,
		centroids:   centroids,
		assignments: assignments,
		goal:        goal,
		iterations:  iterations,
		members:     members,
	}
}

// K returns the number of clusters.
func (r *Result) K() int { return len(r.centroids) / r.dim }

// Dim returns the dimension of points and centroids.
func (r *Result) Dim() int { return r.dim }

// Len returns the number of clustered points.
func (r *Result) Len() int { return len(r.assignments) }

// Goal returns the sum of squared distances of every point to its centroid.
// It is +Inf when that sum overflows float64.
func (r *Result) Goal() float64 { return r.goal }

// Iterations returns the number of iterations the run performed.
func (r *Result) Iterations() int { return r.iterations }

// Centroids returns a copy of the final centroids.
func (r *Result) Centroids() [][]float64 {
	return unflatten(r.centroids, r.dim)
}

// Centroid returns a copy of centroid c. It panics if c is out of range.
func (r *Result) Centroid(c int) []float64 {
	out := make([]float64, r.dim)
	copy(out, r.centroids[c*r.dim:(c+1)*r.dim])
	return out
}

// Assignments returns a copy of the cluster index of every point.
func (r *Result) Assignments() []int {
	out := make([]int, len(r.assignments))
	copy(out, r.assignments)
	return out
}

// ClusterSizes returns the number of points in every cluster.
func (r *Result) ClusterSizes() []int {
	sizes := make([]int, len(r.members))
	for c, m := range r.members {
		sizes[c] = int(m.GetCardinality())
	}
	return sizes
}

// Members returns the indices of the points assigned to cluster c.
// The bitmap is a copy and may be modified freely. It returns nil if c is
// out of range.
func (r *Result) Members(c int) *roaring.Bitmap {
	if c < 0 || c >= len(r.members) {
		return nil
	}
	return r.members[c].Clone()
}

// Predict returns the cluster whose centroid is nearest to point.
// Exact ties resolve to the lowest cluster index.
func (r *Result) Predict(point []float64) (int, error) {
	if err := r.checkPoint(point); err != nil {
		return -1, err
	}

	c, _ := distance.Nearest(point, r.centroids, r.dim)
	return c, nil
}

type centroidDist struct {
	id   int
	dist float64
}

// NearestClusters returns the indices of the m clusters closest to point,
// nearest first. m is clamped to K().
func (r *Result) NearestClusters(point []float64, m int) ([]int, error) {
	if err := r.checkPoint(point); err != nil {
		return nil, err
	}
	if m <= 0 {
		return nil, invalid("m", "must be positive, got %d", m)
	}

	k := r.K()
	if m > k {
		m = k
	}

	dists := make([]centroidDist, k)
	for c := 0; c < k; c++ {
		dists[c] = centroidDist{id: c, dist: distance.SquaredL2(point, r.centroids[c*r.dim:(c+1)*r.dim])}
	}

	sort.SliceStable(dists, func(i, j int) bool {
		return dists[i].dist < dists[j].dist
	})

	out := make([]int, m)
	for i := range out {
		out[i] = dists[i].id
	}
	return out, nil
}

func (r *Result) checkPoint(point []float64) error {
	if len(point) != r.dim {
		return invalid("point", "dimension %d, expected %d", len(point), r.dim)
	}
	for j, v := range point {
		if !isFinite(v) {
			return invalid("point", "column %d is not finite (%v)", j, v)
		}
	}
	return nil
}
