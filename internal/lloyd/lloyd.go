package lloyd

import (
	"github.com/hupe1980/kmeans/distance"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of points handed to one assignment worker.
const minChunk = 256

// Config controls a single Run.
type Config struct {
	// MaxIterations caps the number of assignment/update rounds. Must be > 0.
	MaxIterations int

	// Workers is the number of goroutines used for the assignment pass.
	// Values <= 1 run the pass on the calling goroutine.
	Workers int

	// OnIteration, if set, is called after every completed iteration.
	OnIteration func(iteration int, goal float64, changed int)
}

// State is the outcome of a Run.
type State struct {
	Centroids   []float64 // k*dim, row-major
	Assignments []int     // n
	Goal        float64
	Iterations  int
}

// Run clusters the n*dim points starting from the k*dim centroids.
//
// Every round assigns each point to its nearest centroid (lowest index on
// exact ties), moves each centroid to the mean of its members and recomputes
// the goal function against the moved centroids. A centroid without members
// keeps its previous position. Run stops after MaxIterations rounds or after
// the first round in which no assignment changed.
//
// Neither points nor initial are modified.
func Run(points []float64, dim int, initial []float64, cfg Config) *State {
	n := len(points) / dim
	k := len(initial) / dim

	centroids := make([]float64, len(initial))
	copy(centroids, initial)

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	// Pre-allocate centroid update buffers to avoid allocations in hot loop
	sums := make([]float64, k*dim)
	counts := make([]int, k)

	chunks := partition(n, cfg.Workers)
	changedPerChunk := make([]int, len(chunks))

	var goal float64
	iterations := 0
	for iterations < cfg.MaxIterations {
		// Assignment step
		assign(points, dim, centroids, assignments, chunks, changedPerChunk)
		changed := 0
		for _, c := range changedPerChunk {
			changed += c
		}

		// Update step
		update(points, dim, centroids, assignments, sums, counts)

		goal = objective(points, dim, centroids, assignments)
		iterations++

		if cfg.OnIteration != nil {
			cfg.OnIteration(iterations, goal, changed)
		}

		if changed == 0 {
			break
		}
	}

	return &State{
		Centroids:   centroids,
		Assignments: assignments,
		Goal:        goal,
		Iterations:  iterations,
	}
}

type span struct {
	start, end int
}

// partition splits [0, n) into at most workers contiguous spans.
func partition(n, workers int) []span {
	if workers <= 1 || n < 2*minChunk {
		return []span{{0, n}}
	}

	size := (n + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}

	spans := make([]span, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, span{start, end})
	}
	return spans
}

// assign writes the nearest centroid of every point into assignments and
// records per span how many points moved. Centroids are read-only for the
// whole pass, so spans are independent.
func assign(points []float64, dim int, centroids []float64, assignments []int, spans []span, changed []int) {
	if len(spans) == 1 {
		changed[0] = assignSpan(points, dim, centroids, assignments, spans[0])
		return
	}

	var g errgroup.Group
	g.SetLimit(len(spans))

	for i, s := range spans {
		g.Go(func() error {
			changed[i] = assignSpan(points, dim, centroids, assignments, s)
			return nil
		})
	}

	_ = g.Wait() // workers never fail
}

func assignSpan(points []float64, dim int, centroids []float64, assignments []int, s span) int {
	changed := 0
	for i := s.start; i < s.end; i++ {
		nearest, _ := distance.Nearest(points[i*dim:(i+1)*dim], centroids, dim)
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

// update recomputes centroids as the mean of their assigned points.
func update(points []float64, dim int, centroids []float64, assignments []int, sums []float64, counts []int) {
	for i := range sums {
		sums[i] = 0
	}
	for i := range counts {
		counts[i] = 0
	}

	for i, c := range assignments {
		vec := points[i*dim : (i+1)*dim]
		sum := sums[c*dim : (c+1)*dim]
		for d, v := range vec {
			sum[d] += v
		}
		counts[c]++
	}

	for c, count := range counts {
		if count == 0 {
			// Empty clusters keep their previous position
			continue
		}
		for d := 0; d < dim; d++ {
			centroids[c*dim+d] = sums[c*dim+d] / float64(count)
		}
	}
}

// objective returns the sum of squared distances of every point to its
// assigned centroid.
func objective(points []float64, dim int, centroids []float64, assignments []int) float64 {
	var goal float64
	for i, c := range assignments {
		goal += distance.SquaredL2(points[i*dim:(i+1)*dim], centroids[c*dim:(c+1)*dim])
	}
	return goal
}
