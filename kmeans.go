package kmeans

import (
	"context"
	"time"

	"github.com/hupe1980/kmeans/internal/lloyd"
)

// Engine runs Lloyd's k-means algorithm for a fixed number of clusters.
//
// An Engine holds configuration only. Every call is independent, so one
// Engine may be used from several goroutines at once.
type Engine struct {
	k    int
	opts Options
}

// New creates an Engine that partitions points into k clusters.
//
// Example:
//
//	eng, err := kmeans.New(3, func(o *kmeans.Options) {
//	    o.Seed = 42
//	    o.MaxIterations = 50
//	    o.Init = kmeans.InitKMeansPlusPlus
//	})
//	res, err := eng.Fit(ctx, points)
func New(k int, optFns ...func(o *Options)) (*Engine, error) {
	if k <= 0 {
		return nil, invalid("k", "must be positive, got %d", k)
	}

	opts := buildOptions(optFns)
	if opts.MaxIterations <= 0 {
		return nil, invalid("maxIterations", "must be positive, got %d", opts.MaxIterations)
	}
	if opts.InitialCentroids != nil && len(opts.InitialCentroids) != k {
		return nil, invalid("centroids", "got %d rows, expected %d", len(opts.InitialCentroids), k)
	}

	return &Engine{k: k, opts: opts}, nil
}

// K returns the number of clusters.
func (e *Engine) K() int { return e.k }

// InitializeCentroids returns k starting centroids for points.
//
// Configured InitialCentroids are validated against the points and returned
// unchanged. Otherwise centroids are drawn from the points with the
// configured method, using a generator seeded with Options.Seed.
func (e *Engine) InitializeCentroids(points [][]float64) (centroids [][]float64, err error) {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		e.opts.MetricsCollector.RecordInit(time.Since(start), err)
		e.opts.Logger.LogInit(ctx, e.opts.Init, e.k, e.opts.Seed, err)
	}()

	flat, dim, err := flattenPoints(points)
	if err != nil {
		return nil, err
	}
	if err := checkK(e.k, len(points)); err != nil {
		return nil, err
	}

	if e.opts.InitialCentroids != nil {
		explicit, err := flattenCentroids(e.opts.InitialCentroids, e.k, dim)
		if err != nil {
			return nil, err
		}
		return unflatten(explicit, dim), nil
	}

	selected, err := initialize(flat, dim, e.k, e.opts.Seed, e.opts.Init)
	if err != nil {
		return nil, err
	}
	return unflatten(selected, dim), nil
}

// Compute runs Lloyd's algorithm on points starting from initial.
//
// Each iteration assigns every point to its nearest centroid (lowest index on
// exact ties), moves every centroid to the mean of its points (a centroid
// without points stays where it is) and recomputes the goal function. The run
// stops after Options.MaxIterations iterations or once an iteration leaves
// every assignment unchanged.
//
// All validation happens before the first iteration: invalid arguments fail
// with ErrInvalidInput. ctx only bounds the wait for a run slot of the
// configured ResourceController; a started run always completes.
func (e *Engine) Compute(ctx context.Context, points, initial [][]float64) (res *Result, err error) {
	start := time.Now()
	n := len(points)
	defer func() {
		iterations, goal := 0, 0.0
		if res != nil {
			iterations, goal = res.Iterations(), res.Goal()
		}
		e.opts.MetricsCollector.RecordCompute(n, e.k, iterations, time.Since(start), err)
		e.opts.Logger.LogCompute(ctx, n, e.k, iterations, goal, time.Since(start), err)
	}()

	flat, dim, err := flattenPoints(points)
	if err != nil {
		return nil, err
	}
	if err := checkK(e.k, n); err != nil {
		return nil, err
	}
	centroids, err := flattenCentroids(initial, e.k, dim)
	if err != nil {
		return nil, err
	}

	rc := e.opts.ResourceController
	if err := rc.AcquireRun(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseRun()

	buf := bufferBytes(n, e.k, dim)
	if err := rc.AcquireMemory(buf); err != nil {
		return nil, err
	}
	defer rc.ReleaseMemory(buf)

	st := lloyd.Run(flat, dim, centroids, lloyd.Config{
		MaxIterations: e.opts.MaxIterations,
		Workers:       e.opts.Parallelism,
		OnIteration: func(iteration int, goal float64, changed int) {
			stats := IterationStats{Iteration: iteration, Goal: goal, Changed: changed}
			e.opts.Logger.LogIteration(ctx, stats)
			if e.opts.OnIteration != nil {
				e.opts.OnIteration(stats)
			}
		},
	})

	return newResult(st.Centroids, dim, st.Assignments, st.Goal, st.Iterations), nil
}

// Fit initializes centroids for points and runs Compute from them.
func (e *Engine) Fit(ctx context.Context, points [][]float64) (*Result, error) {
	initial, err := e.InitializeCentroids(points)
	if err != nil {
		return nil, err
	}
	return e.Compute(ctx, points, initial)
}

// InitializeCentroids selects k starting centroids from points using a
// generator seeded with seed. It fails with ErrInvalidInput if k <= 0,
// k > len(points) or the points are malformed.
func InitializeCentroids(points [][]float64, k int, seed int64, method InitMethod) ([][]float64, error) {
	e, err := New(k, func(o *Options) {
		o.Seed = seed
		o.Init = method
	})
	if err != nil {
		return nil, err
	}
	return e.InitializeCentroids(points)
}

// Compute clusters points into len(initial) clusters starting from initial,
// for at most maxIterations iterations. See Engine.Compute.
func Compute(ctx context.Context, points, initial [][]float64, maxIterations int, optFns ...func(o *Options)) (*Result, error) {
	fns := make([]func(o *Options), 0, len(optFns)+1)
	fns = append(fns, optFns...)
	fns = append(fns, func(o *Options) {
		o.MaxIterations = maxIterations
		o.InitialCentroids = nil
	})

	e, err := New(len(initial), fns...)
	if err != nil {
		return nil, err
	}
	return e.Compute(ctx, points, initial)
}

// bufferBytes estimates the working memory of a run: the flattened points,
// two centroid matrices, the assignment vector and the cluster counts.
func bufferBytes(n, k, dim int) int64 {
	const word = 8
	return int64(word * (n*dim + 2*k*dim + n + k))
}
