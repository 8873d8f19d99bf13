package kmeans

import (
	"github.com/hupe1980/kmeans/resource"
)

// DefaultSeed seeds centroid initialization when no seed is configured.
const DefaultSeed int64 = 777

// InitMethod selects how starting centroids are chosen from the points.
type InitMethod int

const (
	// InitRandom picks k distinct points uniformly at random.
	InitRandom InitMethod = iota
	// InitKMeansPlusPlus picks each next centroid with probability
	// proportional to its squared distance from the closest chosen one.
	InitKMeansPlusPlus
)

func (m InitMethod) String() string {
	switch m {
	case InitRandom:
		return "random"
	case InitKMeansPlusPlus:
		return "kmeans++"
	default:
		return "unknown"
	}
}

// IterationStats describes one finished assignment/update round.
type IterationStats struct {
	// Iteration is 1-based.
	Iteration int
	// Goal is the sum of squared distances after the update step.
	Goal float64
	// Changed is the number of points whose cluster changed in this round.
	Changed int
}

// Options configures an Engine.
type Options struct {
	// Seed drives the pseudo-random generator used by initialization.
	// A fresh generator is created per call, so equal seeds give equal runs.
	Seed int64

	// MaxIterations caps the number of Lloyd iterations. Must be > 0.
	MaxIterations int

	// Init selects the initialization method. Ignored when
	// InitialCentroids is set.
	Init InitMethod

	// InitialCentroids, if non-nil, are used unchanged as starting
	// centroids. They must have k rows of the point dimension.
	InitialCentroids [][]float64

	// Parallelism is the number of goroutines used for the assignment pass.
	// Results do not depend on it. Values <= 1 run sequentially.
	Parallelism int

	// Logger receives run diagnostics. Defaults to NoopLogger().
	Logger *Logger

	// MetricsCollector records run metrics. Defaults to NoopMetricsCollector.
	MetricsCollector MetricsCollector

	// ResourceController, if set, admits runs and accounts their buffers.
	ResourceController *resource.Controller

	// OnIteration, if set, is called after every iteration.
	OnIteration func(IterationStats)
}

// DefaultOptions returns the default engine options.
var DefaultOptions = Options{
	Seed:          DefaultSeed,
	MaxIterations: 300,
	Init:          InitRandom,
	Parallelism:   1,
}

func buildOptions(optFns []func(o *Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.MetricsCollector == nil {
		opts.MetricsCollector = NoopMetricsCollector{}
	}

	return opts
}
