package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    computeCounter   prometheus.Counter
//	    computeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCompute(n, k, iterations int, duration time.Duration, err error) {
//	    p.computeCounter.Inc()
//	    p.computeHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordInit is called after each centroid initialization.
	RecordInit(duration time.Duration, err error)

	// RecordCompute is called after each clustering run.
	// n is the number of points, k the number of clusters and iterations
	// the number of Lloyd iterations performed (0 on error).
	RecordCompute(n, k, iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInit(time.Duration, error)                   {}
func (NoopMetricsCollector) RecordCompute(int, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InitCount         atomic.Int64
	InitErrors        atomic.Int64
	ComputeCount      atomic.Int64
	ComputeErrors     atomic.Int64
	ComputeTotalNanos atomic.Int64
	Iterations        atomic.Int64
	Points            atomic.Int64
}

// RecordInit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInit(duration time.Duration, err error) {
	b.InitCount.Add(1)
	if err != nil {
		b.InitErrors.Add(1)
	}
}

// RecordCompute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompute(n, k, iterations int, duration time.Duration, err error) {
	b.ComputeCount.Add(1)
	b.ComputeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ComputeErrors.Add(1)
		return
	}
	b.Iterations.Add(int64(iterations))
	b.Points.Add(int64(n))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		InitCount:     b.InitCount.Load(),
		InitErrors:    b.InitErrors.Load(),
		ComputeCount:  b.ComputeCount.Load(),
		ComputeErrors: b.ComputeErrors.Load(),
		Iterations:    b.Iterations.Load(),
		Points:        b.Points.Load(),
	}
	if stats.ComputeCount > 0 {
		stats.ComputeAvgNanos = b.ComputeTotalNanos.Load() / stats.ComputeCount
	}
	return stats
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	InitCount       int64
	InitErrors      int64
	ComputeCount    int64
	ComputeErrors   int64
	ComputeAvgNanos int64
	Iterations      int64
	Points          int64
}
