// Package resource implements the Controller used to govern clustering runs
// and snapshot IO.
//
// The Controller manages three resource types:
//
//   - Memory: reserve the working buffers of a run (non-blocking, fail-fast)
//   - Runs: limit how many clustering runs execute at once (blocking)
//   - IO: rate-limit snapshot reads and writes (token bucket)
//
// # Memory Management
//
// AcquireMemory is non-blocking and returns ErrMemoryLimitExceeded when the
// limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(bytes); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(bytes)
//
// # Run Limits
//
//	rc := resource.NewController(resource.Config{MaxConcurrentRuns: 4})
//
//	if err := rc.AcquireRun(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseRun()
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	writer := resource.NewRateLimitedWriter(ctx, w, rc)
//	reader := resource.NewRateLimitedReader(ctx, r, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
