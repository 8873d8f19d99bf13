// Package kmeans provides a deterministic k-means clustering engine for Go.
//
// The engine runs Lloyd's algorithm: starting from k centroids it alternates
// an assignment step (every point joins its nearest centroid) and an update
// step (every centroid moves to the mean of its points) until no point
// changes cluster or an iteration cap is reached.
//
// # Quick Start
//
//	eng, _ := kmeans.New(2, func(o *kmeans.Options) {
//	    o.Seed = 42
//	    o.MaxIterations = 100
//	})
//	res, _ := eng.Fit(ctx, points)
//	fmt.Println(res.Centroids(), res.Assignments(), res.Goal(), res.Iterations())
//
// Explicit starting centroids skip the random initialization:
//
//	res, _ := kmeans.Compute(ctx, points, [][]float64{{0, 0}, {10, 0}}, 100)
//
// # Initialization
//
//   - InitRandom: k distinct points chosen uniformly (default)
//   - InitKMeansPlusPlus: D² weighted sampling (k-means++)
//
// Both draw from a generator created per call and seeded with Options.Seed
// (DefaultSeed if unset), so equal inputs always produce equal results.
//
// # Semantics
//
//   - Distances are squared Euclidean; ties go to the lowest centroid index.
//   - A centroid that loses all of its points keeps its previous position.
//   - The goal function is the sum of squared distances of every point to its
//     assigned centroid, evaluated after the update step.
//   - Iterations counts completed assignment/update rounds, including the
//     round that detected convergence.
//
// # Errors
//
// Every precondition violation (k <= 0, k > n, maxIterations <= 0,
// inconsistent dimensions, NaN or Inf coordinates) fails with an error
// satisfying errors.Is(err, ErrInvalidInput) before any iteration runs.
//
// # Concurrency
//
// Iterations are sequential. Options.Parallelism splits the assignment pass
// of one iteration across goroutines without changing the result.
//
// # Persistence
//
// The snapshot package encodes a Result (optionally LZ4 or ZSTD compressed)
// and stores it in any blobstore.BlobStore: local disk, memory, S3 (with an
// optional DynamoDB commit pointer) or MinIO.
package kmeans
