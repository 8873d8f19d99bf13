// Package testutil provides helpers for generating clustering test data.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(1000, 8)                   // uniform [0, 1)
//	points, labels := rng.GaussianBlobs(centers, 100, 0.5) // well separated groups
package testutil
