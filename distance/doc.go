// Package distance provides the float64 distance kernels used by the
// clustering engine.
//
// # Supported Metrics
//
//   - SquaredL2: squared Euclidean distance (the k-means objective)
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
//	c, d := distance.Nearest(point, centroids, dim)
package distance
