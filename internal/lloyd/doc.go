// Package lloyd implements the iteration loop of Lloyd's k-means algorithm
// on flattened row-major matrices.
//
// Callers are expected to validate their input (dimensions, finiteness,
// k <= n) before calling Run. The root kmeans package does this.
package lloyd
