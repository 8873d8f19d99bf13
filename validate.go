package kmeans

import "math"

// flattenPoints validates a point set and copies it into a row-major slice.
// It returns the flattened points and their dimension.
func flattenPoints(points [][]float64) ([]float64, int, error) {
	if len(points) == 0 {
		return nil, 0, invalid("points", "must not be empty")
	}

	dim := len(points[0])
	if dim == 0 {
		return nil, 0, invalid("points", "dimension must be positive")
	}

	flat := make([]float64, 0, len(points)*dim)
	for i, p := range points {
		if len(p) != dim {
			return nil, 0, invalid("points", "row %d has dimension %d, expected %d", i, len(p), dim)
		}
		for j, v := range p {
			if !isFinite(v) {
				return nil, 0, invalid("points", "row %d column %d is not finite (%v)", i, j, v)
			}
		}
		flat = append(flat, p...)
	}

	return flat, dim, nil
}

// flattenCentroids validates k centroids of the given dimension and copies
// them into a row-major slice.
func flattenCentroids(centroids [][]float64, k, dim int) ([]float64, error) {
	if len(centroids) != k {
		return nil, invalid("centroids", "got %d rows, expected %d", len(centroids), k)
	}

	flat := make([]float64, 0, k*dim)
	for i, c := range centroids {
		if len(c) != dim {
			return nil, invalid("centroids", "row %d has dimension %d, expected %d", i, len(c), dim)
		}
		for j, v := range c {
			if !isFinite(v) {
				return nil, invalid("centroids", "row %d column %d is not finite (%v)", i, j, v)
			}
		}
		flat = append(flat, c...)
	}

	return flat, nil
}

func checkK(k, n int) error {
	if k <= 0 {
		return invalid("k", "must be positive, got %d", k)
	}
	if k > n {
		return invalid("k", "%d exceeds the number of points %d", k, n)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// unflatten splits a row-major slice into freshly allocated rows.
func unflatten(flat []float64, dim int) [][]float64 {
	rows := make([][]float64, len(flat)/dim)
	for i := range rows {
		rows[i] = make([]float64, dim)
		copy(rows[i], flat[i*dim:(i+1)*dim])
	}
	return rows
}
