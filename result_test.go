package kmeans

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourPointResult(t *testing.T) *Result {
	t.Helper()
	res, err := Compute(context.Background(), fourPoints, [][]float64{{0, 0}, {10, 0}}, 100)
	require.NoError(t, err)
	return res
}

func TestResult_Accessors(t *testing.T) {
	res := fourPointResult(t)

	t.Run("CopiesAreIndependent", func(t *testing.T) {
		centroids := res.Centroids()
		centroids[0][0] = 42
		assert.Equal(t, 0.0, res.Centroids()[0][0])

		c := res.Centroid(1)
		c[0] = 42
		assert.Equal(t, 10.0, res.Centroid(1)[0])

		a := res.Assignments()
		a[0] = 1
		assert.Equal(t, 0, res.Assignments()[0])
	})

	t.Run("Members", func(t *testing.T) {
		assert.Equal(t, []uint32{0, 1}, res.Members(0).ToArray())
		assert.Equal(t, []uint32{2, 3}, res.Members(1).ToArray())
		assert.Nil(t, res.Members(2))
		assert.Nil(t, res.Members(-1))

		m := res.Members(0)
		m.Add(3)
		assert.Equal(t, uint64(2), res.Members(0).GetCardinality())
	})

	t.Run("ClusterSizes", func(t *testing.T) {
		assert.Equal(t, []int{2, 2}, res.ClusterSizes())
	})
}

func TestResult_Predict(t *testing.T) {
	res := fourPointResult(t)

	c, err := res.Predict([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = res.Predict([]float64{9, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	// Equidistant: lowest index wins.
	c, err = res.Predict([]float64{5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	_, err = res.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = res.Predict([]float64{math.NaN(), 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResult_NearestClusters(t *testing.T) {
	res, err := NewResult(
		[][]float64{{0}, {10}, {20}},
		[]int{0, 1, 2},
		0, 1,
	)
	require.NoError(t, err)

	got, err := res.NearestClusters([]float64{12}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	got, err = res.NearestClusters([]float64{-1}, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)

	// Ties keep index order.
	got, err = res.NearestClusters([]float64{15}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, got)

	_, err = res.NearestClusters([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = res.NearestClusters([]float64{1, 2}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewResult(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assignments := []int{0, 1, 1}
		res, err := NewResult([][]float64{{0, 0}, {1, 1}}, assignments, 0.5, 3)
		require.NoError(t, err)

		assignments[0] = 1
		assert.Equal(t, []int{0, 1, 1}, res.Assignments())
		assert.Equal(t, 0.5, res.Goal())
		assert.Equal(t, 3, res.Iterations())
		assert.Equal(t, []int{1, 2}, res.ClusterSizes())
	})

	t.Run("OverflowedGoal", func(t *testing.T) {
		res, err := NewResult([][]float64{{0}}, []int{0, 0}, math.Inf(1), 1)
		require.NoError(t, err)
		assert.True(t, math.IsInf(res.Goal(), 1))
	})

	tests := []struct {
		name        string
		centroids   [][]float64
		assignments []int
		goal        float64
		iterations  int
	}{
		{"NoCentroids", nil, []int{0}, 0, 1},
		{"ZeroDimension", [][]float64{{}}, []int{0}, 0, 1},
		{"RaggedCentroids", [][]float64{{0, 0}, {1}}, []int{0, 1}, 0, 1},
		{"FewerPointsThanClusters", [][]float64{{0}, {1}}, []int{0}, 0, 1},
		{"AssignmentOutOfRange", [][]float64{{0}, {1}}, []int{0, 2}, 0, 1},
		{"NegativeAssignment", [][]float64{{0}, {1}}, []int{0, -1}, 0, 1},
		{"NegativeGoal", [][]float64{{0}}, []int{0}, -1, 1},
		{"NaNGoal", [][]float64{{0}}, []int{0}, math.NaN(), 1},
		{"NegativeInfGoal", [][]float64{{0}}, []int{0}, math.Inf(-1), 1},
		{"InfCentroid", [][]float64{{math.Inf(1)}}, []int{0}, 0, 1},
		{"ZeroIterations", [][]float64{{0}}, []int{0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResult(tt.centroids, tt.assignments, tt.goal, tt.iterations)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
