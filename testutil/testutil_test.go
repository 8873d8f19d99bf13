package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)
	points := rng.UniformPoints(100, 3)

	require.Len(t, points, 100)
	for _, p := range points {
		require.Len(t, p, 3)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.UniformPoints(10, 2)
	rng.Reset()
	b := rng.UniformPoints(10, 2)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestGaussianBlobs(t *testing.T) {
	rng := NewRNG(1)
	centers := [][]float64{{0, 0}, {100, 100}}

	points, labels := rng.GaussianBlobs(centers, 50, 1)
	require.Len(t, points, 100)
	require.Len(t, labels, 100)

	for i, p := range points {
		c := centers[labels[i]]
		assert.InDelta(t, c[0], p[0], 10)
		assert.InDelta(t, c[1], p[1], 10)
	}
	assert.Equal(t, 0, labels[0])
	assert.Equal(t, 1, labels[99])
}

func TestShuffle(t *testing.T) {
	rng := NewRNG(7)
	points, labels := rng.GaussianBlobs([][]float64{{0}, {50}}, 10, 0.1)

	sp, sl := rng.Shuffle(points, labels)
	require.Len(t, sp, len(points))
	for i := range sp {
		if sl[i] == 0 {
			assert.Less(t, sp[i][0], 25.0)
		} else {
			assert.Greater(t, sp[i][0], 25.0)
		}
	}
}
