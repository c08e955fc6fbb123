package ml

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobs generates two Gaussian clusters, one per class.
func blobs(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		class := rng.Intn(2)
		center := -3.0
		if class == 1 {
			center = 3.0
		}
		X[i] = []float64{center + rng.NormFloat64(), center + rng.NormFloat64()}
		y[i] = class
	}
	return X, y
}

func TestForestSeparatesBlobs(t *testing.T) {
	X, y := blobs(400, 7)
	forest := NewForest(WithTrees(30), WithMaxDepth(6), WithSeed(42))
	require.NoError(t, forest.Fit(X, y))

	correct := 0
	for i := range X {
		if forest.Predict(X[i]) == y[i] {
			correct++
		}
	}
	assert.Greater(t, float64(correct)/float64(len(X)), 0.95)
}

func TestForestProbabilityBounds(t *testing.T) {
	X, y := blobs(200, 11)
	forest := NewForest(WithTrees(25), WithMaxDepth(5), WithSeed(1))
	require.NoError(t, forest.Fit(X, y))

	for _, x := range X {
		p := forest.PredictProba(x)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)

		// Label and probability can never disagree.
		if p >= 0.5 {
			assert.Equal(t, 1, forest.Predict(x))
		} else {
			assert.Equal(t, 0, forest.Predict(x))
		}
	}
}

func TestForestDeterministicWithSeed(t *testing.T) {
	X, y := blobs(200, 3)

	first := NewForest(WithTrees(20), WithMaxDepth(6), WithSeed(42))
	require.NoError(t, first.Fit(X, y))
	second := NewForest(WithTrees(20), WithMaxDepth(6), WithSeed(42))
	require.NoError(t, second.Fit(X, y))

	for _, x := range X {
		assert.Equal(t, first.PredictProba(x), second.PredictProba(x))
	}
}

func TestForestRejectsEmptyInput(t *testing.T) {
	forest := NewForest()
	assert.ErrorIs(t, forest.Fit(nil, nil), ErrEmptyTrainingSet)
	assert.ErrorIs(t, forest.Fit([][]float64{{}}, []int{0}), ErrEmptyTrainingSet)
}

func TestForestGobRoundTrip(t *testing.T) {
	X, y := blobs(150, 5)
	forest := NewForest(WithTrees(10), WithMaxDepth(4), WithSeed(9))
	require.NoError(t, forest.Fit(X, y))

	blob, err := forest.Encode()
	require.NoError(t, err)

	decoded, err := DecodeForest(blob)
	require.NoError(t, err)
	require.Len(t, decoded.Trees, 10)

	for _, x := range X {
		assert.Equal(t, forest.PredictProba(x), decoded.PredictProba(x))
	}
}
