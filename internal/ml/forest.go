package ml

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/rand"
)

var ErrEmptyTrainingSet = errors.New("ml: empty or degenerate training set")

// Forest is a bagging ensemble: each tree is fit on a bootstrap sample of
// the training rows. Fields are exported for gob serialization.
type Forest struct {
	Trees           []*Tree
	TreeCount       int
	MaxDepth        int
	MinSamplesSplit int
	Seed            int64
}

type Option func(*Forest)

func WithTrees(n int) Option {
	return func(f *Forest) { f.TreeCount = n }
}

func WithMaxDepth(d int) Option {
	return func(f *Forest) { f.MaxDepth = d }
}

func WithMinSamplesSplit(n int) Option {
	return func(f *Forest) { f.MinSamplesSplit = n }
}

func WithSeed(seed int64) Option {
	return func(f *Forest) { f.Seed = seed }
}

func NewForest(opts ...Option) *Forest {
	f := &Forest{
		TreeCount:       100,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		Seed:            42,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit trains the ensemble. Given the same seed and input, the resulting
// forest is identical across runs.
func (f *Forest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return errors.New("ml: feature and label counts differ")
	}

	rng := rand.New(rand.NewSource(f.Seed))
	n := len(X)

	f.Trees = make([]*Tree, 0, f.TreeCount)
	for i := 0; i < f.TreeCount; i++ {
		indices := make([]int, n)
		for j := range indices {
			indices[j] = rng.Intn(n)
		}
		tree := &Tree{MaxDepth: f.MaxDepth, MinSamplesSplit: f.MinSamplesSplit}
		tree.Fit(X, y, indices)
		f.Trees = append(f.Trees, tree)
	}
	return nil
}

// PredictProba returns the positive-class score: the fraction of trees
// voting churn. Always within [0, 1].
func (f *Forest) PredictProba(x []float64) float64 {
	votes := 0
	for _, tree := range f.Trees {
		if tree.Predict(x) == 1 {
			votes++
		}
	}
	return float64(votes) / float64(len(f.Trees))
}

// Predict derives the label from PredictProba so that label and
// probability can never disagree: score >= 0.5 means churn.
func (f *Forest) Predict(x []float64) int {
	if f.PredictProba(x) >= 0.5 {
		return 1
	}
	return 0
}

// Encode serializes the trained forest to an opaque binary blob.
func (f *Forest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeForest(data []byte) (*Forest, error) {
	var f Forest
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
