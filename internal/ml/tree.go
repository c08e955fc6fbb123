// Package ml implements the churn classifier: a bagged ensemble of
// decision trees over dense float feature matrices.
package ml

import "sort"

// Node fields are exported so a trained tree survives gob encoding.
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
	Leaf      bool
	Class     int
}

type Tree struct {
	Root            *Node
	MaxDepth        int
	MinSamplesSplit int
}

// Fit builds the tree with recursive Gini splits on the rows selected by
// indices (bootstrap sample indices when called from the forest).
func (t *Tree) Fit(X [][]float64, y []int, indices []int) {
	numClasses := 0
	for _, label := range y {
		if label+1 > numClasses {
			numClasses = label + 1
		}
	}
	t.Root = t.build(X, y, indices, numClasses, 0)
}

func (t *Tree) Predict(x []float64) int {
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Class
}

func (t *Tree) build(X [][]float64, y []int, indices []int, numClasses, depth int) *Node {
	counts := make([]int, numClasses)
	for _, i := range indices {
		counts[y[i]]++
	}
	majority := argmax(counts)

	if depth >= t.MaxDepth || len(indices) < t.MinSamplesSplit || counts[majority] == len(indices) {
		return &Node{Leaf: true, Class: majority}
	}

	feature, threshold, ok := bestSplit(X, y, indices, counts)
	if !ok {
		return &Node{Leaf: true, Class: majority}
	}

	var left, right []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &Node{Leaf: true, Class: majority}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.build(X, y, left, numClasses, depth+1),
		Right:     t.build(X, y, right, numClasses, depth+1),
	}
}

// bestSplit sweeps each feature in sorted order, tracking class counts on
// both sides to score candidate thresholds by weighted Gini impurity.
func bestSplit(X [][]float64, y []int, indices []int, totalCounts []int) (int, float64, bool) {
	n := len(indices)
	numFeatures := len(X[indices[0]])
	parent := gini(totalCounts, n)

	bestFeature, bestThreshold, bestImpurity := -1, 0.0, parent
	sorted := make([]int, n)

	for feature := 0; feature < numFeatures; feature++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool {
			return X[sorted[a]][feature] < X[sorted[b]][feature]
		})

		leftCounts := make([]int, len(totalCounts))
		rightCounts := make([]int, len(totalCounts))
		copy(rightCounts, totalCounts)

		for pos := 0; pos < n-1; pos++ {
			label := y[sorted[pos]]
			leftCounts[label]++
			rightCounts[label]--

			current := X[sorted[pos]][feature]
			next := X[sorted[pos+1]][feature]
			if current == next {
				continue
			}

			leftN := pos + 1
			rightN := n - leftN
			impurity := (float64(leftN)*gini(leftCounts, leftN) +
				float64(rightN)*gini(rightCounts, rightN)) / float64(n)

			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = feature
				bestThreshold = (current + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
