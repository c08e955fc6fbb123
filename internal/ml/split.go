package ml

import "math/rand"

// TrainTestSplit partitions rows into train and test sets. The shuffle is
// seeded, so the same seed and input always produce the same partition.
func TrainTestSplit(X [][]float64, y []int, testFraction float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []int) {
	n := len(X)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testSize := int(float64(n) * testFraction)
	for i, idx := range perm {
		if i < testSize {
			XTest = append(XTest, X[idx])
			yTest = append(yTest, y[idx])
		} else {
			XTrain = append(XTrain, X[idx])
			yTrain = append(yTrain, y[idx])
		}
	}
	return XTrain, XTest, yTrain, yTest
}
