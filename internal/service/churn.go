package service

import (
	"fmt"
	"sort"

	"github.com/mineh7/Marketing-Analytics-Project/internal/ml"
	"github.com/mineh7/Marketing-Analytics-Project/internal/models"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/config"

	"go.uber.org/zap"
)

// ScoredCustomer is one customer's model output.
type ScoredCustomer struct {
	CustomerID  int64
	Label       models.ChurnLabel
	Probability float64
}

// TrainResult carries everything downstream stages need: the fitted
// forest, the held-out evaluation report and a score for every customer.
type TrainResult struct {
	Forest       *ml.Forest
	Report       ml.Report
	Scored       []ScoredCustomer
	FeatureNames []string
	// LabelDerived flags that the churn label was derived from
	// usage_frequency, which is itself a feature, so the evaluation
	// metrics do not reflect a real predictive task.
	LabelDerived bool
}

// Trainer fits the churn classifier. The label is derived, not observed:
// a customer is churned when usage_frequency falls below the configured
// threshold.
type Trainer struct {
	cfg    config.ModelConfig
	logger *zap.Logger
}

func NewTrainer(cfg config.ModelConfig, logger *zap.Logger) *Trainer {
	return &Trainer{cfg: cfg, logger: logger}
}

// TrainAndScore splits the feature table, fits the forest on the training
// partition, evaluates on the held-out partition and then scores every
// row. An empty or degenerate feature set is fatal: no model can be
// produced and the pipeline must stop rather than persist garbage.
func (t *Trainer) TrainAndScore(rows []models.FeatureRow) (*TrainResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("training failed: %w", ml.ErrEmptyTrainingSet)
	}

	X, featureNames := t.buildMatrix(rows)
	y := make([]int, len(rows))
	for i, row := range rows {
		if row.UsageFrequency < t.cfg.ChurnThreshold {
			y[i] = 1
		}
	}

	XTrain, XTest, yTrain, yTest := ml.TrainTestSplit(X, y, t.cfg.TestFraction, t.cfg.Seed)
	if len(XTrain) == 0 {
		return nil, fmt.Errorf("training failed: test fraction %.2f leaves no training rows", t.cfg.TestFraction)
	}
	if len(XTest) == 0 {
		return nil, fmt.Errorf("training failed: %d rows at test fraction %.2f leave no held-out rows to evaluate on", len(rows), t.cfg.TestFraction)
	}

	forest := ml.NewForest(
		ml.WithTrees(t.cfg.Trees),
		ml.WithMaxDepth(t.cfg.MaxDepth),
		ml.WithSeed(t.cfg.Seed),
	)
	if err := forest.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}

	yPred := make([]int, len(XTest))
	for i, x := range XTest {
		yPred[i] = forest.Predict(x)
	}
	report := ml.ClassificationReport(yTest, yPred, map[int]string{
		0: string(models.LabelNoChurn),
		1: string(models.LabelChurn),
	})

	t.logger.Info("Model trained",
		zap.Int("train_rows", len(XTrain)),
		zap.Int("test_rows", len(XTest)),
		zap.Int("features", len(featureNames)),
		zap.Int("trees", t.cfg.Trees),
		zap.Float64("accuracy", report.Accuracy),
	)

	scored := make([]ScoredCustomer, 0, len(rows))
	for i, row := range rows {
		probability := forest.PredictProba(X[i])
		label := models.LabelNoChurn
		if probability >= 0.5 {
			label = models.LabelChurn
		}
		scored = append(scored, ScoredCustomer{
			CustomerID:  row.CustomerID,
			Label:       label,
			Probability: probability,
		})
	}

	return &TrainResult{
		Forest:       forest,
		Report:       report,
		Scored:       scored,
		FeatureNames: featureNames,
		LabelDerived: true,
	}, nil
}

// buildMatrix produces the numeric feature matrix. The base features are
// age, usage_frequency and amount; with one-hot encoding enabled, gender,
// plan_type and location indicators from the observed categories are
// appended.
func (t *Trainer) buildMatrix(rows []models.FeatureRow) ([][]float64, []string) {
	names := []string{"age", "usage_frequency", "amount"}

	var genderVocab, planVocab, locationVocab []string
	var genderIdx, planIdx, locationIdx map[string]int
	if t.cfg.OneHot {
		genderVocab, genderIdx = vocabulary(rows, func(r models.FeatureRow) string { return string(r.Gender) })
		planVocab, planIdx = vocabulary(rows, func(r models.FeatureRow) string { return string(r.PlanType) })
		locationVocab, locationIdx = vocabulary(rows, func(r models.FeatureRow) string { return r.Location })

		for _, v := range genderVocab {
			names = append(names, "gender="+v)
		}
		for _, v := range planVocab {
			names = append(names, "plan_type="+v)
		}
		for _, v := range locationVocab {
			names = append(names, "location="+v)
		}
	}

	X := make([][]float64, len(rows))
	for i, row := range rows {
		features := make([]float64, len(names))
		features[0] = float64(row.Age)
		features[1] = float64(row.UsageFrequency)
		features[2] = row.Amount
		if t.cfg.OneHot {
			offset := 3
			features[offset+genderIdx[string(row.Gender)]] = 1
			offset += len(genderVocab)
			features[offset+planIdx[string(row.PlanType)]] = 1
			offset += len(planVocab)
			features[offset+locationIdx[row.Location]] = 1
		}
		X[i] = features
	}
	return X, names
}

func vocabulary(rows []models.FeatureRow, value func(models.FeatureRow) string) ([]string, map[string]int) {
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[value(row)] = true
	}
	vocab := make([]string, 0, len(seen))
	for v := range seen {
		vocab = append(vocab, v)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, v := range vocab {
		index[v] = i
	}
	return vocab, index
}
