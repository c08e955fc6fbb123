package service

import (
	"testing"

	"github.com/mineh7/Marketing-Analytics-Project/internal/ml"
	"github.com/mineh7/Marketing-Analytics-Project/internal/models"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testModelConfig() config.ModelConfig {
	return config.ModelConfig{
		Trees:          50,
		MaxDepth:       8,
		TestFraction:   0.3,
		Seed:           42,
		ChurnThreshold: 5,
	}
}

// featureRows builds a clearly separable set: every third customer barely
// uses the product and is the derived churn class.
func featureRows(n int) []models.FeatureRow {
	rows := make([]models.FeatureRow, 0, n)
	for i := 0; i < n; i++ {
		frequency := 50 + i%100
		if i%3 == 0 {
			frequency = i % 5
		}
		rows = append(rows, models.FeatureRow{
			CustomerID:     int64(i + 1),
			Age:            20 + i%50,
			Gender:         models.GenderFemale,
			Location:       "Berlin",
			UsageFrequency: frequency,
			Amount:         9.99 + float64(i%3)*10,
			PlanType:       models.PlanBasic,
		})
	}
	return rows
}

func TestTrainAndScoreBounds(t *testing.T) {
	trainer := NewTrainer(testModelConfig(), zap.NewNop())

	result, err := trainer.TrainAndScore(featureRows(120))
	require.NoError(t, err)
	require.Len(t, result.Scored, 120, "every customer is scored, train and test alike")

	for _, s := range result.Scored {
		assert.GreaterOrEqual(t, s.Probability, 0.0)
		assert.LessOrEqual(t, s.Probability, 1.0)
		if s.Probability >= 0.5 {
			assert.Equal(t, models.LabelChurn, s.Label)
		} else {
			assert.Equal(t, models.LabelNoChurn, s.Label)
		}
	}
}

func TestTrainLearnsSeparableLabel(t *testing.T) {
	trainer := NewTrainer(testModelConfig(), zap.NewNop())

	result, err := trainer.TrainAndScore(featureRows(120))
	require.NoError(t, err)

	// The label is a threshold on a feature the model sees, so the
	// forest should separate the classes almost perfectly.
	assert.Greater(t, result.Report.Accuracy, 0.9)
	assert.True(t, result.LabelDerived)

	churn := result.Report.Classes[string(models.LabelChurn)]
	assert.Greater(t, churn.Recall, 0.8)
}

func TestTrainDeterminism(t *testing.T) {
	first, err := NewTrainer(testModelConfig(), zap.NewNop()).TrainAndScore(featureRows(90))
	require.NoError(t, err)
	second, err := NewTrainer(testModelConfig(), zap.NewNop()).TrainAndScore(featureRows(90))
	require.NoError(t, err)

	assert.Equal(t, first.Report, second.Report, "same seed and input give identical metrics")
	assert.Equal(t, first.Scored, second.Scored)
}

func TestTrainEmptyFeatureSetIsFatal(t *testing.T) {
	trainer := NewTrainer(testModelConfig(), zap.NewNop())

	_, err := trainer.TrainAndScore(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ml.ErrEmptyTrainingSet)
}

func TestTrainTinyFeatureSetIsFatal(t *testing.T) {
	trainer := NewTrainer(testModelConfig(), zap.NewNop())

	// Two rows at a 0.3 test fraction round down to an empty held-out
	// partition; that must fail rather than report zeroed metrics.
	_, err := trainer.TrainAndScore(featureRows(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "held-out")
}

func TestTrainOneHotExpandsFeatures(t *testing.T) {
	cfg := testModelConfig()
	cfg.OneHot = true
	trainer := NewTrainer(cfg, zap.NewNop())

	rows := featureRows(60)
	rows[0].Gender = models.GenderMale
	rows[1].PlanType = models.PlanEnterprise
	rows[2].Location = "Oslo"

	result, err := trainer.TrainAndScore(rows)
	require.NoError(t, err)

	assert.Contains(t, result.FeatureNames, "gender=Male")
	assert.Contains(t, result.FeatureNames, "plan_type=Enterprise")
	assert.Contains(t, result.FeatureNames, "location=Oslo")
	assert.Greater(t, len(result.FeatureNames), 3)
}
