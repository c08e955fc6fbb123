package service

import (
	"context"
	"testing"
	"time"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scoredSet() []ScoredCustomer {
	return []ScoredCustomer{
		{CustomerID: 1, Label: models.LabelChurn, Probability: 0.9},
		{CustomerID: 2, Label: models.LabelNoChurn, Probability: 0.1},
	}
}

func seededPersistStore() *memStore {
	store := newMemStore()
	store.customers[1] = models.Customer{CustomerID: 1, Name: "Ada"}
	store.customers[2] = models.Customer{CustomerID: 2, Name: "Ben"}
	return store
}

func TestPersistIsAppendOnly(t *testing.T) {
	store := seededPersistStore()
	persister := NewPersister(&memPredictionStore{s: store}, zap.NewNop())

	_, inserted, err := persister.Persist(context.Background(), scoredSet())
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	time.Sleep(2 * time.Millisecond)

	_, inserted, err = persister.Persist(context.Background(), scoredSet())
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	// Two runs leave two distinct rows per customer, newer runs after
	// older ones; history is never overwritten.
	require.Len(t, store.predictions, 4)
	assert.True(t, store.predictions[2].CreatedAt.After(store.predictions[0].CreatedAt))
	assert.Less(t, store.predictions[0].ID, store.predictions[2].ID)
}

func TestPersistSkipsMissingCustomers(t *testing.T) {
	store := seededPersistStore()
	persister := NewPersister(&memPredictionStore{s: store}, zap.NewNop())

	scored := append(scoredSet(), ScoredCustomer{CustomerID: 9999, Label: models.LabelChurn, Probability: 0.7})
	rows, inserted, err := persister.Persist(context.Background(), scored)
	require.NoError(t, err, "a dangling row is skipped, not fatal")
	assert.Equal(t, int64(2), inserted)
	assert.Len(t, rows, 3, "all attempted rows are reported for the CSV artifact")
}

func TestPredictionsSurviveEntityReload(t *testing.T) {
	store := seededPersistStore()
	persister := NewPersister(&memPredictionStore{s: store}, zap.NewNop())

	_, _, err := persister.Persist(context.Background(), scoredSet())
	require.NoError(t, err)
	require.Len(t, store.predictions, 2)

	// A replace-policy reload wipes the entity tables but must leave the
	// prediction history intact.
	customers := &memCustomerStore{s: store}
	_, err = customers.ReplaceAll(context.Background(), []models.Customer{
		{CustomerID: 1, Name: "Ada"},
		{CustomerID: 2, Name: "Ben"},
		{CustomerID: 3, Name: "Cleo"},
	})
	require.NoError(t, err)

	require.Len(t, store.predictions, 2, "reloads must not truncate the prediction log")

	_, inserted, err := persister.Persist(context.Background(), scoredSet())
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
	assert.Len(t, store.predictions, 4)
}

func TestPersistUpdatesChurnFlag(t *testing.T) {
	store := seededPersistStore()
	persister := NewPersister(&memPredictionStore{s: store}, zap.NewNop())

	_, _, err := persister.Persist(context.Background(), scoredSet())
	require.NoError(t, err)

	require.NotNil(t, store.customers[1].ChurnPrediction)
	assert.True(t, *store.customers[1].ChurnPrediction)
	require.NotNil(t, store.customers[2].ChurnPrediction)
	assert.False(t, *store.customers[2].ChurnPrediction)
}

func TestPersistPropagatesStoreFailure(t *testing.T) {
	store := seededPersistStore()
	persister := NewPersister(&memPredictionStore{s: store, fail: true}, zap.NewNop())

	_, _, err := persister.Persist(context.Background(), scoredSet())
	assert.Error(t, err)
}
