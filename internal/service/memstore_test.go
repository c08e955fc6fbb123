package service

import (
	"context"
	"errors"
	"sort"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"
)

// memStore is an isolated in-memory stand-in for the storage gateway,
// mirroring the repository semantics: primary-key conflicts and dangling
// customer references are skipped, replace-all clears the entity tables
// but never the prediction log.
type memStore struct {
	customers    map[int64]models.Customer
	usage        map[int64]models.Usage
	transactions map[int64]models.Transaction
	feedback     map[int64]models.Feedback
	predictions  []models.Prediction
	nextPredID   int64
}

func newMemStore() *memStore {
	return &memStore{
		customers:    make(map[int64]models.Customer),
		usage:        make(map[int64]models.Usage),
		transactions: make(map[int64]models.Transaction),
		feedback:     make(map[int64]models.Feedback),
	}
}

var errTableBroken = errors.New("table broken")

type memCustomerStore struct {
	s    *memStore
	fail bool
}

func (m *memCustomerStore) InsertSkipDuplicates(_ context.Context, rows []models.Customer) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	var inserted int64
	for _, c := range rows {
		if _, ok := m.s.customers[c.CustomerID]; ok {
			continue
		}
		m.s.customers[c.CustomerID] = c
		inserted++
	}
	return inserted, nil
}

func (m *memCustomerStore) ReplaceAll(_ context.Context, rows []models.Customer) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	m.s.customers = make(map[int64]models.Customer)
	m.s.usage = make(map[int64]models.Usage)
	m.s.transactions = make(map[int64]models.Transaction)
	m.s.feedback = make(map[int64]models.Feedback)
	for _, c := range rows {
		m.s.customers[c.CustomerID] = c
	}
	return int64(len(rows)), nil
}

func (m *memCustomerStore) GetAll(_ context.Context) ([]models.Customer, error) {
	if m.fail {
		return nil, errTableBroken
	}
	rows := make([]models.Customer, 0, len(m.s.customers))
	for _, c := range m.s.customers {
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })
	return rows, nil
}

type memUsageStore struct {
	s    *memStore
	fail bool
}

func (m *memUsageStore) InsertSkipDuplicates(_ context.Context, rows []models.Usage) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	var inserted int64
	for _, u := range rows {
		if _, ok := m.s.usage[u.UsageID]; ok {
			continue
		}
		if _, ok := m.s.customers[u.CustomerID]; !ok {
			continue
		}
		m.s.usage[u.UsageID] = u
		inserted++
	}
	return inserted, nil
}

func (m *memUsageStore) ReplaceAll(_ context.Context, rows []models.Usage) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	m.s.usage = make(map[int64]models.Usage)
	for _, u := range rows {
		m.s.usage[u.UsageID] = u
	}
	return int64(len(rows)), nil
}

func (m *memUsageStore) GetAll(_ context.Context) ([]models.Usage, error) {
	if m.fail {
		return nil, errTableBroken
	}
	rows := make([]models.Usage, 0, len(m.s.usage))
	for _, u := range m.s.usage {
		rows = append(rows, u)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UsageID < rows[j].UsageID })
	return rows, nil
}

type memTransactionStore struct {
	s    *memStore
	fail bool
}

func (m *memTransactionStore) InsertSkipDuplicates(_ context.Context, rows []models.Transaction) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	var inserted int64
	for _, t := range rows {
		if _, ok := m.s.transactions[t.TransactionID]; ok {
			continue
		}
		if _, ok := m.s.customers[t.CustomerID]; !ok {
			continue
		}
		m.s.transactions[t.TransactionID] = t
		inserted++
	}
	return inserted, nil
}

func (m *memTransactionStore) ReplaceAll(_ context.Context, rows []models.Transaction) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	m.s.transactions = make(map[int64]models.Transaction)
	for _, t := range rows {
		m.s.transactions[t.TransactionID] = t
	}
	return int64(len(rows)), nil
}

func (m *memTransactionStore) GetAll(_ context.Context) ([]models.Transaction, error) {
	if m.fail {
		return nil, errTableBroken
	}
	rows := make([]models.Transaction, 0, len(m.s.transactions))
	for _, t := range m.s.transactions {
		rows = append(rows, t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TransactionID < rows[j].TransactionID })
	return rows, nil
}

type memFeedbackStore struct {
	s    *memStore
	fail bool
}

func (m *memFeedbackStore) InsertSkipDuplicates(_ context.Context, rows []models.Feedback) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	var inserted int64
	for _, f := range rows {
		if _, ok := m.s.feedback[f.FeedbackID]; ok {
			continue
		}
		if _, ok := m.s.customers[f.CustomerID]; !ok {
			continue
		}
		m.s.feedback[f.FeedbackID] = f
		inserted++
	}
	return inserted, nil
}

func (m *memFeedbackStore) ReplaceAll(_ context.Context, rows []models.Feedback) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	m.s.feedback = make(map[int64]models.Feedback)
	for _, f := range rows {
		m.s.feedback[f.FeedbackID] = f
	}
	return int64(len(rows)), nil
}

func (m *memFeedbackStore) GetAll(_ context.Context) ([]models.Feedback, error) {
	if m.fail {
		return nil, errTableBroken
	}
	rows := make([]models.Feedback, 0, len(m.s.feedback))
	for _, f := range m.s.feedback {
		rows = append(rows, f)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FeedbackID < rows[j].FeedbackID })
	return rows, nil
}

type memPredictionStore struct {
	s    *memStore
	fail bool
}

func (m *memPredictionStore) AppendRun(_ context.Context, rows []models.Prediction) (int64, error) {
	if m.fail {
		return 0, errTableBroken
	}
	var inserted int64
	for _, p := range rows {
		c, ok := m.s.customers[p.CustomerID]
		if !ok {
			continue
		}
		m.s.nextPredID++
		p.ID = m.s.nextPredID
		m.s.predictions = append(m.s.predictions, p)
		churned := p.Prediction == models.LabelChurn
		c.ChurnPrediction = &churned
		m.s.customers[p.CustomerID] = c
		inserted++
	}
	return inserted, nil
}
