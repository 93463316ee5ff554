package store

import (
	"context"
	"sort"
	"sync"

	"fjacquet/spend-rollup/internal/models"
)

// MockSource is an in-memory TransactionSource for tests.
type MockSource struct {
	mu    sync.Mutex
	Data  map[string][]models.Transaction
	Err   error
	Calls int
}

// NewMockSource returns a MockSource holding data.
func NewMockSource(data map[string][]models.Transaction) *MockSource {
	if data == nil {
		data = map[string][]models.Transaction{}
	}
	return &MockSource{Data: data}
}

// Transactions implements TransactionSource.
func (m *MockSource) Transactions(_ context.Context, userID string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	txs, ok := m.Data[userID]
	if !ok {
		return nil, &UserNotFoundError{UserID: userID}
	}
	return cloneTransactions(txs), nil
}

// Users implements TransactionSource.
func (m *MockSource) Users(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	users := make([]string, 0, len(m.Data))
	for id := range m.Data {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}

// ImportTransactions implements Importer.
func (m *MockSource) ImportTransactions(_ context.Context, userID string, txs []models.Transaction) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.Data[userID] = mergeByID(m.Data[userID], txs)
	return len(txs), nil
}
