package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// mockStore is a hand-written testify mock for the StorageBackend surface.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetLimits(ctx context.Context, userID string) (*LimitSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LimitSet), args.Error(1)
}

func (m *mockStore) GetSummary(ctx context.Context, userID string) (*SummaryAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SummaryAggregate), args.Error(1)
}

func (m *mockStore) IncrementSummary(ctx context.Context, userID string, amount decimal.Decimal, direction Direction) error {
	args := m.Called(ctx, userID, amount, direction)
	return args.Error(0)
}

func (m *mockStore) AppendTransaction(ctx context.Context, tx *Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockStore) QueryTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Transaction), args.Error(1)
}

func (m *mockStore) UpsertLimit(ctx context.Context, userID string, period Period, limit decimal.Decimal) error {
	args := m.Called(ctx, userID, period, limit)
	return args.Error(0)
}

func (m *mockStore) InsertPending(ctx context.Context, item *PendingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockStore) ListPending(ctx context.Context, userID string) ([]PendingItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PendingItem), args.Error(1)
}

func (m *mockStore) DeletePending(ctx context.Context, userID string, pendingID uuid.UUID) error {
	args := m.Called(ctx, userID, pendingID)
	return args.Error(0)
}
