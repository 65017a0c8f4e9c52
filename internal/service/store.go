package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a history query. Nil fields are not applied.
type TransactionFilter struct {
	PaymentType  *PaymentType
	Since        *time.Time
	Until        *time.Time
	Counterparty *string
}

// Store is the abstract persistence collaborator the pipeline runs against.
// IncrementSummary must be an atomic server-side add per user/period counter;
// concurrent transactions for the same user must not lose updates.
type Store interface {
	// GetLimits returns the configured limits, or nil when the user has none.
	GetLimits(ctx context.Context, userID string) (*LimitSet, error)
	// GetSummary returns the rolling aggregates, all-zero when the user is new.
	GetSummary(ctx context.Context, userID string) (*SummaryAggregate, error)
	IncrementSummary(ctx context.Context, userID string, amount decimal.Decimal, direction Direction) error
	AppendTransaction(ctx context.Context, tx *Transaction) error
	QueryTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error)
}

// LimitAdmin is the management surface for user-configured thresholds.
// Mutations happen only by explicit user action, never from the pipeline.
type LimitAdmin interface {
	UpsertLimit(ctx context.Context, userID string, period Period, limit decimal.Decimal) error
}

// PendingStore persists manually tracked payables and receivables.
type PendingStore interface {
	InsertPending(ctx context.Context, item *PendingItem) error
	ListPending(ctx context.Context, userID string) ([]PendingItem, error)
	DeletePending(ctx context.Context, userID string, pendingID uuid.UUID) error
}
