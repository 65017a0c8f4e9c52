package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwatch/internal/parser"
)

// StorageBackend is the full surface the service layer needs from the store:
// the pipeline contract plus the limit and pending management operations.
type StorageBackend interface {
	Store
	LimitAdmin
	PendingStore
}

// Service holds all business logic services.
type Service struct {
	Intake     *IntakeService
	Limits     *LimitService
	Recurring  *RecurringDetector
	Prediction *PredictionService
	Pending    *PendingService
	History    *HistoryService
}

// NewService wires the pipeline components against the given store and
// semantic extractor. Lifecycle of both collaborators belongs to the caller.
func NewService(store StorageBackend, extractor parser.Extractor) *Service {
	p := parser.New(extractor)
	return &Service{
		Intake:     NewIntakeService(store, p, NewAnomalyDetector()),
		Limits:     NewLimitService(store),
		Recurring:  NewRecurringDetector(store),
		Prediction: NewPredictionService(store),
		Pending:    NewPendingService(store),
		History:    NewHistoryService(store),
	}
}

// HistoryService is the read surface over the transaction log.
type HistoryService struct {
	store Store
}

func NewHistoryService(store Store) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the user's transactions matching the filter, oldest first.
func (s *HistoryService) List(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &InvalidInputError{Field: "user_id", Reason: "must not be blank"}
	}
	return s.store.QueryTransactions(ctx, userID, filter)
}

// LimitService manages user-configured spend thresholds.
type LimitService struct {
	store interface {
		Store
		LimitAdmin
	}
}

func NewLimitService(store StorageBackend) *LimitService {
	return &LimitService{store: store}
}

// SetLimit configures the threshold for one period. A zero limit clears it.
func (s *LimitService) SetLimit(ctx context.Context, userID string, period Period, limit decimal.Decimal) error {
	if strings.TrimSpace(userID) == "" {
		return &InvalidInputError{Field: "user_id", Reason: "must not be blank"}
	}
	if limit.Sign() < 0 {
		return &InvalidInputError{Field: "limit", Reason: "must not be negative"}
	}
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
	default:
		return &InvalidInputError{Field: "period", Reason: "unknown period"}
	}
	return s.store.UpsertLimit(ctx, userID, period, limit)
}

// GetLimits returns the configured thresholds, zero-valued when none are set.
func (s *LimitService) GetLimits(ctx context.Context, userID string) (*LimitSet, error) {
	limits, err := s.store.GetLimits(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limits == nil {
		return &LimitSet{UserID: userID}, nil
	}
	return limits, nil
}

// CheckAlerts evaluates the current thresholds on demand.
func (s *LimitService) CheckAlerts(ctx context.Context, userID string) (string, error) {
	return NewLimitChecker(s.store).Check(ctx, userID)
}

// GetSummary returns the rolling aggregates the thresholds are checked against.
func (s *LimitService) GetSummary(ctx context.Context, userID string) (*SummaryAggregate, error) {
	return s.store.GetSummary(ctx, userID)
}

// PendingService tracks manually entered payables and receivables.
type PendingService struct {
	store PendingStore
	now   func() time.Time
}

func NewPendingService(store PendingStore) *PendingService {
	return &PendingService{store: store, now: time.Now}
}

func (s *PendingService) Add(ctx context.Context, item PendingItem) (*PendingItem, error) {
	if strings.TrimSpace(item.UserID) == "" {
		return nil, &InvalidInputError{Field: "user_id", Reason: "must not be blank"}
	}
	if item.Amount.Sign() <= 0 {
		return nil, &InvalidInputError{Field: "amount", Reason: "must be positive"}
	}
	item.ID = uuid.Must(uuid.NewV4())
	item.CreatedAt = s.now()
	if err := s.store.InsertPending(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *PendingService) List(ctx context.Context, userID string) ([]PendingItem, error) {
	return s.store.ListPending(ctx, userID)
}

func (s *PendingService) Delete(ctx context.Context, userID string, pendingID uuid.UUID) error {
	return s.store.DeletePending(ctx, userID, pendingID)
}
