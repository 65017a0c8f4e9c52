package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwatch/internal/parser"
)

// historyWindowDays bounds the anomaly history scan to keep per-request
// latency predictable.
const historyWindowDays = 90

// IntakeService is the transaction intake pipeline: validate, parse, check
// limits against the pre-update snapshot, check anomaly, persist, update
// aggregates.
type IntakeService struct {
	store    Store
	parser   *parser.Parser
	detector *AnomalyDetector
	now      func() time.Time
}

func NewIntakeService(store Store, p *parser.Parser, detector *AnomalyDetector) *IntakeService {
	return &IntakeService{
		store:    store,
		parser:   p,
		detector: detector,
		now:      time.Now,
	}
}

// Process runs one notification through the full pipeline. Validation and
// parse errors abort before any mutation; persistence errors are folded into
// PersistenceStatus so the already-computed alert and anomaly output is not
// discarded.
func (s *IntakeService) Process(ctx context.Context, in parser.Input) (*ProcessResult, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, &InvalidInputError{Field: "user_id", Reason: "must not be blank"}
	}

	parsed, err := s.parser.Parse(ctx, in)
	if err != nil {
		return nil, classifyParseError(err)
	}

	// Limits are evaluated against the snapshot before this transaction is
	// applied. The new amount is deliberately not reflected yet.
	limits, err := s.store.GetLimits(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	summary, err := s.store.GetSummary(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	alertMessage := CheckAgainst(limits, summary)

	tx := s.buildTransaction(in.UserID, parsed)

	since := s.now().AddDate(0, 0, -historyWindowDays)
	history, err := s.store.QueryTransactions(ctx, in.UserID, TransactionFilter{Since: &since})
	if err != nil {
		return nil, err
	}

	flagged, reasons := s.detector.Evaluate(history, tx)
	tx.Anomaly = flagged

	persistenceStatus := PersistenceOK
	if err := s.store.AppendTransaction(ctx, tx); err != nil {
		// Record not stored, so the aggregates are left untouched to keep
		// the counters consistent with the transaction log.
		persistenceStatus = "append failed: " + err.Error()
	} else if err := s.store.IncrementSummary(ctx, in.UserID, tx.Amount, directionOf(tx.PaymentType)); err != nil {
		persistenceStatus = "summary update failed: " + err.Error()
	}

	return &ProcessResult{
		Transaction:       tx,
		AlertMessage:      alertMessage,
		AnomalyMessage:    AnomalyMessage(reasons),
		PersistenceStatus: persistenceStatus,
	}, nil
}

func (s *IntakeService) buildTransaction(userID string, parsed *parser.Parsed) *Transaction {
	return &Transaction{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: userID,
		Timestamp: Timestamp{
			Year:  parsed.Timestamp.Year,
			Month: parsed.Timestamp.Month,
			Day:   parsed.Timestamp.Day,
			Hour:  parsed.Timestamp.Hour,
		},
		Counterparty:  parsed.Counterparty,
		PaymentMethod: PaymentMethod(parsed.Method),
		PaymentType:   PaymentType(parsed.Type),
		Amount:        parsed.Amount,
		Category:      parsed.Category,
		Message:       parsed.Message,
		CreatedAt:     s.now(),
	}
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, parser.ErrBlankUserID):
		return &InvalidInputError{Field: "user_id", Reason: "must not be blank"}
	case errors.Is(err, parser.ErrBadTimestamp):
		return &InvalidInputError{Field: "timestamp", Reason: "not an ISO timestamp"}
	default:
		return &ParseError{Message: "message not recognized", Err: err}
	}
}

func directionOf(paymentType PaymentType) Direction {
	if paymentType == TypeIncome {
		return DirectionIn
	}
	return DirectionOut
}
