package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	MethodCard    PaymentMethod = "card"
	MethodUPI     PaymentMethod = "upi"
	MethodBank    PaymentMethod = "bank"
	MethodUnknown PaymentMethod = "unknown"
)

// PaymentType identifies the direction of money relative to the user.
type PaymentType string

const (
	TypeIncome  PaymentType = "income"
	TypeExpense PaymentType = "expense"
)

// Direction selects which side of a summary counter an amount lands on.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Timestamp is the coarse transaction time kept on every record.
// Minutes and below are intentionally dropped at intake.
type Timestamp struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

// Date returns the calendar day of the timestamp in UTC.
func (t Timestamp) Date() time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, 0, 0, 0, time.UTC)
}

// Transaction is one parsed payment notification. Records are immutable after
// creation; Anomaly is computed once at intake and never recomputed.
type Transaction struct {
	ID            uuid.UUID
	UserID        string
	Timestamp     Timestamp
	Counterparty  string
	PaymentMethod PaymentMethod
	PaymentType   PaymentType
	Amount        decimal.Decimal
	Category      string
	Message       string
	Anomaly       bool
	CreatedAt     time.Time
}

// LimitSet holds the configured spend thresholds for a user. A zero threshold
// means the period has no limit configured and never alerts.
type LimitSet struct {
	UserID  string
	Daily   decimal.Decimal
	Weekly  decimal.Decimal
	Monthly decimal.Decimal
	Yearly  decimal.Decimal
}

// SummaryAggregate holds the rolling per-period sums for a user. Counters are
// monotonically accumulated, one increment per transaction.
type SummaryAggregate struct {
	UserID   string
	DayIn    decimal.Decimal
	DayOut   decimal.Decimal
	WeekIn   decimal.Decimal
	WeekOut  decimal.Decimal
	MonthIn  decimal.Decimal
	MonthOut decimal.Decimal
	YearIn   decimal.Decimal
	YearOut  decimal.Decimal
}

// Cashflow returns in minus out for the given period.
func (s *SummaryAggregate) Cashflow(period Period) decimal.Decimal {
	switch period {
	case PeriodDaily:
		return s.DayIn.Sub(s.DayOut)
	case PeriodWeekly:
		return s.WeekIn.Sub(s.WeekOut)
	case PeriodMonthly:
		return s.MonthIn.Sub(s.MonthOut)
	case PeriodYearly:
		return s.YearIn.Sub(s.YearOut)
	}
	return decimal.Zero
}

// Period names one of the four rolling aggregation windows.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Periods is the fixed evaluation order used by the limit checker.
var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

// RecurringCandidate is a detected repeating payment pattern. Computed on
// demand, never persisted.
type RecurringCandidate struct {
	Counterparty     string
	MedianAmount     decimal.Decimal
	Frequency        string
	TransactionCount int
}

// PendingItem is a payable or receivable the user is tracking manually.
type PendingItem struct {
	ID         uuid.UUID
	UserID     string
	Reason     string
	Amount     decimal.Decimal
	Payable    bool
	PersonName string
	CreatedAt  time.Time
}

// ProcessResult is the consolidated output of one intake pipeline run.
// PersistenceStatus reports store failures without erasing the alert and
// anomaly output computed before the write.
type ProcessResult struct {
	Transaction       *Transaction
	AlertMessage      string
	AnomalyMessage    string
	PersistenceStatus string
}

// PersistenceOK is the PersistenceStatus value for a fully stored transaction.
const PersistenceOK = "stored"
