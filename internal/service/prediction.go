package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInsufficientData is returned when the history window holds too few
// transactions for a reliable prediction.
var ErrInsufficientData = errors.New("not enough data for a reliable prediction")

const (
	predictionWindowDays = 90
	minPredictionSample  = 15
)

// SpendingPrediction is a projected expense for a timeframe plus the percent
// change of the last 30 days' average daily spend against the 30 days before.
type SpendingPrediction struct {
	PredictedExpense decimal.Decimal
	TrendPercent     decimal.Decimal
}

// CashflowPrediction projects net in-minus-out for a timeframe.
type CashflowPrediction struct {
	PredictedCashflow decimal.Decimal
}

// TrendPoint is one bucket of a spending trend series.
type TrendPoint struct {
	Bucket string
	Amount decimal.Decimal
}

// PredictionService projects future spending from the bounded history window.
type PredictionService struct {
	store Store
	now   func() time.Time
}

func NewPredictionService(store Store) *PredictionService {
	return &PredictionService{store: store, now: time.Now}
}

// PredictSpending projects expenses for the given timeframe.
func (s *PredictionService) PredictSpending(ctx context.Context, userID string, timeframe Period) (*SpendingPrediction, error) {
	scale, err := timeframeScale(timeframe)
	if err != nil {
		return nil, err
	}

	transactions, err := s.window(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(transactions) < minPredictionSample {
		return nil, ErrInsufficientData
	}

	dailyExpenses := bucketByDay(transactions, TypeExpense)
	if len(dailyExpenses) == 0 {
		return nil, ErrInsufficientData
	}

	avgDaily := averageOf(dailyExpenses)
	trend := s.trendPercent(dailyExpenses)

	return &SpendingPrediction{
		PredictedExpense: avgDaily.Mul(scale).Round(2),
		TrendPercent:     trend.Round(2),
	}, nil
}

// PredictCashflow projects net cashflow for the given timeframe.
func (s *PredictionService) PredictCashflow(ctx context.Context, userID string, timeframe Period) (*CashflowPrediction, error) {
	scale, err := timeframeScale(timeframe)
	if err != nil {
		return nil, err
	}

	transactions, err := s.window(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(transactions) < minPredictionSample {
		return nil, ErrInsufficientData
	}

	dailyExpenses := bucketByDay(transactions, TypeExpense)
	dailyIncome := bucketByDay(transactions, TypeIncome)

	avgExpense := decimal.Zero
	if len(dailyExpenses) > 0 {
		avgExpense = averageOf(dailyExpenses)
	}
	avgIncome := decimal.Zero
	if len(dailyIncome) > 0 {
		avgIncome = averageOf(dailyIncome)
	}

	return &CashflowPrediction{
		PredictedCashflow: avgIncome.Sub(avgExpense).Mul(scale).Round(2),
	}, nil
}

// DailySpendingTrend returns one point per day for the last seven days,
// zero-filled for days without expenses.
func (s *PredictionService) DailySpendingTrend(ctx context.Context, userID string) ([]TrendPoint, error) {
	since := s.now().AddDate(0, 0, -7)
	expense := TypeExpense
	transactions, err := s.store.QueryTransactions(ctx, userID, TransactionFilter{
		PaymentType: &expense,
		Since:       &since,
	})
	if err != nil {
		return nil, err
	}

	spending := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		key := tx.Timestamp.Date().Format("2006-01-02")
		spending[key] = spending[key].Add(tx.Amount)
	}

	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := s.now().AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, TrendPoint{Bucket: day, Amount: spending[day]})
	}
	return points, nil
}

// MonthlySpendingTrend returns one point per month for the last twelve months.
func (s *PredictionService) MonthlySpendingTrend(ctx context.Context, userID string) ([]TrendPoint, error) {
	since := s.now().AddDate(-1, 0, 0)
	expense := TypeExpense
	transactions, err := s.store.QueryTransactions(ctx, userID, TransactionFilter{
		PaymentType: &expense,
		Since:       &since,
	})
	if err != nil {
		return nil, err
	}

	spending := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		key := tx.Timestamp.Date().Format("2006-01")
		spending[key] = spending[key].Add(tx.Amount)
	}

	points := make([]TrendPoint, 0, 12)
	anchor := time.Date(s.now().Year(), s.now().Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 11; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0).Format("2006-01")
		points = append(points, TrendPoint{Bucket: month, Amount: spending[month]})
	}
	return points, nil
}

func (s *PredictionService) window(ctx context.Context, userID string) ([]Transaction, error) {
	since := s.now().AddDate(0, 0, -predictionWindowDays)
	return s.store.QueryTransactions(ctx, userID, TransactionFilter{Since: &since})
}

// trendPercent compares the average daily spend of the last 30 days against
// the 30 days before that.
func (s *PredictionService) trendPercent(dailyExpenses map[string]decimal.Decimal) decimal.Decimal {
	cutRecent := s.now().AddDate(0, 0, -30).Format("2006-01-02")
	cutOld := s.now().AddDate(0, 0, -60).Format("2006-01-02")

	var recent, previous []decimal.Decimal
	for day, amount := range dailyExpenses {
		switch {
		case day >= cutRecent:
			recent = append(recent, amount)
		case day >= cutOld:
			previous = append(previous, amount)
		}
	}

	if len(previous) == 0 {
		return decimal.Zero
	}

	avgRecent := decimal.Zero
	if len(recent) > 0 {
		avgRecent = averageSlice(recent)
	}
	avgPrevious := averageSlice(previous)
	if avgPrevious.Sign() <= 0 {
		return decimal.Zero
	}

	return avgRecent.Sub(avgPrevious).Div(avgPrevious).Mul(decimal.NewFromInt(100))
}

func timeframeScale(timeframe Period) (decimal.Decimal, error) {
	switch timeframe {
	case PeriodDaily:
		return decimal.NewFromInt(1), nil
	case PeriodWeekly:
		return decimal.NewFromInt(7), nil
	case PeriodMonthly:
		return decimal.NewFromInt(30), nil
	}
	return decimal.Zero, &InvalidInputError{Field: "timeframe", Reason: "use daily, weekly or monthly"}
}

func bucketByDay(transactions []Transaction, paymentType PaymentType) map[string]decimal.Decimal {
	buckets := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.PaymentType != paymentType {
			continue
		}
		key := tx.Timestamp.Date().Format("2006-01-02")
		buckets[key] = buckets[key].Add(tx.Amount)
	}
	return buckets
}

func averageOf(buckets map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range buckets {
		total = total.Add(amount)
	}
	return total.Div(decimal.NewFromInt(int64(len(buckets))))
}

func averageSlice(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total.Div(decimal.NewFromInt(int64(len(values))))
}
