package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPredictionService(store Store, now time.Time) *PredictionService {
	svc := NewPredictionService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func dailyExpense(amount string, day time.Time) Transaction {
	return Transaction{
		Timestamp:   Timestamp{Year: day.Year(), Month: int(day.Month()), Day: day.Day(), Hour: 10},
		PaymentType: TypeExpense,
		Amount:      dec(amount),
	}
}

func dailyIncome(amount string, day time.Time) Transaction {
	tx := dailyExpense(amount, day)
	tx.PaymentType = TypeIncome
	return tx
}

// twoPhaseHistory is ten days of 50/day followed by ten days of 100/day,
// split across the 30-day trend boundary.
func twoPhaseHistory(now time.Time) []Transaction {
	var transactions []Transaction
	for i := 0; i < 10; i++ {
		transactions = append(transactions,
			dailyExpense("50", now.AddDate(0, 0, -50+i)))
	}
	for i := 0; i < 10; i++ {
		transactions = append(transactions,
			dailyExpense("100", now.AddDate(0, 0, -20+i)))
	}
	return transactions
}

func TestPredictSpending_ScalesAndTrends(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).
		Return(twoPhaseHistory(now), nil)

	svc := newPredictionService(store, now)

	daily, err := svc.PredictSpending(context.Background(), "user-1", PeriodDaily)
	assert.NoError(t, err)
	// 20 expense days totalling 1500 -> 75/day average.
	assert.True(t, daily.PredictedExpense.Equal(dec("75")), daily.PredictedExpense.String())
	// Recent 30 days average 100/day vs 50/day before: up 100%.
	assert.True(t, daily.TrendPercent.Equal(dec("100")), daily.TrendPercent.String())

	weekly, err := svc.PredictSpending(context.Background(), "user-1", PeriodWeekly)
	assert.NoError(t, err)
	assert.True(t, weekly.PredictedExpense.Equal(dec("525")))

	monthly, err := svc.PredictSpending(context.Background(), "user-1", PeriodMonthly)
	assert.NoError(t, err)
	assert.True(t, monthly.PredictedExpense.Equal(dec("2250")))
}

func TestPredictSpending_InsufficientData(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).
		Return([]Transaction{dailyExpense("50", now.AddDate(0, 0, -1))}, nil)

	svc := newPredictionService(store, now)
	_, err := svc.PredictSpending(context.Background(), "user-1", PeriodDaily)

	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredictSpending_UnknownTimeframe(t *testing.T) {
	svc := newPredictionService(&mockStore{}, time.Now())

	_, err := svc.PredictSpending(context.Background(), "user-1", PeriodYearly)

	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestPredictSpending_StoreError(t *testing.T) {
	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).
		Return(nil, errors.New("connection refused"))

	svc := newPredictionService(store, time.Now())
	_, err := svc.PredictSpending(context.Background(), "user-1", PeriodDaily)

	assert.Error(t, err)
}

func TestPredictCashflow_NetOfIncomeAndExpense(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	var transactions []Transaction
	for i := 0; i < 10; i++ {
		day := now.AddDate(0, 0, -20+i)
		transactions = append(transactions,
			dailyExpense("100", day),
			dailyIncome("200", day))
	}

	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).
		Return(transactions, nil)

	svc := newPredictionService(store, now)
	result, err := svc.PredictCashflow(context.Background(), "user-1", PeriodWeekly)

	assert.NoError(t, err)
	// 200 in minus 100 out per day, over seven days.
	assert.True(t, result.PredictedCashflow.Equal(dec("700")), result.PredictedCashflow.String())
}

func TestDailySpendingTrend_ZeroFilledWeek(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).
		Return([]Transaction{
			dailyExpense("30", now),
			dailyExpense("20", now),
			dailyExpense("50", now.AddDate(0, 0, -1)),
		}, nil)

	svc := newPredictionService(store, now)
	points, err := svc.DailySpendingTrend(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, points, 7)
	assert.Equal(t, "2025-06-24", points[0].Bucket)
	assert.Equal(t, "2025-06-30", points[6].Bucket)
	assert.True(t, points[0].Amount.Equal(decimal.Zero))
	assert.True(t, points[5].Amount.Equal(dec("50")))
	assert.True(t, points[6].Amount.Equal(dec("50")))
}

func TestMonthlySpendingTrend_TwelveBuckets(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1", mock.Anything).
		Return([]Transaction{
			dailyExpense("100", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)),
			dailyExpense("200", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
		}, nil)

	svc := newPredictionService(store, now)
	points, err := svc.MonthlySpendingTrend(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, points, 12)
	assert.Equal(t, "2024-07", points[0].Bucket)
	assert.Equal(t, "2025-06", points[11].Bucket)
	assert.True(t, points[11].Amount.Equal(dec("100")))
	assert.True(t, points[8].Amount.Equal(dec("200")))
}
