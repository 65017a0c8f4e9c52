package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func expenseOn(counterparty, amount string, year, month, day int) Transaction {
	return Transaction{
		Timestamp:    Timestamp{Year: year, Month: month, Day: day, Hour: 10},
		Counterparty: counterparty,
		PaymentType:  TypeExpense,
		Amount:       dec(amount),
	}
}

func TestClassifyRecurring_MonthlyPattern(t *testing.T) {
	transactions := []Transaction{
		expenseOn("Netflix", "100", 2025, 1, 5),
		expenseOn("Netflix", "101", 2025, 2, 5),
		expenseOn("Netflix", "99", 2025, 3, 7),
	}

	candidates := ClassifyRecurring(transactions)

	assert.Len(t, candidates, 1)
	assert.Equal(t, "Netflix", candidates[0].Counterparty)
	assert.Equal(t, "monthly", candidates[0].Frequency)
	assert.Equal(t, 3, candidates[0].TransactionCount)
	assert.True(t, candidates[0].MedianAmount.Equal(dec("100")))
}

func TestClassifyRecurring_WeeklyPattern(t *testing.T) {
	transactions := []Transaction{
		expenseOn("Gym", "50", 2025, 3, 1),
		expenseOn("Gym", "50", 2025, 3, 8),
		expenseOn("Gym", "52", 2025, 3, 15),
		expenseOn("Gym", "50", 2025, 3, 22),
	}

	candidates := ClassifyRecurring(transactions)

	assert.Len(t, candidates, 1)
	assert.Equal(t, "weekly", candidates[0].Frequency)
}

func TestClassifyRecurring_InconsistentAmountsRejected(t *testing.T) {
	transactions := []Transaction{
		expenseOn("Shop", "100", 2025, 1, 5),
		expenseOn("Shop", "500", 2025, 2, 5),
		expenseOn("Shop", "100", 2025, 3, 5),
	}

	// 500 is far outside the ±10% band around the median; only 2 of 3 rows
	// qualify which is under the consistency share.
	assert.Empty(t, ClassifyRecurring(transactions))
}

func TestClassifyRecurring_TooFewTransactions(t *testing.T) {
	transactions := []Transaction{
		expenseOn("Netflix", "100", 2025, 1, 5),
		expenseOn("Netflix", "100", 2025, 2, 5),
	}

	assert.Empty(t, ClassifyRecurring(transactions))
}

func TestClassifyRecurring_IrregularGapsRejected(t *testing.T) {
	transactions := []Transaction{
		expenseOn("Cafe", "100", 2025, 1, 5),
		expenseOn("Cafe", "100", 2025, 1, 19),
		expenseOn("Cafe", "100", 2025, 2, 2),
	}

	// Median gap of 14 days lands between the weekly and monthly bands.
	assert.Empty(t, ClassifyRecurring(transactions))
}

func TestClassifyRecurring_IncomeIgnored(t *testing.T) {
	salary := expenseOn("Employer", "50000", 2025, 1, 1)
	salary.PaymentType = TypeIncome
	salary2 := expenseOn("Employer", "50000", 2025, 2, 1)
	salary2.PaymentType = TypeIncome
	salary3 := expenseOn("Employer", "50000", 2025, 3, 1)
	salary3.PaymentType = TypeIncome

	assert.Empty(t, ClassifyRecurring([]Transaction{salary, salary2, salary3}))
}

func TestClassifyRecurring_DeterministicOrder(t *testing.T) {
	transactions := []Transaction{
		expenseOn("Spotify", "60", 2025, 1, 10),
		expenseOn("Netflix", "100", 2025, 1, 5),
		expenseOn("Spotify", "60", 2025, 2, 10),
		expenseOn("Netflix", "100", 2025, 2, 5),
		expenseOn("Spotify", "60", 2025, 3, 10),
		expenseOn("Netflix", "100", 2025, 3, 5),
	}

	first := ClassifyRecurring(transactions)
	second := ClassifyRecurring(transactions)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, "Netflix", first[0].Counterparty)
	assert.Equal(t, "Spotify", first[1].Counterparty)
}

func TestDetect_FiltersToExpenses(t *testing.T) {
	store := &mockStore{}
	store.On("QueryTransactions", mock.Anything, "user-1",
		mock.MatchedBy(func(f TransactionFilter) bool {
			return f.PaymentType != nil && *f.PaymentType == TypeExpense
		})).
		Return([]Transaction{
			expenseOn("Netflix", "100", 2025, 1, 5),
			expenseOn("Netflix", "101", 2025, 2, 5),
			expenseOn("Netflix", "99", 2025, 3, 5),
		}, nil)

	candidates, err := NewRecurringDetector(store).Detect(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "monthly", candidates[0].Frequency)
}
