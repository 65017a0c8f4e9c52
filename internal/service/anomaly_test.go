package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func expenseAt(amount string, hour int, category, message string) Transaction {
	return Transaction{
		Timestamp:   Timestamp{Year: 2025, Month: 6, Day: 1, Hour: hour},
		PaymentType: TypeExpense,
		Amount:      dec(amount),
		Category:    category,
		Message:     message,
	}
}

func historyOf(amounts ...string) []Transaction {
	history := make([]Transaction, 0, len(amounts))
	for _, amount := range amounts {
		history = append(history, expenseAt(amount, 12, "Food", "lunch"))
	}
	return history
}

// -- amount anomaly tests --

func TestEvaluate_SmallCategoryNeverFlagged(t *testing.T) {
	detector := NewAnomalyDetector()
	// Three prior transactions plus the candidate is still under the floor.
	history := historyOf("100", "110", "90")
	candidate := expenseAt("5000", 12, "Food", "lunch")

	flagged, reasons := detector.Evaluate(history, &candidate)

	assert.False(t, flagged)
	assert.Empty(t, reasons)
}

func TestEvaluate_AmountAboveIQRBound(t *testing.T) {
	detector := NewAnomalyDetector()
	history := historyOf("100", "110", "90", "105")
	candidate := expenseAt("5000", 12, "Food", "lunch")

	flagged, reasons := detector.Evaluate(history, &candidate)

	assert.True(t, flagged)
	assert.Equal(t, []string{"Amount is significantly higher than other 'Food' expenses"}, reasons)
}

func TestEvaluate_TypicalAmountNotFlagged(t *testing.T) {
	detector := NewAnomalyDetector()
	history := historyOf("100", "110", "90", "105")
	candidate := expenseAt("108", 12, "Food", "lunch")

	flagged, reasons := detector.Evaluate(history, &candidate)

	assert.False(t, flagged)
	assert.Empty(t, reasons)
}

func TestEvaluate_OtherCategoriesIgnored(t *testing.T) {
	detector := NewAnomalyDetector()
	history := historyOf("100", "110", "90", "105")
	for i := 0; i < 10; i++ {
		history = append(history, expenseAt("5", 12, "Snacks", "chips"))
	}
	candidate := expenseAt("5000", 12, "Food", "lunch")

	flagged, _ := detector.Evaluate(history, &candidate)

	assert.True(t, flagged)
}

func TestEvaluate_RecurringKeywordCandidateExcluded(t *testing.T) {
	detector := NewAnomalyDetector()
	history := historyOf("100", "110", "90", "105")
	candidate := expenseAt("25000", 12, "Food", "Monthly rent for June")

	flagged, reasons := detector.Evaluate(history, &candidate)

	assert.False(t, flagged)
	assert.Empty(t, reasons)
}

func TestEvaluate_RecurringKeywordHistoryExcludedFromPool(t *testing.T) {
	detector := NewAnomalyDetector()
	// The rent rows would widen the IQR enough to hide the spike.
	history := historyOf("100", "110", "90", "105")
	history = append(history,
		expenseAt("25000", 12, "Food", "rent transfer"),
		expenseAt("25000", 12, "Food", "rent transfer"),
	)
	candidate := expenseAt("5000", 12, "Food", "lunch")

	flagged, _ := detector.Evaluate(history, &candidate)

	assert.True(t, flagged)
}

// -- time anomaly tests --

func TestEvaluate_LateNightWindow(t *testing.T) {
	detector := NewAnomalyDetector()

	tests := []struct {
		hour    int
		flagged bool
	}{
		{hour: 0, flagged: false},
		{hour: 1, flagged: true},
		{hour: 3, flagged: true},
		{hour: 5, flagged: true},
		{hour: 6, flagged: false},
		{hour: 23, flagged: false},
	}

	for _, tc := range tests {
		candidate := expenseAt("100", tc.hour, "Food", "lunch")
		flagged, reasons := detector.Evaluate(nil, &candidate)

		assert.Equal(t, tc.flagged, flagged, "hour %d", tc.hour)
		if tc.flagged {
			assert.Equal(t, []string{"Transaction occurred at an unusual time (late night)"}, reasons)
		}
	}
}

func TestEvaluate_BothSignalsFire(t *testing.T) {
	detector := NewAnomalyDetector()
	history := historyOf("100", "110", "90", "105")
	candidate := expenseAt("5000", 3, "Food", "lunch")

	flagged, reasons := detector.Evaluate(history, &candidate)

	assert.True(t, flagged)
	assert.Len(t, reasons, 2)
}

// -- rendering --

func TestAnomalyMessage(t *testing.T) {
	assert.Equal(t, NoAnomalies, AnomalyMessage(nil))
	assert.Equal(t, "a\nb", AnomalyMessage([]string{"a", "b"}))
}

// -- percentile --

func TestPercentile_LinearInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	assert.InDelta(t, 17.5, percentile(values, 25), 0.0001)
	assert.InDelta(t, 32.5, percentile(values, 75), 0.0001)
	assert.InDelta(t, 40, percentile(values, 100), 0.0001)
}

func TestPercentile_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, percentile(nil, 50))
	assert.Equal(t, 7.0, percentile([]float64{7}, 75))
}
