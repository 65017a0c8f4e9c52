package service

import (
	"sort"
	"strings"
)

// NoAnomalies is reported when neither detector flags the candidate.
const NoAnomalies = "No anomalies detected"

// DefaultRecurringKeywords marks messages for known large recurring payments
// that are never eligible for amount-anomaly flagging.
var DefaultRecurringKeywords = []string{"rent", "housing", "monthly fee", "subscription"}

// AnomalyDetector flags statistically unusual transactions using two
// independent signals: amount-by-category (IQR based) and time-of-day.
type AnomalyDetector struct {
	// RecurringKeywords are matched case-insensitively as substrings of the
	// transaction message.
	RecurringKeywords []string
	// LateNightStart..LateNightEnd is the inclusive "unusual hours" window.
	LateNightStart int
	LateNightEnd   int
	// IQRMultiplier scales the interquartile range for the upper bound.
	IQRMultiplier float64
	// MinCategorySize is the floor below which a category is never flagged.
	// Sparse categories produce too many false positives to be worth scoring.
	MinCategorySize int
}

// NewAnomalyDetector returns a detector with the production thresholds.
func NewAnomalyDetector() *AnomalyDetector {
	return &AnomalyDetector{
		RecurringKeywords: DefaultRecurringKeywords,
		LateNightStart:    1,
		LateNightEnd:      5,
		IQRMultiplier:     2.0,
		MinCategorySize:   5,
	}
}

// Evaluate decides whether the candidate is anomalous given the user's recent
// history. It returns the flag plus one reason per detector that fired.
func (d *AnomalyDetector) Evaluate(history []Transaction, candidate *Transaction) (bool, []string) {
	var reasons []string

	if d.amountAnomalous(history, candidate) {
		reasons = append(reasons,
			"Amount is significantly higher than other '"+candidate.Category+"' expenses")
	}
	if d.timeAnomalous(candidate) {
		reasons = append(reasons, "Transaction occurred at an unusual time (late night)")
	}

	return len(reasons) > 0, reasons
}

// amountAnomalous checks the candidate against the IQR upper bound of its
// category. Transactions whose message carries a recurring-expense keyword are
// excluded from the pool and are themselves never flagged.
func (d *AnomalyDetector) amountAnomalous(history []Transaction, candidate *Transaction) bool {
	if d.matchesRecurringKeyword(candidate.Message) {
		return false
	}

	amounts := make([]float64, 0, len(history)+1)
	for i := range history {
		tx := &history[i]
		if tx.Category != candidate.Category {
			continue
		}
		if d.matchesRecurringKeyword(tx.Message) {
			continue
		}
		amounts = append(amounts, tx.Amount.InexactFloat64())
	}
	amounts = append(amounts, candidate.Amount.InexactFloat64())

	if len(amounts) < d.MinCategorySize {
		return false
	}

	q1 := percentile(amounts, 25)
	q3 := percentile(amounts, 75)
	upperBound := q3 + (q3-q1)*d.IQRMultiplier

	return candidate.Amount.InexactFloat64() > upperBound
}

func (d *AnomalyDetector) timeAnomalous(candidate *Transaction) bool {
	h := candidate.Timestamp.Hour
	return h >= d.LateNightStart && h <= d.LateNightEnd
}

func (d *AnomalyDetector) matchesRecurringKeyword(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range d.RecurringKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// percentile computes the p-th percentile of values using linear
// interpolation between closest ranks. values is copied before sorting.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// AnomalyMessage renders the detector output for the intake result.
func AnomalyMessage(reasons []string) string {
	if len(reasons) == 0 {
		return NoAnomalies
	}
	return strings.Join(reasons, "\n")
}
