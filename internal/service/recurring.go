package service

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// minRecurringTransactions is the floor below which a counterparty group
	// is not considered for recurring classification.
	minRecurringTransactions = 3
	// amountTolerance is the allowed deviation around the median amount.
	amountTolerance = 0.10
	// amountConsistencyShare is the fraction of a group that must fall inside
	// the tolerance band. Below it the whole group is rejected.
	amountConsistencyShare = 0.8
)

// recurringInterval is one entry in the frequency table. Evaluated in order;
// the first interval whose tolerance band contains the median gap wins.
type recurringInterval struct {
	name      string
	days      float64
	tolerance float64
}

var recurringIntervals = []recurringInterval{
	{name: "weekly", days: 7, tolerance: 1},
	{name: "monthly", days: 30.5, tolerance: 3},
	{name: "quarterly", days: 91.5, tolerance: 7},
	{name: "yearly", days: 365, tolerance: 15},
}

// RecurringDetector classifies repeating payment patterns (subscriptions,
// rent, salaries paid out) from a user's expense history.
type RecurringDetector struct {
	store Store
}

func NewRecurringDetector(store Store) *RecurringDetector {
	return &RecurringDetector{store: store}
}

// Detect fetches the user's expense transactions and classifies them.
func (d *RecurringDetector) Detect(ctx context.Context, userID string) ([]RecurringCandidate, error) {
	expense := TypeExpense
	transactions, err := d.store.QueryTransactions(ctx, userID, TransactionFilter{
		PaymentType: &expense,
	})
	if err != nil {
		return nil, err
	}

	return ClassifyRecurring(transactions), nil
}

// ClassifyRecurring groups expense transactions by exact counterparty string
// and returns one candidate per group that passes both the amount-consistency
// and interval-regularity tests. Output order follows counterparty sort order
// so repeated runs over the same history yield identical results.
func ClassifyRecurring(transactions []Transaction) []RecurringCandidate {
	groups := make(map[string][]Transaction)
	for _, tx := range transactions {
		if tx.PaymentType != TypeExpense {
			continue
		}
		groups[tx.Counterparty] = append(groups[tx.Counterparty], tx)
	}

	counterparties := make([]string, 0, len(groups))
	for counterparty := range groups {
		counterparties = append(counterparties, counterparty)
	}
	sort.Strings(counterparties)

	var candidates []RecurringCandidate
	for _, counterparty := range counterparties {
		group := groups[counterparty]
		if candidate, ok := classifyGroup(counterparty, group); ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

func classifyGroup(counterparty string, group []Transaction) (RecurringCandidate, bool) {
	if len(group) < minRecurringTransactions {
		return RecurringCandidate{}, false
	}

	amounts := make([]decimal.Decimal, len(group))
	for i, tx := range group {
		amounts[i] = tx.Amount
	}
	median := medianDecimal(amounts)

	lower := median.Mul(decimal.NewFromFloat(1 - amountTolerance))
	upper := median.Mul(decimal.NewFromFloat(1 + amountTolerance))

	consistent := 0
	for _, amount := range amounts {
		if amount.GreaterThanOrEqual(lower) && amount.LessThanOrEqual(upper) {
			consistent++
		}
	}
	if float64(consistent)/float64(len(amounts)) < amountConsistencyShare {
		return RecurringCandidate{}, false
	}

	sorted := make([]Transaction, len(group))
	copy(sorted, group)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Date().Before(sorted[j].Timestamp.Date())
	})

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1].Timestamp.Date().Sub(sorted[i].Timestamp.Date()).Hours() / 24
		gaps = append(gaps, gap)
	}
	if len(gaps) == 0 {
		return RecurringCandidate{}, false
	}

	medianGap := medianFloat(gaps)
	for _, interval := range recurringIntervals {
		if math.Abs(medianGap-interval.days) <= interval.tolerance {
			return RecurringCandidate{
				Counterparty:     counterparty,
				MedianAmount:     median.Round(2),
				Frequency:        interval.name,
				TransactionCount: len(group),
			}, true
		}
	}

	return RecurringCandidate{}, false
}

func medianDecimal(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

func medianFloat(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
