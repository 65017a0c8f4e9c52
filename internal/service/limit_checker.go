package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// NoAlerts is returned by the limit checker when no threshold tier triggered.
const NoAlerts = "No alerts"

var (
	tierWarn   = decimal.NewFromFloat(0.8)
	tierNotice = decimal.NewFromFloat(0.5)
)

// LimitChecker evaluates configured spend thresholds against the current
// aggregate snapshot. The pipeline calls it before the new transaction's
// amount is applied, so a transaction never alerts on itself.
type LimitChecker struct {
	store Store
}

func NewLimitChecker(store Store) *LimitChecker {
	return &LimitChecker{store: store}
}

// Check evaluates every period in fixed order and concatenates the triggered
// messages. Within a period, tiers are evaluated high to low and only the
// first true tier produces a message.
func (c *LimitChecker) Check(ctx context.Context, userID string) (string, error) {
	limits, err := c.store.GetLimits(ctx, userID)
	if err != nil {
		return "", err
	}
	if limits == nil {
		return NoAlerts, nil
	}

	summary, err := c.store.GetSummary(ctx, userID)
	if err != nil {
		return "", err
	}

	var messages []string
	for _, period := range Periods {
		if msg := checkPeriod(period, limits, summary); msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) == 0 {
		return NoAlerts, nil
	}
	return strings.Join(messages, "\n"), nil
}

// CheckAgainst is Check with an already-fetched snapshot. The intake pipeline
// uses it so the pre-update read happens exactly once.
func CheckAgainst(limits *LimitSet, summary *SummaryAggregate) string {
	if limits == nil || summary == nil {
		return NoAlerts
	}

	var messages []string
	for _, period := range Periods {
		if msg := checkPeriod(period, limits, summary); msg != "" {
			messages = append(messages, msg)
		}
	}

	if len(messages) == 0 {
		return NoAlerts
	}
	return strings.Join(messages, "\n")
}

func checkPeriod(period Period, limits *LimitSet, summary *SummaryAggregate) string {
	limit := periodLimit(period, limits)
	if limit.Sign() <= 0 {
		// Zero or absent means not configured, never alerts.
		return ""
	}

	spend := periodSpend(period, summary)
	switch {
	case spend.GreaterThanOrEqual(limit):
		return capitalize(string(period)) + " limit exceeded"
	case spend.GreaterThanOrEqual(limit.Mul(tierWarn)):
		return "80% of " + string(period) + " limit reached"
	case spend.GreaterThanOrEqual(limit.Mul(tierNotice)):
		return "50% of " + string(period) + " limit reached"
	}
	return ""
}

func periodLimit(period Period, limits *LimitSet) decimal.Decimal {
	switch period {
	case PeriodDaily:
		return limits.Daily
	case PeriodWeekly:
		return limits.Weekly
	case PeriodMonthly:
		return limits.Monthly
	case PeriodYearly:
		return limits.Yearly
	}
	return decimal.Zero
}

func periodSpend(period Period, summary *SummaryAggregate) decimal.Decimal {
	switch period {
	case PeriodDaily:
		return summary.DayOut
	case PeriodWeekly:
		return summary.WeekOut
	case PeriodMonthly:
		return summary.MonthOut
	case PeriodYearly:
		return summary.YearOut
	}
	return decimal.Zero
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
