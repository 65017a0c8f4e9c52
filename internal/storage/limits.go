package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwatch/internal/service"
)

// GetLimits returns nil when the user has no limits row.
func (s *Storage) GetLimits(ctx context.Context, userID string) (*service.LimitSet, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT daily, weekly, monthly, yearly
		FROM limits
		WHERE user_id = $1
	`, userID)

	limits := service.LimitSet{UserID: userID}
	err := row.Scan(&limits.Daily, &limits.Weekly, &limits.Monthly, &limits.Yearly)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get limits: %w", err)
	}
	return &limits, nil
}

// UpsertLimit sets the threshold for a single period, creating the limits row
// on first use.
func (s *Storage) UpsertLimit(ctx context.Context, userID string, period service.Period, limit decimal.Decimal) error {
	column, ok := limitColumn(period)
	if !ok {
		return fmt.Errorf("storage: unknown period %q", period)
	}

	query := fmt.Sprintf(`
		INSERT INTO limits (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET %s = EXCLUDED.%s
	`, column, column, column)

	if _, err := s.DB.ExecContext(ctx, query, userID, limit); err != nil {
		return fmt.Errorf("storage: upsert limit: %w", err)
	}
	return nil
}

// limitColumn maps a period to its column name. Periods never come from user
// input unvalidated, but the whitelist keeps the fmt.Sprintf above safe.
func limitColumn(period service.Period) (string, bool) {
	switch period {
	case service.PeriodDaily:
		return "daily", true
	case service.PeriodWeekly:
		return "weekly", true
	case service.PeriodMonthly:
		return "monthly", true
	case service.PeriodYearly:
		return "yearly", true
	}
	return "", false
}
