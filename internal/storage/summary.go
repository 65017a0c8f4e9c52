package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwatch/internal/service"
)

// GetSummary returns all-zero aggregates for users without a summary row.
func (s *Storage) GetSummary(ctx context.Context, userID string) (*service.SummaryAggregate, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT day_in, day_out, week_in, week_out,
		       month_in, month_out, year_in, year_out
		FROM summary
		WHERE user_id = $1
	`, userID)

	summary := service.SummaryAggregate{UserID: userID}
	err := row.Scan(
		&summary.DayIn, &summary.DayOut,
		&summary.WeekIn, &summary.WeekOut,
		&summary.MonthIn, &summary.MonthOut,
		&summary.YearIn, &summary.YearOut,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &summary, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get summary: %w", err)
	}
	return &summary, nil
}

// IncrementSummary adds the amount to all four period counters on one side.
// The single upsert statement makes the add atomic per user row; concurrent
// increments for the same user serialize on the row lock and never lose
// updates.
func (s *Storage) IncrementSummary(ctx context.Context, userID string, amount decimal.Decimal, direction service.Direction) error {
	in, out := amount, decimal.Zero
	if direction == service.DirectionOut {
		in, out = decimal.Zero, amount
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO summary (user_id, day_in, day_out, week_in, week_out,
		                     month_in, month_out, year_in, year_out)
		VALUES ($1, $2, $3, $2, $3, $2, $3, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			day_in    = summary.day_in    + EXCLUDED.day_in,
			day_out   = summary.day_out   + EXCLUDED.day_out,
			week_in   = summary.week_in   + EXCLUDED.week_in,
			week_out  = summary.week_out  + EXCLUDED.week_out,
			month_in  = summary.month_in  + EXCLUDED.month_in,
			month_out = summary.month_out + EXCLUDED.month_out,
			year_in   = summary.year_in   + EXCLUDED.year_in,
			year_out  = summary.year_out  + EXCLUDED.year_out
	`, userID, in, out)
	if err != nil {
		return fmt.Errorf("storage: increment summary: %w", err)
	}
	return nil
}
