package storage

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwatch/internal/service"
)

func (s *Storage) InsertPending(ctx context.Context, item *service.PendingItem) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO pending (pending_id, user_id, reason, amount, to_give, other_user, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, item.ID, item.UserID, item.Reason, item.Amount, item.Payable, item.PersonName, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage: insert pending: %w", err)
	}
	return nil
}

func (s *Storage) ListPending(ctx context.Context, userID string) ([]service.PendingItem, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT pending_id, user_id, reason, amount, to_give, other_user, created_at
		FROM pending
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("storage: list pending: %w", err)
	}
	defer rows.Close()

	var items []service.PendingItem
	for rows.Next() {
		var item service.PendingItem
		err := rows.Scan(&item.ID, &item.UserID, &item.Reason, &item.Amount,
			&item.Payable, &item.PersonName, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("storage: scan pending: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate pending: %w", err)
	}
	return items, nil
}

func (s *Storage) DeletePending(ctx context.Context, userID string, pendingID uuid.UUID) error {
	_, err := s.DB.ExecContext(ctx, `
		DELETE FROM pending
		WHERE user_id = $1 AND pending_id = $2
	`, userID, pendingID)
	if err != nil {
		return fmt.Errorf("storage: delete pending: %w", err)
	}
	return nil
}
