package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/carson-networks/spendwatch/internal/service"
)

// AppendTransaction inserts one immutable transaction record.
func (s *Storage) AppendTransaction(ctx context.Context, tx *service.Transaction) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, year, month, day, hour,
		                          counterparty, payment_method, payment_type,
		                          amount, category, message, anomaly, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		tx.ID, tx.UserID,
		tx.Timestamp.Year, tx.Timestamp.Month, tx.Timestamp.Day, tx.Timestamp.Hour,
		tx.Counterparty, string(tx.PaymentMethod), string(tx.PaymentType),
		tx.Amount, tx.Category, tx.Message, tx.Anomaly, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: append transaction: %w", err)
	}
	return nil
}

// QueryTransactions returns records matching the filter, oldest first.
func (s *Storage) QueryTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]service.Transaction, error) {
	query := `
		SELECT id, user_id, year, month, day, hour,
		       counterparty, payment_method, payment_type,
		       amount, category, message, anomaly, created_at
		FROM transactions
		WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.PaymentType != nil {
		args = append(args, string(*filter.PaymentType))
		query += " AND payment_type = $" + strconv.Itoa(len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += " AND created_at >= $" + strconv.Itoa(len(args))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		query += " AND created_at < $" + strconv.Itoa(len(args))
	}
	if filter.Counterparty != nil {
		args = append(args, *filter.Counterparty)
		query += " AND counterparty = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []service.Transaction
	for rows.Next() {
		var tx service.Transaction
		var method, paymentType string
		err := rows.Scan(
			&tx.ID, &tx.UserID,
			&tx.Timestamp.Year, &tx.Timestamp.Month, &tx.Timestamp.Day, &tx.Timestamp.Hour,
			&tx.Counterparty, &method, &paymentType,
			&tx.Amount, &tx.Category, &tx.Message, &tx.Anomaly, &tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("storage: scan transaction: %w", err)
		}
		tx.PaymentMethod = service.PaymentMethod(method)
		tx.PaymentType = service.PaymentType(paymentType)
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate transactions: %w", err)
	}
	return transactions, nil
}
