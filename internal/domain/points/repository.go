package points

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Ledger manages the points balance and transaction history. The balance
// column on users is only ever written here, in the same transaction as
// the ledger insert, so the two cannot drift apart.
type Ledger struct {
	db *sqlx.DB
}

// NewLedger creates a new points ledger
func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// BeginTx starts a transaction for multi-entry settlements
func (l *Ledger) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return l.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// lockBalance reads the user's balance under a row lock
func (l *Ledger) lockBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int, error) {
	var balance int
	err := tx.GetContext(ctx, &balance, `SELECT points FROM users WHERE id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return balance, err
}

// ApplyTx applies a signed points delta inside an existing transaction.
// Negative deltas fail with InsufficientPointsError rather than driving
// the balance below zero.
func (l *Ledger) ApplyTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, itemID *uuid.UUID, txType TransactionType, delta int, description string) error {
	if delta == 0 {
		return ErrInvalidAmount
	}

	balance, err := l.lockBalance(ctx, tx, userID)
	if err != nil {
		return err
	}

	nextBalance := balance + delta
	if nextBalance < 0 {
		return &InsufficientPointsError{Required: -delta, Available: balance}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET points = $1, updated_at = now() WHERE id = $2
	`, nextBalance, userID); err != nil {
		return fmt.Errorf("points ledger update balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO point_transactions (id, user_id, item_id, transaction_type, points, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), userID, itemID, string(txType), delta, description); err != nil {
		return fmt.Errorf("points ledger insert transaction: %w", err)
	}

	return nil
}

// Apply applies a single delta in its own transaction
func (l *Ledger) Apply(ctx context.Context, userID uuid.UUID, itemID *uuid.UUID, txType TransactionType, delta int, description string) error {
	tx, err := l.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := l.ApplyTx(ctx, tx, userID, itemID, txType, delta, description); err != nil {
		return err
	}

	return tx.Commit()
}

// GetBalance returns the user's current balance
func (l *Ledger) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	var balance int
	err := l.db.GetContext(ctx, &balance, `SELECT points FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return balance, err
}

// ListByUser returns the user's ledger entries, newest first
func (l *Ledger) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, int, error) {
	var total int
	if err := l.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM point_transactions WHERE user_id = $1
	`, userID); err != nil {
		return nil, 0, fmt.Errorf("points ledger count: %w", err)
	}

	transactions := []Transaction{}
	err := l.db.SelectContext(ctx, &transactions, `
		SELECT id, user_id, item_id, transaction_type, points, COALESCE(description, '') AS description, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("points ledger list: %w", err)
	}

	return transactions, total, nil
}

// Summarize returns the balance with lifetime earned and spent totals
func (l *Ledger) Summarize(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var s Summary
	err := l.db.GetContext(ctx, &s, `
		SELECT
			u.points AS balance,
			COALESCE(SUM(CASE WHEN t.points > 0 THEN t.points ELSE 0 END), 0) AS total_earned,
			COALESCE(SUM(CASE WHEN t.points < 0 THEN -t.points ELSE 0 END), 0) AS total_spent
		FROM users u
		LEFT JOIN point_transactions t ON t.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.points
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("points ledger summarize: %w", err)
	}
	return &s, nil
}
