package points

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypeEarned  TransactionType = "earned"
	TransactionTypeSpent   TransactionType = "spent"
	TransactionTypeBonus   TransactionType = "bonus"
	TransactionTypePenalty TransactionType = "penalty"
)

// Transaction represents a single points ledger entry
type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	ItemID      *uuid.UUID      `db:"item_id" json:"item_id,omitempty"`
	Type        TransactionType `db:"transaction_type" json:"type"`
	Points      int             `db:"points" json:"points"`
	Description string          `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Summary aggregates a user's points position
type Summary struct {
	Balance     int `db:"balance" json:"balance"`
	TotalEarned int `db:"total_earned" json:"total_earned"`
	TotalSpent  int `db:"total_spent" json:"total_spent"`
}
