package points

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes read access to a user's points position
type Service struct {
	ledger *Ledger
}

// NewService creates points service
func NewService(ledger *Ledger) *Service {
	return &Service{ledger: ledger}
}

// History bundles the summary with a page of ledger entries
type History struct {
	Summary      Summary       `json:"summary"`
	Transactions []Transaction `json:"transactions"`
}

// GetHistory returns the user's summary and a page of transactions
func (s *Service) GetHistory(ctx context.Context, userID uuid.UUID, page, limit int) (*History, int, error) {
	summary, err := s.ledger.Summarize(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	transactions, total, err := s.ledger.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return &History{
		Summary:      *summary,
		Transactions: transactions,
	}, total, nil
}
