package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/domain/item"
	"github.com/rewear/rewear-api/internal/domain/points"
	"github.com/rewear/rewear-api/internal/domain/swap"
	"github.com/rewear/rewear-api/internal/domain/user"
)

// Service handles moderation and platform administration
type Service struct {
	repo         *Repository
	items        *item.Service
	itemRepo     *item.Repository
	users        user.Repository
	ledger       *points.Ledger
	notifier     swap.Notifier
	listingBonus int
}

// NewService creates admin service
func NewService(repo *Repository, items *item.Service, itemRepo *item.Repository, users user.Repository, ledger *points.Ledger, notifier swap.Notifier, listingBonus int) *Service {
	if notifier == nil {
		notifier = swap.NopNotifier{}
	}
	return &Service{
		repo:         repo,
		items:        items,
		itemRepo:     itemRepo,
		users:        users,
		ledger:       ledger,
		notifier:     notifier,
		listingBonus: listingBonus,
	}
}

// GetStats returns the dashboard counters
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.GetStats(ctx)
}

// Queue returns the moderation queue, oldest first
func (s *Service) Queue(ctx context.Context, status string, page, limit int) ([]item.Response, int, error) {
	if status == "" {
		status = string(item.ApprovalPending)
	}
	return s.items.List(ctx, item.Filter{
		Status:      status,
		OldestFirst: true,
		Page:        page,
		Limit:       limit,
	})
}

// Moderate resolves a pending listing. Moderation is single use: a listing
// that already left the pending state cannot be decided again, and a
// rejected decision never reaches the ledger.
func (s *Service) Moderate(ctx context.Context, itemID uuid.UUID, req *ModerateRequest) (*item.Response, error) {
	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	target, err := s.itemRepo.GetForUpdateTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	if target.ApprovalStatus != item.ApprovalPending {
		return nil, ErrAlreadyModerated
	}

	switch item.ApprovalStatus(req.ApprovalStatus) {
	case item.ApprovalApproved:
		if req.PointValue != nil && *req.PointValue != target.PointValue {
			if err := s.itemRepo.UpdatePointValueTx(ctx, tx, itemID, *req.PointValue); err != nil {
				return nil, err
			}
		}
		if err := s.itemRepo.UpdateApprovalTx(ctx, tx, itemID, item.ApprovalApproved, nil); err != nil {
			return nil, err
		}
		if s.listingBonus > 0 {
			if err := s.ledger.ApplyTx(ctx, tx, target.UploaderID, &itemID, points.TransactionTypeEarned, s.listingBonus,
				fmt.Sprintf("Listing approved: %s", target.Title)); err != nil {
				return nil, err
			}
		}
	case item.ApprovalRejected:
		var reason *string
		if req.RejectionReason != "" {
			reason = &req.RejectionReason
		}
		if err := s.itemRepo.UpdateApprovalTx(ctx, tx, itemID, item.ApprovalRejected, reason); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Notify(target.UploaderID, "item_moderated", map[string]interface{}{
		"item_id": itemID,
		"item":    target.Title,
		"status":  req.ApprovalStatus,
	})

	return s.items.Get(ctx, itemID, target.UploaderID, true)
}

// ListUsers returns users with activity aggregates
func (s *Service) ListUsers(ctx context.Context, search string, isActive *bool, page, limit int) ([]UserRow, int, error) {
	offset := (page - 1) * limit
	return s.repo.ListUsers(ctx, search, isActive, limit, offset)
}

// SetUserStatus soft activates or deactivates an account
func (s *Service) SetUserStatus(ctx context.Context, adminID, userID uuid.UUID, active bool) error {
	if adminID == userID && !active {
		return ErrSelfDeactivation
	}

	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if err == user.ErrNotFound {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetActivity returns the daily activity series
func (s *Service) GetActivity(ctx context.Context, periodDays int) ([]ActivityPoint, error) {
	if periodDays < 1 || periodDays > 365 {
		periodDays = 30
	}
	return s.repo.GetActivity(ctx, periodDays)
}
