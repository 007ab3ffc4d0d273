package swap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rewear/rewear-api/internal/domain/item"
	"github.com/rewear/rewear-api/internal/domain/points"
)

// Notifier delivers best-effort swap events. Implementations must not
// block the settlement path.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload interface{})
}

// NopNotifier discards events
type NopNotifier struct{}

func (NopNotifier) Notify(uuid.UUID, string, interface{}) {}

// Service is the swap settlement engine. Every resolution runs in a
// single transaction with the item row locked, so an item can leave
// circulation at most once.
type Service struct {
	repo       *Repository
	items      *item.Repository
	ledger     *points.Ledger
	notifier   Notifier
	rewardRate float64
	payoutRate float64
}

// NewService creates swap service
func NewService(repo *Repository, items *item.Repository, ledger *points.Ledger, notifier Notifier, rewardRate, payoutRate float64) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		repo:       repo,
		items:      items,
		ledger:     ledger,
		notifier:   notifier,
		rewardRate: rewardRate,
		payoutRate: payoutRate,
	}
}

// RewardFor returns the points a requester earns when their swap is accepted
func (s *Service) RewardFor(pointValue int) int {
	return int(math.Floor(s.rewardRate * float64(pointValue)))
}

// PayoutFor returns the points an uploader earns when their item is redeemed
func (s *Service) PayoutFor(pointValue int) int {
	return int(math.Floor(s.payoutRate * float64(pointValue)))
}

// Create validates the preconditions in order and inserts a pending request
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, req *CreateRequest) (*Response, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	target, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if !target.IsRedeemable() {
		return nil, ErrItemUnavailable
	}
	if target.UploaderID == requesterID {
		return nil, ErrOwnItem
	}

	var offeredID *uuid.UUID
	if req.OfferedItemID != "" {
		id, err := uuid.Parse(req.OfferedItemID)
		if err != nil {
			return nil, ErrOfferedNotFound
		}
		offered, err := s.items.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, item.ErrNotFound) {
				return nil, ErrOfferedNotFound
			}
			return nil, err
		}
		if offered.UploaderID != requesterID {
			return nil, ErrOfferedNotOwned
		}
		if !offered.IsRedeemable() {
			return nil, ErrOfferedUnavailable
		}
		offeredID = &id
	}

	pending, err := s.repo.HasPendingRequest(ctx, requesterID, itemID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	request := &Request{
		ID:            uuid.New(),
		RequesterID:   requesterID,
		ItemID:        itemID,
		OfferedItemID: offeredID,
		Message:       nullString(req.Message),
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notifier.Notify(target.UploaderID, "swap_request_created", map[string]interface{}{
		"swap_id":   request.ID,
		"item_id":   itemID,
		"item":      target.Title,
		"requester": requesterID,
	})

	return s.load(ctx, request.ID, 0)
}

// Respond resolves a pending request as the item owner. The request, the
// item and any point movement settle in one transaction.
func (s *Service) Respond(ctx context.Context, responderID, swapID uuid.UUID, req *RespondRequest) (*Response, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	request, err := s.repo.GetForUpdateTx(ctx, tx, swapID)
	if err != nil {
		return nil, err
	}
	if request.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	target, err := s.items.GetForUpdateTx(ctx, tx, request.ItemID)
	if err != nil {
		return nil, err
	}
	if target.UploaderID != responderID {
		return nil, ErrNotItemOwner
	}

	var outcome Outcome
	if req.Status == "accepted" {
		// Re-check under the lock: a concurrent redemption may have taken
		// the item between the owner loading the page and accepting.
		if !target.IsRedeemable() {
			return nil, ErrItemUnavailable
		}
		outcome = Accepted{PointsAwarded: s.RewardFor(target.PointValue)}
	} else {
		outcome = Declined{Reason: req.ResponseMessage}
	}

	pointsAwarded := 0
	switch o := outcome.(type) {
	case Accepted:
		pointsAwarded = o.PointsAwarded
		if err := s.settleAccept(ctx, tx, request, target, o, nullStringPtr(req.ResponseMessage)); err != nil {
			return nil, err
		}
	case Declined:
		if err := s.repo.UpdateStatusTx(ctx, tx, request.ID, StatusDeclined, nullStringPtr(o.Reason)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unexpected outcome %T", outcome)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	event := "swap_request_declined"
	if req.Status == "accepted" {
		event = "swap_request_accepted"
	}
	s.notifier.Notify(request.RequesterID, event, map[string]interface{}{
		"swap_id":        request.ID,
		"item_id":        request.ItemID,
		"points_awarded": pointsAwarded,
	})

	return s.load(ctx, request.ID, pointsAwarded)
}

// settleAccept applies the Accepted outcome: both items leave circulation,
// the requester earns the reward and competing requests are declined.
func (s *Service) settleAccept(ctx context.Context, tx *sqlx.Tx, request *Request, target *item.Item, o Accepted, responseMessage *string) error {
	if err := s.repo.UpdateStatusTx(ctx, tx, request.ID, StatusAccepted, responseMessage); err != nil {
		return err
	}

	if err := s.items.MarkUnavailableTx(ctx, tx, target.ID); err != nil {
		return err
	}

	if request.OfferedItemID != nil {
		offered, err := s.items.GetForUpdateTx(ctx, tx, *request.OfferedItemID)
		if err != nil && !errors.Is(err, item.ErrNotFound) {
			return err
		}
		if offered != nil {
			if err := s.items.MarkUnavailableTx(ctx, tx, offered.ID); err != nil {
				return err
			}
		}
	}

	if o.PointsAwarded > 0 {
		if err := s.ledger.ApplyTx(ctx, tx, request.RequesterID, &target.ID, points.TransactionTypeEarned, o.PointsAwarded,
			fmt.Sprintf("Swap accepted: %s", target.Title)); err != nil {
			return err
		}
	}

	return s.repo.DeclineOtherPendingTx(ctx, tx, target.ID, request.ID, "Item is no longer available")
}

// Redeem buys the item outright with points
func (s *Service) Redeem(ctx context.Context, redeemerID, itemID uuid.UUID) (*RedeemResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	target, err := s.items.GetForUpdateTx(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if !target.IsRedeemable() {
		return nil, ErrItemUnavailable
	}
	if target.UploaderID == redeemerID {
		return nil, ErrOwnItem
	}

	cost := target.PointValue
	payout := s.PayoutFor(cost)

	if err := s.ledger.ApplyTx(ctx, tx, redeemerID, &target.ID, points.TransactionTypeSpent, -cost,
		fmt.Sprintf("Redeemed item: %s", target.Title)); err != nil {
		return nil, err
	}

	if payout > 0 {
		if err := s.ledger.ApplyTx(ctx, tx, target.UploaderID, &target.ID, points.TransactionTypeEarned, payout,
			fmt.Sprintf("Your item was redeemed: %s", target.Title)); err != nil {
			return nil, err
		}
	}

	if err := s.items.MarkUnavailableTx(ctx, tx, target.ID); err != nil {
		return nil, err
	}

	synthetic := &Request{
		ID:          uuid.New(),
		RequesterID: redeemerID,
		ItemID:      target.ID,
		Message:     nullString(RedemptionMessage),
		Status:      StatusCompleted,
	}
	if err := s.repo.CreateTx(ctx, tx, synthetic); err != nil {
		return nil, err
	}

	if err := s.repo.DeclineOtherPendingTx(ctx, tx, target.ID, synthetic.ID, "Item is no longer available"); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Notify(target.UploaderID, "item_redeemed", map[string]interface{}{
		"item_id": target.ID,
		"item":    target.Title,
		"payout":  payout,
	})

	balance, err := s.ledger.GetBalance(ctx, redeemerID)
	if err != nil {
		return nil, err
	}

	resp, err := s.load(ctx, synthetic.ID, 0)
	if err != nil {
		return nil, err
	}

	return &RedeemResponse{
		Swap:           *resp,
		PointsSpent:    cost,
		UploaderEarned: payout,
		NewBalance:     balance,
	}, nil
}

// Get returns a request visible to its participants
func (s *Service) Get(ctx context.Context, id, viewerID uuid.UUID, isAdmin bool) (*Response, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.RequesterID != viewerID && request.OwnerID != viewerID && !isAdmin {
		return nil, ErrNotFound
	}
	resp := ToResponse(request, s.awardedFor(request))
	return &resp, nil
}

// List returns requests the user sent or received
func (s *Service) List(ctx context.Context, userID uuid.UUID, direction, status string, page, limit int) ([]Response, int, error) {
	offset := (page - 1) * limit
	requests, total, err := s.repo.ListByUser(ctx, userID, direction, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, len(requests))
	for i := range requests {
		responses[i] = ToResponse(&requests[i], s.awardedFor(&requests[i]))
	}
	return responses, total, nil
}

// awardedFor recomputes the reward shown on accepted rows
func (s *Service) awardedFor(r *Request) int {
	if outcome, ok := r.Outcome(s.RewardFor(int(r.ItemPointValue.Int64))).(Accepted); ok {
		return outcome.PointsAwarded
	}
	return 0
}

func (s *Service) load(ctx context.Context, id uuid.UUID, pointsAwarded int) (*Response, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(request, pointsAwarded)
	return &resp, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
