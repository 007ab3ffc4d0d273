package swap

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status is the stored lifecycle state of a swap request
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// RedemptionMessage marks synthetic swap rows created by point redemptions
const RedemptionMessage = "Redeemed with points"

// Outcome is the resolution of a swap request. Exactly one variant holds,
// and settlement side effects derive from a switch over it.
type Outcome interface {
	isOutcome()
}

// Pending means the owner has not responded yet
type Pending struct{}

// Accepted carries the points awarded to the requester
type Accepted struct {
	PointsAwarded int
}

// Declined carries the owner's optional reason
type Declined struct {
	Reason string
}

// CompletionVia distinguishes how an exchange completed
type CompletionVia string

const (
	ViaSwap       CompletionVia = "swap"
	ViaRedemption CompletionVia = "redemption"
)

// Completed marks a finished exchange
type Completed struct {
	Via CompletionVia
}

func (Pending) isOutcome()   {}
func (Accepted) isOutcome()  {}
func (Declined) isOutcome()  {}
func (Completed) isOutcome() {}

// Request represents a swap request row
type Request struct {
	ID              uuid.UUID      `db:"id"`
	RequesterID     uuid.UUID      `db:"requester_id"`
	ItemID          uuid.UUID      `db:"item_id"`
	OfferedItemID   *uuid.UUID     `db:"offered_item_id"`
	Message         sql.NullString `db:"message"`
	Status          Status         `db:"status"`
	ResponseMessage sql.NullString `db:"response_message"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`

	// Joined columns
	RequesterName  sql.NullString `db:"requester_name"`
	ItemTitle      sql.NullString `db:"item_title"`
	ItemPointValue sql.NullInt64  `db:"item_point_value"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	OwnerName      sql.NullString `db:"owner_name"`
}

// IsTerminal reports whether the request can no longer change state
func (r *Request) IsTerminal() bool {
	return r.Status != StatusPending
}

// Outcome reconstructs the resolution variant from the stored row
func (r *Request) Outcome(pointsAwarded int) Outcome {
	switch r.Status {
	case StatusAccepted:
		return Accepted{PointsAwarded: pointsAwarded}
	case StatusDeclined:
		return Declined{Reason: r.ResponseMessage.String}
	case StatusCompleted:
		if r.Message.String == RedemptionMessage {
			return Completed{Via: ViaRedemption}
		}
		return Completed{Via: ViaSwap}
	default:
		return Pending{}
	}
}
