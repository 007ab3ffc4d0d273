package swap

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /swaps
type CreateRequest struct {
	ItemID        string `json:"item_id" validate:"required,uuid"`
	OfferedItemID string `json:"offered_item_id" validate:"omitempty,uuid"`
	Message       string `json:"message" validate:"omitempty,max=1000"`
}

// RespondRequest for PUT /swaps/{id}/respond
type RespondRequest struct {
	Status          string `json:"status" validate:"required,swap_response"`
	ResponseMessage string `json:"response_message" validate:"omitempty,max=1000"`
}

// RedeemRequest for POST /swaps/redeem
type RedeemRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
}

// PartyInfo is the public shape of a swap participant
type PartyInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemInfo is the summary of the requested item
type ItemInfo struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	PointValue int       `json:"point_value"`
}

// Response is the public JSON shape of a swap request
type Response struct {
	ID              uuid.UUID  `json:"id"`
	Requester       PartyInfo  `json:"requester"`
	Owner           PartyInfo  `json:"owner"`
	Item            ItemInfo   `json:"item"`
	OfferedItemID   *uuid.UUID `json:"offered_item_id,omitempty"`
	Message         string     `json:"message,omitempty"`
	Status          string     `json:"status"`
	ResponseMessage string     `json:"response_message,omitempty"`
	PointsAwarded   int        `json:"points_awarded,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToResponse converts a request row to its public shape
func ToResponse(r *Request, pointsAwarded int) Response {
	return Response{
		ID:              r.ID,
		Requester:       PartyInfo{ID: r.RequesterID, Name: r.RequesterName.String},
		Owner:           PartyInfo{ID: r.OwnerID, Name: r.OwnerName.String},
		Item:            ItemInfo{ID: r.ItemID, Title: r.ItemTitle.String, PointValue: int(r.ItemPointValue.Int64)},
		OfferedItemID:   r.OfferedItemID,
		Message:         r.Message.String,
		Status:          string(r.Status),
		ResponseMessage: r.ResponseMessage.String,
		PointsAwarded:   pointsAwarded,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RedeemResponse reports the settlement of a point redemption
type RedeemResponse struct {
	Swap           Response `json:"swap"`
	PointsSpent    int      `json:"points_spent"`
	UploaderEarned int      `json:"uploader_earned"`
	NewBalance     int      `json:"new_balance"`
}
