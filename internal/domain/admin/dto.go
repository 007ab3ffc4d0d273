package admin

import (
	"time"

	"github.com/google/uuid"
)

// ModerateRequest for PUT /admin/items/{id}/moderate
type ModerateRequest struct {
	ApprovalStatus  string `json:"approval_status" validate:"required,approval_decision"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=500"`
	PointValue      *int   `json:"point_value" validate:"omitempty,gte=10,lte=1000"`
}

// UserStatusRequest for PUT /admin/users/{id}/status
type UserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Stats is the platform dashboard summary
type Stats struct {
	PendingItems   int `db:"pending_items" json:"pending_items"`
	ApprovedItems  int `db:"approved_items" json:"approved_items"`
	RejectedItems  int `db:"rejected_items" json:"rejected_items"`
	ActiveUsers    int `db:"active_users" json:"active_users"`
	CompletedSwaps int `db:"completed_swaps" json:"completed_swaps"`
	PendingSwaps   int `db:"pending_swaps" json:"pending_swaps"`
}

// UserRow is one row of the admin user list with activity aggregates
type UserRow struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Points      int       `db:"points" json:"points"`
	IsAdmin     bool      `db:"is_admin" json:"is_admin"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	ItemCount   int       `db:"item_count" json:"item_count"`
	SwapCount   int       `db:"swap_count" json:"swap_count"`
	TotalEarned int       `db:"total_earned" json:"total_earned"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ActivityPoint is one day of the analytics series
type ActivityPoint struct {
	Date     time.Time `db:"day" json:"date"`
	NewItems int       `db:"new_items" json:"new_items"`
	NewUsers int       `db:"new_users" json:"new_users"`
	NewSwaps int       `db:"new_swaps" json:"new_swaps"`
}
