package item

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus represents moderation state of a listing
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ValidSizes lists accepted clothing sizes
var ValidSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// ValidConditions lists accepted garment conditions
var ValidConditions = []string{"Like New", "Good", "Fair", "Well-Worn"}

// Item represents a clothing listing
type Item struct {
	ID              uuid.UUID      `db:"id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	CategoryID      *uuid.UUID     `db:"category_id"`
	Type            string         `db:"type"`
	Size            string         `db:"size"`
	Condition       string         `db:"condition_type"`
	PointValue      int            `db:"point_value"`
	UploaderID      uuid.UUID      `db:"uploader_id"`
	IsAvailable     bool           `db:"is_available"`
	ApprovalStatus  ApprovalStatus `db:"approval_status"`
	RejectionReason sql.NullString `db:"rejection_reason"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`

	// Joined columns
	UploaderName sql.NullString `db:"uploader_name"`
	CategoryName sql.NullString `db:"category_name"`
}

// Image represents one stored photo of an item
type Image struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ItemID       uuid.UUID `db:"item_id" json:"item_id"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	IsPrimary    bool      `db:"is_primary" json:"is_primary"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Category represents a clothing category
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// IsRedeemable reports whether the item can be part of a swap or redemption
func (i *Item) IsRedeemable() bool {
	return i.IsAvailable && i.ApprovalStatus == ApprovalApproved
}
