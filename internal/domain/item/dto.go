package item

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest carries the form fields of a new listing
type CreateRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	CategoryID  string   `json:"category_id" validate:"omitempty,uuid"`
	Type        string   `json:"type" validate:"required,min=2,max=100"`
	Size        string   `json:"size" validate:"required,item_size"`
	Condition   string   `json:"condition_type" validate:"required,item_condition"`
	PointValue  int      `json:"point_value" validate:"required,gte=10,lte=1000"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
}

// UpdateRequest carries the editable listing fields
type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,min=10,max=2000"`
	PointValue  *int    `json:"point_value" validate:"omitempty,gte=10,lte=1000"`
	IsAvailable *bool   `json:"is_available"`
}

// Filter narrows catalog listings
type Filter struct {
	CategoryID *uuid.UUID
	Size       string
	Condition  string
	MinPoints  int
	MaxPoints  int
	Search     string
	UploaderID *uuid.UUID
	Status     string // approval status, empty means approved only
	// AnyStatus lifts the approval filter entirely (owner and admin views)
	AnyStatus bool
	// OldestFirst orders ascending by creation time (moderation queue)
	OldestFirst bool
	Page        int
	Limit       int
}

// UploaderInfo is the public shape of an item's owner
type UploaderInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Response is the public JSON shape of a listing
type Response struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	CategoryID      *uuid.UUID   `json:"category_id,omitempty"`
	CategoryName    string       `json:"category_name,omitempty"`
	Type            string       `json:"type"`
	Size            string       `json:"size"`
	Condition       string       `json:"condition_type"`
	PointValue      int          `json:"point_value"`
	Uploader        UploaderInfo `json:"uploader"`
	IsAvailable     bool         `json:"is_available"`
	ApprovalStatus  string       `json:"approval_status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	Images          []Image      `json:"images"`
	Tags            []string     `json:"tags"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ToResponse converts an item with its images and tags to the public shape
func ToResponse(i *Item, images []Image, tags []string) Response {
	if images == nil {
		images = []Image{}
	}
	if tags == nil {
		tags = []string{}
	}
	return Response{
		ID:              i.ID,
		Title:           i.Title,
		Description:     i.Description,
		CategoryID:      i.CategoryID,
		CategoryName:    i.CategoryName.String,
		Type:            i.Type,
		Size:            i.Size,
		Condition:       i.Condition,
		PointValue:      i.PointValue,
		Uploader:        UploaderInfo{ID: i.UploaderID, Name: i.UploaderName.String},
		IsAvailable:     i.IsAvailable,
		ApprovalStatus:  string(i.ApprovalStatus),
		RejectionReason: i.RejectionReason.String,
		Images:          images,
		Tags:            tags,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
