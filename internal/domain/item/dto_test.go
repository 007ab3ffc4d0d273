package item_test

import (
	"strings"
	"testing"

	"github.com/rewear/rewear-api/internal/domain/item"
	"github.com/rewear/rewear-api/internal/pkg/validator"
)

func validCreateRequest() item.CreateRequest {
	return item.CreateRequest{
		Title:       "Denim Jacket",
		Description: "A sturdy jacket with plenty of wear left",
		Type:        "Jacket",
		Size:        "M",
		Condition:   "Good",
		PointValue:  150,
	}
}

func TestCreateRequestValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*item.CreateRequest)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(r *item.CreateRequest) {},
		},
		{
			name:      "title too short",
			mutate:    func(r *item.CreateRequest) { r.Title = "ab" },
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(r *item.CreateRequest) { r.Title = strings.Repeat("x", 256) },
			wantField: "title",
		},
		{
			name:      "description too short",
			mutate:    func(r *item.CreateRequest) { r.Description = "too short" },
			wantField: "description",
		},
		{
			name:      "missing type",
			mutate:    func(r *item.CreateRequest) { r.Type = "" },
			wantField: "type",
		},
		{
			name:      "unknown size",
			mutate:    func(r *item.CreateRequest) { r.Size = "XXXL" },
			wantField: "size",
		},
		{
			name:      "lowercase size rejected",
			mutate:    func(r *item.CreateRequest) { r.Size = "m" },
			wantField: "size",
		},
		{
			name:      "unknown condition",
			mutate:    func(r *item.CreateRequest) { r.Condition = "Worn Out" },
			wantField: "condition_type",
		},
		{
			name:      "point value below floor",
			mutate:    func(r *item.CreateRequest) { r.PointValue = 9 },
			wantField: "point_value",
		},
		{
			name:      "point value above ceiling",
			mutate:    func(r *item.CreateRequest) { r.PointValue = 1001 },
			wantField: "point_value",
		},
		{
			name:      "malformed category id",
			mutate:    func(r *item.CreateRequest) { r.CategoryID = "not-a-uuid" },
			wantField: "category_id",
		},
		{
			name: "too many tags",
			mutate: func(r *item.CreateRequest) {
				r.Tags = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
			},
			wantField: "tags",
		},
		{
			name:   "boundary point values accepted",
			mutate: func(r *item.CreateRequest) { r.PointValue = 10 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			errs := validator.Validate(req)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("expected valid, got errors %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestUpdateRequestValidation(t *testing.T) {
	short := "ab"
	low := 5
	if errs := validator.Validate(item.UpdateRequest{Title: &short}); errs == nil {
		t.Fatal("expected title error")
	}
	if errs := validator.Validate(item.UpdateRequest{PointValue: &low}); errs == nil {
		t.Fatal("expected point_value error")
	}
	if errs := validator.Validate(item.UpdateRequest{}); errs != nil {
		t.Fatalf("expected empty update to validate, got %v", errs)
	}
}

func TestIsRedeemable(t *testing.T) {
	i := item.Item{IsAvailable: true, ApprovalStatus: item.ApprovalApproved}
	if !i.IsRedeemable() {
		t.Fatal("approved available item should be redeemable")
	}

	i.ApprovalStatus = item.ApprovalPending
	if i.IsRedeemable() {
		t.Fatal("pending item should not be redeemable")
	}

	i.ApprovalStatus = item.ApprovalApproved
	i.IsAvailable = false
	if i.IsRedeemable() {
		t.Fatal("unavailable item should not be redeemable")
	}
}
