package swap_test

import (
	"encoding/json"
	"testing"

	"github.com/rewear/rewear-api/internal/domain/swap"
	"github.com/rewear/rewear-api/internal/pkg/validator"
)

func TestRespondRequestWireContract(t *testing.T) {
	for _, body := range []string{
		`{"status":"accepted"}`,
		`{"status":"declined","response_message":"Not a fit"}`,
	} {
		var req swap.RespondRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("unmarshal %s failed: %v", body, err)
		}
		if errs := validator.Validate(req); errs != nil {
			t.Fatalf("body %s rejected: %v", body, errs)
		}
	}
}

func TestRespondRequestRejectsUnknownStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing status", `{"response_message":"hi"}`},
		{"bare verb", `{"status":"accept"}`},
		{"pending not a decision", `{"status":"pending"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req swap.RespondRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			errs := validator.Validate(req)
			if errs == nil {
				t.Fatal("expected a validation error")
			}
			if _, ok := errs["status"]; !ok {
				t.Fatalf("expected error keyed by status, got %v", errs)
			}
		})
	}
}
