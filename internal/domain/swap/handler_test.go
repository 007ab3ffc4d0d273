package swap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/domain/swap"
	"github.com/rewear/rewear-api/internal/middleware"
)

func TestListDefaultsToReceived(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(db)

	svc, _ := newTestService(db)
	handler := swap.NewHandler(svc)
	ctx := context.Background()

	owner := createTestUser(t, db, 0)
	requester := createTestUser(t, db, 0)
	itemID := createTestItem(t, db, owner, 100, "approved")

	if _, err := svc.Create(ctx, requester, &swap.CreateRequest{ItemID: itemID.String()}); err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	listAs := func(userID uuid.UUID, query string) []swap.Response {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/swaps"+query, nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
		w := httptest.NewRecorder()
		handler.List(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var envelope struct {
			Success bool            `json:"success"`
			Data    []swap.Response `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response failed: %v", err)
		}
		return envelope.Data
	}

	// Without a type parameter the owner sees requests on their items
	if got := listAs(owner, ""); len(got) != 1 {
		t.Fatalf("expected owner to see 1 received request by default, got %d", len(got))
	}
	if got := listAs(requester, ""); len(got) != 0 {
		t.Fatalf("expected requester to see 0 received requests, got %d", len(got))
	}
	if got := listAs(requester, "?type=sent"); len(got) != 1 {
		t.Fatalf("expected requester to see 1 sent request, got %d", len(got))
	}
}
