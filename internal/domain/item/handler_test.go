package item

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseFilterReadsApprovalStatus(t *testing.T) {
	h := NewHandler(nil, 5)

	req := httptest.NewRequest(http.MethodGet, "/items?approval_status=pending", nil)
	if f := h.parseFilter(req); f.Status != "pending" {
		t.Fatalf("expected status pending, got %q", f.Status)
	}

	// Absent parameter keeps the approved-only default
	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	if f := h.parseFilter(req); f.Status != "" {
		t.Fatalf("expected empty status, got %q", f.Status)
	}
}

func TestParseFilterCatalogPredicates(t *testing.T) {
	h := NewHandler(nil, 5)

	req := httptest.NewRequest(http.MethodGet,
		"/items?size=M&condition_type=Good&min_points=10&max_points=200&search=+jacket+", nil)
	f := h.parseFilter(req)

	if f.Size != "M" || f.Condition != "Good" {
		t.Fatalf("unexpected size/condition: %q %q", f.Size, f.Condition)
	}
	if f.MinPoints != 10 || f.MaxPoints != 200 {
		t.Fatalf("unexpected point bounds: %d %d", f.MinPoints, f.MaxPoints)
	}
	if f.Search != "jacket" {
		t.Fatalf("expected trimmed search, got %q", f.Search)
	}
}
