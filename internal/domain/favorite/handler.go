package favorite

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/domain/item"
	"github.com/rewear/rewear-api/internal/middleware"
	"github.com/rewear/rewear-api/internal/pkg/response"
)

type Handler struct {
	repo  *Repository
	items *item.Service
}

func NewHandler(repo *Repository, items *item.Service) *Handler {
	return &Handler{repo: repo, items: items}
}

// Add handles POST /items/{id}/favorite
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := h.params(w, r)
	if !ok {
		return
	}

	// The item must exist and be visible to the caller
	if _, err := h.items.Get(r.Context(), itemID, userID, false); err != nil {
		response.NotFound(w, "Item not found")
		return
	}

	if err := h.repo.Add(r.Context(), userID, itemID); err != nil {
		response.InternalError(w)
		return
	}

	response.OKMessage(w, "Item added to favorites")
}

// Remove handles DELETE /items/{id}/favorite
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := h.params(w, r)
	if !ok {
		return
	}

	if err := h.repo.Remove(r.Context(), userID, itemID); err != nil {
		response.InternalError(w)
		return
	}

	response.OKMessage(w, "Item removed from favorites")
}

// Check handles GET /items/{id}/favorite
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := h.params(w, r)
	if !ok {
		return
	}

	exists, err := h.repo.Exists(r.Context(), userID, itemID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"is_favorite": exists})
}

// ListMine handles GET /users/me/favorites
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, limit := 1, 12
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	ids, total, err := h.repo.ListItemIDs(r.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := []item.Response{}
	for _, id := range ids {
		// Items deleted since bookmarking are silently dropped
		it, err := h.items.Get(r.Context(), id, userID, false)
		if err != nil {
			continue
		}
		items = append(items, *it)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) (userID, itemID uuid.UUID, ok bool) {
	userID = middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, itemID, true
}
