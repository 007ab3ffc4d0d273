package swap

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/domain/points"
	"github.com/rewear/rewear-api/internal/middleware"
	"github.com/rewear/rewear-api/internal/pkg/response"
	"github.com/rewear/rewear-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /swaps
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeSwapError(w, err)
		return
	}

	response.CreatedMessage(w, "Swap request sent", resp)
}

// List handles GET /swaps?type=sent|received&status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	q := r.URL.Query()
	direction := q.Get("type")
	if direction != "sent" {
		direction = "received"
	}
	status := q.Get("status")
	page, limit := pagination(r, 20)

	swaps, total, err := h.svc.List(r.Context(), userID, direction, status, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, swaps, response.NewMeta(total, page, limit))
}

// Get handles GET /swaps/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid swap request ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	isAdmin := middleware.GetIsAdmin(r.Context())

	resp, err := h.svc.Get(r.Context(), id, userID, isAdmin)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Swap request not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, resp)
}

// Respond handles PUT /swaps/{id}/respond
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid swap request ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	var req RespondRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Respond(r.Context(), userID, id, &req)
	if err != nil {
		h.writeSwapError(w, err)
		return
	}

	response.OK(w, resp)
}

// Redeem handles POST /swaps/redeem
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req RedeemRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	resp, err := h.svc.Redeem(r.Context(), userID, itemID)
	if err != nil {
		h.writeSwapError(w, err)
		return
	}

	response.OK(w, resp)
}

func (h *Handler) writeSwapError(w http.ResponseWriter, err error) {
	var insufficient *points.InsufficientPointsError

	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Swap request not found")
	case errors.Is(err, ErrItemNotFound):
		response.NotFound(w, "Item not found")
	case errors.Is(err, ErrItemUnavailable):
		response.BadRequest(w, "Item is not available")
	case errors.Is(err, ErrOwnItem):
		response.BadRequest(w, "You cannot request your own item")
	case errors.Is(err, ErrDuplicateRequest):
		response.BadRequest(w, "You already have a pending request for this item")
	case errors.Is(err, ErrOfferedNotFound):
		response.NotFound(w, "Offered item not found")
	case errors.Is(err, ErrOfferedNotOwned):
		response.Forbidden(w, "You can only offer your own items")
	case errors.Is(err, ErrOfferedUnavailable):
		response.BadRequest(w, "Offered item is not available")
	case errors.Is(err, ErrNotItemOwner):
		response.Forbidden(w, "Only the item owner can respond")
	case errors.Is(err, ErrAlreadyResolved):
		response.BadRequest(w, "Swap request has already been resolved")
	case errors.As(err, &insufficient):
		response.BadRequest(w, insufficient.Error())
	default:
		response.InternalError(w)
	}
}

func pagination(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
