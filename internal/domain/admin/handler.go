package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/domain/item"
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

// Stats handles GET /admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}

// Queue handles GET /admin/items
func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("approval_status")
	page, limit := pagination(r, 20)

	items, total, err := h.svc.Queue(r.Context(), status, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Moderate handles PUT /admin/items/{id}/moderate
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req ModerateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	moderated, err := h.svc.Moderate(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, item.ErrNotFound):
			response.NotFound(w, "Item not found")
		case errors.Is(err, ErrAlreadyModerated):
			response.BadRequest(w, "Item has already been moderated")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, moderated)
}

// Users handles GET /admin/users
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")

	var isActive *bool
	if v := q.Get("is_active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			isActive = &parsed
		}
	}

	page, limit := pagination(r, 20)

	users, total, err := h.svc.ListUsers(r.Context(), search, isActive, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, users, response.NewMeta(total, page, limit))
}

// UserStatus handles PUT /admin/users/{id}/status
func (h *Handler) UserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req UserStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	adminID := middleware.GetUserID(r.Context())

	if err := h.svc.SetUserStatus(r.Context(), adminID, id, *req.IsActive); err != nil {
		switch {
		case errors.Is(err, ErrSelfDeactivation):
			response.BadRequest(w, "You cannot deactivate your own account")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OKMessage(w, "User status updated")
}

// Analytics handles GET /admin/analytics
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	period := 30
	if v, err := strconv.Atoi(r.URL.Query().Get("period")); err == nil && v > 0 {
		period = v
	}

	activity, err := h.svc.GetActivity(r.Context(), period)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, activity)
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
