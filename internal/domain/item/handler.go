package item

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rewear/rewear-api/internal/middleware"
	"github.com/rewear/rewear-api/internal/pkg/response"
	"github.com/rewear/rewear-api/internal/pkg/storage"
	"github.com/rewear/rewear-api/internal/pkg/validator"
)

type Handler struct {
	svc          *Service
	maxImageSize int64
}

func NewHandler(svc *Service, maxImageSizeMB int64) *Handler {
	return &Handler{svc: svc, maxImageSize: maxImageSizeMB * 1024 * 1024}
}

// List handles GET /items
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := h.parseFilter(r)

	items, total, err := h.svc.List(r.Context(), f)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, items, response.NewMeta(total, f.Page, f.Limit))
}

// Get handles GET /items/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	isAdmin := middleware.GetIsAdmin(r.Context())

	item, err := h.svc.Get(r.Context(), id, viewerID, isAdmin)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Item not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, item)
}

// Create handles POST /items (multipart form)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	pointValue, _ := strconv.Atoi(r.FormValue("point_value"))
	req := CreateRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CategoryID:  r.FormValue("category_id"),
		Type:        r.FormValue("type"),
		Size:        r.FormValue("size"),
		Condition:   r.FormValue("condition_type"),
		PointValue:  pointValue,
		Tags:        parseTags(r.Form["tags"]),
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	uploads, err := h.readUploads(r)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			response.BadRequest(w, "Image exceeds maximum size")
		case errors.Is(err, storage.ErrInvalidMimeType):
			response.BadRequest(w, "Only JPEG, PNG, GIF and WebP images are allowed")
		case errors.Is(err, storage.ErrEmptyFile):
			response.BadRequest(w, "Empty image file")
		default:
			response.BadRequest(w, "Failed to read uploaded images")
		}
		return
	}

	item, err := h.svc.Create(r.Context(), userID, &req, uploads)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoImages):
			response.BadRequest(w, "At least one image is required")
		case errors.Is(err, ErrTooManyImages):
			response.BadRequest(w, "Too many images")
		case errors.Is(err, ErrCategoryNotFound):
			response.BadRequest(w, "Category not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.CreatedMessage(w, "Item submitted for review", item)
}

func (h *Handler) readUploads(r *http.Request) ([]Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	uploads := []Upload{}
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}

		data, mimeType, err := storage.ValidateImage(file, h.maxImageSize)
		file.Close()
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, Upload{
			Filename:    header.Filename,
			ContentType: mimeType,
			Data:        data,
		})
	}
	return uploads, nil
}

// Update handles PUT /items/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	isAdmin := middleware.GetIsAdmin(r.Context())

	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := h.svc.Update(r.Context(), id, userID, isAdmin, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Item not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You do not own this item")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, item)
}

// Delete handles DELETE /items/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	isAdmin := middleware.GetIsAdmin(r.Context())

	if err := h.svc.Delete(r.Context(), id, userID, isAdmin); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Item not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You do not own this item")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OKMessage(w, "Item deleted")
}

// ListMine handles GET /users/me/items
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, limit := pagination(r, 12)
	status := r.URL.Query().Get("approval_status")

	items, total, err := h.svc.ListMine(r.Context(), userID, status, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Categories handles GET /categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, categories)
}

func (h *Handler) parseFilter(r *http.Request) Filter {
	q := r.URL.Query()

	f := Filter{
		Size:      q.Get("size"),
		Condition: q.Get("condition_type"),
		Search:    strings.TrimSpace(q.Get("search")),
		Status:    q.Get("approval_status"),
	}

	if v, err := uuid.Parse(q.Get("category_id")); err == nil {
		f.CategoryID = &v
	}
	if v, err := uuid.Parse(q.Get("uploader_id")); err == nil {
		f.UploaderID = &v
	}
	if v, err := strconv.Atoi(q.Get("min_points")); err == nil && v > 0 {
		f.MinPoints = v
	}
	if v, err := strconv.Atoi(q.Get("max_points")); err == nil && v > 0 {
		f.MaxPoints = v
	}

	f.Page, f.Limit = pagination(r, 12)
	return f
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

func parseTags(values []string) []string {
	tags := []string{}
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
