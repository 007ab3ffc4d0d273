package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin router. Callers must already be authenticated
// and carry the admin flag.
func (h *Handler) Routes(authMiddleware, requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(requireAdmin)

	r.Get("/stats", h.Stats)
	r.Get("/items", h.Queue)
	r.Put("/items/{id}/moderate", h.Moderate)
	r.Get("/users", h.Users)
	r.Put("/users/{id}/status", h.UserStatus)
	r.Get("/analytics", h.Analytics)

	return r
}
