package swap

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the swap router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/redeem", h.Redeem)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/respond", h.Respond)

	return r
}
