// internal/app/features/reviews/routes.go
package reviews

import "github.com/go-chi/chi/v5"

// Routes mounts review routes. Typically: r.Mount("/reviews", reviews.Routes(h)).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
