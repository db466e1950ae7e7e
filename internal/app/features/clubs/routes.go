// internal/app/features/clubs/routes.go
package clubs

import "github.com/go-chi/chi/v5"

// Routes mounts club routes. Typically: r.Mount("/clubs", clubs.Routes(h)).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/{id}/select", h.HandleSelect)
	return r
}
