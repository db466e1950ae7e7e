// internal/app/features/bourbons/routes.go
package bourbons

import "github.com/go-chi/chi/v5"

// Routes mounts the catalog routes. Typically: r.Mount("/bourbons", bourbons.Routes(h)).
// Callers mount it behind the tenant middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/compare", h.ServeCompare)
	r.Get("/{id}", h.ServeView)
	return r
}
