// internal/app/features/meetings/routes.go
package meetings

import (
	"github.com/dalemusser/bourbonclub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts meeting routes. Typically: r.Mount("/meetings", meetings.Routes(h)).
// Scheduling meetings and pours is limited to club admins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Put("/{id}/rsvp", h.HandleRSVP)

	r.Group(func(ar chi.Router) {
		ar.Use(authz.RequireClubAdmin(h.Memberships, h.Log))
		ar.Post("/", h.HandleCreate)
		ar.Post("/{id}/pours", h.HandleAddPour)
	})

	return r
}
