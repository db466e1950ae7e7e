// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/bourbonclub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all audit log routes under the path where this
// router is mounted (typically "/audit" from bootstrap).
//
// Access is restricted to admins of the current club, who see only that
// club's events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequireClubAdmin(h.Memberships, h.Log))
		pr.Get("/", h.ServeList)
	})

	return r
}
