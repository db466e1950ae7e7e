// internal/app/features/dashboard/handler.go
package dashboard

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	clubstore "github.com/dalemusser/bourbonclub/internal/app/store/clubs"
	membershipstore "github.com/dalemusser/bourbonclub/internal/app/store/memberships"
	metricsstore "github.com/dalemusser/bourbonclub/internal/app/store/metrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/authz"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Clubs       *clubstore.Store
	Memberships *membershipstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Clubs:       clubstore.New(db),
		Memberships: membershipstore.New(db),
	}
}

type clubInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type dashboardData struct {
	Club   clubInfo            `json:"club"`
	Role   string              `json:"role"`
	Counts metricsstore.Counts `json:"counts"`
}

// ServeDashboard handles GET /dashboard: the current club, the caller's role
// in it, and the club's headline totals.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard")
	defer cancel()

	club, err := h.Clubs.GetByID(ctx, scope.ClubID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "club")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load club failed", err)
		return
	}
	role, err := authz.ClubRole(ctx, h.Memberships, scope)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load role failed", err)
		return
	}
	counts, err := metricsstore.FetchClubCounts(tenant.NewContext(ctx, scope), h.DB)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load club counts failed", err)
		return
	}

	jsonutil.Write(w, http.StatusOK, dashboardData{
		Club:   clubInfo{ID: club.ID.Hex(), Name: club.Name},
		Role:   role,
		Counts: counts,
	})
}
