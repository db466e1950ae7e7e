// internal/app/features/achievements/handler.go
package achievements

import (
	"net/http"

	"github.com/dalemusser/bourbonclub/internal/app/engine/achievements"
	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	achievementstore "github.com/dalemusser/bourbonclub/internal/app/store/achievements"
	"github.com/dalemusser/bourbonclub/internal/app/store/queries/achievementprogress"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Tracker *achievements.Tracker
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Tracker: achievements.NewTracker(achievementprogress.New(db), achievementstore.New(db), logger),
	}
}

// Routes mounts GET /achievements.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}

type response struct {
	Achievements []achievements.Progress `json:"achievements"`
	EarnedCount  int                     `json:"earnedCount"`
	Total        int                     `json:"total"`
}

// Serve handles GET /achievements. Progress counts span every club the
// member belongs to; anything newly reached is awarded before the response.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "achievements")
	defer cancel()

	report, err := h.Tracker.Report(ctx, scope.UserID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "achievement report failed", err)
		return
	}

	resp := response{Achievements: report, Total: len(report)}
	for _, p := range report {
		if p.Earned {
			resp.EarnedCount++
		}
	}
	jsonutil.Write(w, http.StatusOK, resp)
}
