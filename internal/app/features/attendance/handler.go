// internal/app/features/attendance/handler.go
package attendance

import (
	"net/http"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/engine/streaks"
	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	meetingstore "github.com/dalemusser/bourbonclub/internal/app/store/meetings"
	rsvpstore "github.com/dalemusser/bourbonclub/internal/app/store/rsvps"
	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Meetings *meetingstore.Store
	RSVPs    *rsvpstore.Store
	Now      func() time.Time
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Meetings: meetingstore.New(db),
		RSVPs:    rsvpstore.New(db),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// Routes mounts GET /attendance/streak.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/streak", h.ServeStreak)
	return r
}

// ServeStreak handles GET /attendance/streak: the member's streaks and
// attendance rate over the club's past meetings.
func (h *Handler) ServeStreak(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "attendance streak")
	defer cancel()

	meetings, err := h.Meetings.ListByClub(ctx, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list meetings failed", err)
		return
	}
	rsvps, err := h.RSVPs.ListByUserClub(ctx, scope.UserID, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list rsvps failed", err)
		return
	}

	start := time.Now()
	summary := streaks.Summarize(meetings, rsvps, h.Now())
	enginemetrics.ObserveEngine("streaks", len(meetings), time.Since(start))

	jsonutil.Write(w, http.StatusOK, summary)
}
