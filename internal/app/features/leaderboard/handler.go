// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"net/http"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/engine/leaderboard"
	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	bourbonstore "github.com/dalemusser/bourbonclub/internal/app/store/bourbons"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	userstore "github.com/dalemusser/bourbonclub/internal/app/store/users"
	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Bourbons *bourbonstore.Store
	Reviews  *reviewstore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Bourbons: bourbonstore.New(db),
		Reviews:  reviewstore.New(db),
		Users:    userstore.New(db),
	}
}

// Routes mounts GET /leaderboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}

// Serve handles GET /leaderboard: reviewer and bourbon rankings for the
// caller's club, recomputed from every review on each request.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "leaderboard")
	defer cancel()

	bourbons, err := h.Bourbons.ListByClub(ctx, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list bourbons failed", err)
		return
	}
	reviews, err := h.Reviews.ListByClub(ctx, scope.ClubID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list reviews failed", err)
		return
	}

	seen := make(map[primitive.ObjectID]bool)
	var reviewerIDs []primitive.ObjectID
	for _, rv := range reviews {
		if !seen[rv.UserID] {
			seen[rv.UserID] = true
			reviewerIDs = append(reviewerIDs, rv.UserID)
		}
	}
	names, err := h.Users.NamesByIDs(ctx, reviewerIDs)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load reviewer names failed", err)
		return
	}

	start := time.Now()
	board := leaderboard.Build(bourbons, reviews, names)
	enginemetrics.ObserveEngine("leaderboard", len(reviews), time.Since(start))

	jsonutil.Write(w, http.StatusOK, board)
}
