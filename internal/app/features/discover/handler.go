// internal/app/features/discover/handler.go
package discover

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/engine/discovery"
	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	bourbonstore "github.com/dalemusser/bourbonclub/internal/app/store/bourbons"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Bourbons *bourbonstore.Store
	Reviews  *reviewstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Bourbons: bourbonstore.New(db),
		Reviews:  reviewstore.New(db),
	}
}

// Routes mounts POST /discover.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleMatch)
	return r
}

type matchResponse struct {
	Matches  []discovery.Match    `json:"matches"`
	Warnings []inputval.FieldError `json:"warnings,omitempty"`
}

// HandleMatch handles POST /discover with a taste profile and returns the
// club's best-matching bourbons.
//
// Unrecognized profile values are not rejected. They contribute nothing to
// the score and are echoed back as warnings.
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}

	var p discovery.Profile
	if err := jsonutil.Decode(r, &p); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	var warnings inputval.Errors
	if err := p.Validate(); err != nil {
		if !errors.As(err, &warnings) {
			uierrors.Internal(w, r, h.Log, "profile validation failed", err)
			return
		}
		h.Log.Debug("discovery profile has unrecognized values", zap.Error(err))
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "discover")
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

	start := time.Now()
	matches := discovery.Recommend(p, bourbons, reviews)
	enginemetrics.ObserveEngine("discovery", len(bourbons), time.Since(start))

	if matches == nil {
		matches = []discovery.Match{}
	}
	jsonutil.Write(w, http.StatusOK, matchResponse{Matches: matches, Warnings: warnings})
}
