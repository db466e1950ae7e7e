// internal/app/features/bourbons/list.go
package bourbons

import (
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/engine/ratings"
	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type listResponse struct {
	Bourbons []ratings.AnnotatedBourbon `json:"bourbons"`
}

// ServeList handles GET /bourbons: the club catalog annotated with average
// rating, review count, and value score.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "bourbons list")
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
	out := ratings.Annotate(bourbons, reviews)
	enginemetrics.ObserveEngine("annotate", len(reviews), time.Since(start))

	if out == nil {
		out = []ratings.AnnotatedBourbon{}
	}
	jsonutil.Write(w, http.StatusOK, listResponse{Bourbons: out})
}

type viewResponse struct {
	Bourbon models.Bourbon  `json:"bourbon"`
	Stats   ratings.Summary `json:"stats"`
	Reviews []models.Review `json:"reviews"`
}

// ServeView handles GET /bourbons/{id}: one bourbon with its full rating
// summary and reviews.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "bourbon view")
	defer cancel()

	b, err := h.Bourbons.GetByID(ctx, scope.ClubID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "bourbon")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load bourbon failed", err)
		return
	}
	reviews, err := h.Reviews.ListByBourbons(ctx, scope.ClubID, []primitive.ObjectID{b.ID})
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list reviews failed", err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	jsonutil.Write(w, http.StatusOK, viewResponse{
		Bourbon: b,
		Stats:   ratings.Aggregate(reviews),
		Reviews: reviews,
	})
}
