// internal/app/features/reviews/create.go
package reviews

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var errNoTarget = errors.New("bourbonId or meetingBourbonId is required")

// HandleCreate handles POST /reviews.
//
// A review names either a bourbon (standalone) or a meeting pour. When both
// are given they must agree. The rating is derived from the category scores;
// the overall rating is used only when no category is scored.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}

	var in createInput
	if err := jsonutil.Decode(r, &in); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if err := inputval.Struct(in); err != nil {
		uierrors.Invalid(w, err)
		return
	}
	if in.BourbonID == "" && in.MeetingBourbonID == "" {
		uierrors.Invalid(w, errNoTarget)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "review create")
	defer cancel()

	rev := models.Review{
		ClubID: scope.ClubID,
		UserID: scope.UserID,
		Scores: in.Scores.model(),
		Notes:  in.Notes.model(),
		Rating: in.Rating,
	}

	if in.MeetingBourbonID != "" {
		pourID, _ := primitive.ObjectIDFromHex(in.MeetingBourbonID)
		pour, err := h.Meetings.GetPour(ctx, scope.ClubID, pourID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.NotFound(w, "meeting pour")
			return
		}
		if err != nil {
			uierrors.Internal(w, r, h.Log, "load pour failed", err)
			return
		}
		if in.BourbonID != "" {
			named, err := primitive.ObjectIDFromHex(in.BourbonID)
			if err != nil || named != pour.BourbonID {
				uierrors.Invalid(w, errors.New("bourbonId does not match the meeting pour"))
				return
			}
		}
		rev.MeetingBourbonID = &pour.ID
		rev.BourbonID = pour.BourbonID
	} else {
		rev.BourbonID, _ = primitive.ObjectIDFromHex(in.BourbonID)
	}

	if _, err := h.Bourbons.GetByID(ctx, scope.ClubID, rev.BourbonID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.NotFound(w, "bourbon")
			return
		}
		uierrors.Internal(w, r, h.Log, "load bourbon failed", err)
		return
	}

	created, err := h.Reviews.Create(ctx, rev)
	switch {
	case errors.Is(err, reviewstore.ErrInvalidReview):
		uierrors.Invalid(w, err)
		return
	case errors.Is(err, reviewstore.ErrDuplicateReview):
		uierrors.Conflict(w, err.Error())
		return
	case err != nil:
		uierrors.Internal(w, r, h.Log, "create review failed", err)
		return
	}

	h.Log.Info("review created",
		zap.String("club_id", scope.ClubID.Hex()),
		zap.String("review_id", created.ID.Hex()),
		zap.Bool("standalone", created.Standalone))
	jsonutil.Write(w, http.StatusCreated, created)
}
