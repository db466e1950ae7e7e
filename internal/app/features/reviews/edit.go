// internal/app/features/reviews/edit.go
package reviews

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	reviewstore "github.com/dalemusser/bourbonclub/internal/app/store/reviews"
	"github.com/dalemusser/bourbonclub/internal/app/system/authz"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /reviews/{id}. Only the author may edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}

	var in updateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if err := inputval.Struct(in); err != nil {
		uierrors.Invalid(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "review update")
	defer cancel()

	existing, err := h.Reviews.GetByID(ctx, scope.ClubID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "review")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load review failed", err)
		return
	}
	if existing.UserID != scope.UserID {
		uierrors.Forbidden(w, "Only the author can edit a review.")
		return
	}

	updated, err := h.Reviews.Update(ctx, scope.ClubID, id, reviewstore.Edit{
		Scores: in.Scores.model(),
		Notes:  in.Notes.model(),
		Rating: in.Rating,
	})
	switch {
	case errors.Is(err, reviewstore.ErrInvalidReview):
		uierrors.Invalid(w, err)
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.NotFound(w, "review")
		return
	case err != nil:
		uierrors.Internal(w, r, h.Log, "update review failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /reviews/{id}. The author or a club admin may
// delete; admin removals of other members' reviews are audited.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "review delete")
	defer cancel()

	existing, err := h.Reviews.GetByID(ctx, scope.ClubID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "review")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load review failed", err)
		return
	}

	byAdmin := false
	if existing.UserID != scope.UserID {
		admin, err := authz.IsClubAdmin(ctx, h.Memberships, scope)
		if err != nil {
			uierrors.Internal(w, r, h.Log, "load membership failed", err)
			return
		}
		if !admin {
			uierrors.Forbidden(w, "Only the author or a club admin can delete a review.")
			return
		}
		byAdmin = true
	}

	if err := h.Reviews.Delete(ctx, scope.ClubID, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.NotFound(w, "review")
			return
		}
		uierrors.Internal(w, r, h.Log, "delete review failed", err)
		return
	}

	if byAdmin {
		h.AuditLog.ReviewRemoved(ctx, r, scope.UserID, scope.ClubID, existing.UserID, id)
	}
	h.Log.Info("review deleted",
		zap.String("club_id", scope.ClubID.Hex()),
		zap.String("review_id", id.Hex()),
		zap.Bool("by_admin", byAdmin))
	w.WriteHeader(http.StatusNoContent)
}
