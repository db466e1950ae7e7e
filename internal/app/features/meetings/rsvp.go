// internal/app/features/meetings/rsvp.go
package meetings

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	rsvpstore "github.com/dalemusser/bourbonclub/internal/app/store/rsvps"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/normalize"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type rsvpInput struct {
	Status string `json:"status"`
}

// HandleRSVP handles PUT /meetings/{id}/rsvp. Repeating the call replaces
// the caller's previous status.
func (h *Handler) HandleRSVP(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	var in rsvpInput
	if err := jsonutil.Decode(r, &in); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meeting rsvp")
	defer cancel()

	m, err := h.Meetings.GetByID(ctx, scope.ClubID, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.NotFound(w, "meeting")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load meeting failed", err)
		return
	}

	rv, err := h.RSVPs.Set(ctx, scope.UserID, m, normalize.Status(in.Status))
	if errors.Is(err, rsvpstore.ErrBadStatus) {
		uierrors.Invalid(w, err)
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "set rsvp failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, rv)
}
