// internal/app/features/meetings/list.go
package meetings

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type meetingRow struct {
	models.Meeting
	MyRSVP string `json:"myRsvp,omitempty"`
}

// ServeList handles GET /meetings: the club's meetings, oldest first, each
// with the caller's RSVP status.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meetings list")
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
	status := make(map[string]string, len(rsvps))
	for _, rv := range rsvps {
		status[rv.MeetingID.Hex()] = rv.Status
	}

	out := make([]meetingRow, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, meetingRow{Meeting: m, MyRSVP: status[m.ID.Hex()]})
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{"meetings": out})
}

type viewResponse struct {
	Meeting models.Meeting          `json:"meeting"`
	Pours   []models.MeetingBourbon `json:"pours"`
}

// ServeView handles GET /meetings/{id}: one meeting with its pours in order.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meeting view")
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
	pours, err := h.Meetings.ListPours(ctx, m.ID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list pours failed", err)
		return
	}
	if pours == nil {
		pours = []models.MeetingBourbon{}
	}
	jsonutil.Write(w, http.StatusOK, viewResponse{Meeting: m, Pours: pours})
}
