// internal/app/features/meetings/create.go
package meetings

import (
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	meetingstore "github.com/dalemusser/bourbonclub/internal/app/store/meetings"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// dateLayouts are accepted for meeting dates. A bare date means midnight UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("date must be RFC 3339 or YYYY-MM-DD")
}

type createInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Location string `json:"location" validate:"max=200"`
	Date     string `json:"date" validate:"required"`
}

// HandleCreate handles POST /meetings.
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
	date, err := parseDate(in.Date)
	if err != nil {
		uierrors.Invalid(w, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meeting create")
	defer cancel()

	m, err := h.Meetings.Create(ctx, scope.ClubID, in.Title, in.Location, date)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "create meeting failed", err)
		return
	}
	h.AuditLog.MeetingCreated(ctx, r, scope.UserID, scope.ClubID, m.ID, m.Title)
	jsonutil.Write(w, http.StatusCreated, m)
}

type pourInput struct {
	BourbonID string `json:"bourbonId" validate:"required,mongodb"`
}

// HandleAddPour handles POST /meetings/{id}/pours. Pours are numbered in the
// order they are added.
func (h *Handler) HandleAddPour(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}
	id, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	var in pourInput
	if err := jsonutil.Decode(r, &in); err != nil {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if err := inputval.Struct(in); err != nil {
		uierrors.Invalid(w, err)
		return
	}
	bourbonID, _ := primitive.ObjectIDFromHex(in.BourbonID)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "meeting add pour")
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
	if _, err := h.Bourbons.GetByID(ctx, scope.ClubID, bourbonID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.NotFound(w, "bourbon")
			return
		}
		uierrors.Internal(w, r, h.Log, "load bourbon failed", err)
		return
	}

	pour, err := h.Meetings.AddPour(ctx, m, bourbonID)
	if errors.Is(err, meetingstore.ErrDuplicatePour) {
		uierrors.Conflict(w, err.Error())
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "add pour failed", err)
		return
	}

	h.AuditLog.PourAdded(ctx, r, scope.UserID, scope.ClubID, m.ID, bourbonID)
	h.Log.Info("pour added",
		zap.String("meeting_id", m.ID.Hex()),
		zap.String("bourbon_id", bourbonID.Hex()),
		zap.Int("position", pour.Position))
	jsonutil.Write(w, http.StatusCreated, pour)
}
