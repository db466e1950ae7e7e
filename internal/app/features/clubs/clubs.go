// internal/app/features/clubs/clubs.go
package clubs

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/system/auth"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type clubRow struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Role    string             `json:"role"`
	Current bool               `json:"current"`
}

func currentUser(w http.ResponseWriter, r *http.Request) (*auth.SessionUser, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
	}
	return u, ok
}

// ServeList handles GET /clubs: every club the caller belongs to, by name,
// with the caller's role and which one is current.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "clubs list")
	defer cancel()

	current := u.ClubID
	if current == nil {
		stored, err := h.Users.CurrentClubID(ctx, u.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.Internal(w, r, h.Log, "load current club failed", err)
			return
		}
		current = stored
	}

	memberships, err := h.Memberships.ListByUser(ctx, u.ID)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list memberships failed", err)
		return
	}
	roles := make(map[primitive.ObjectID]string, len(memberships))
	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		roles[m.ClubID] = m.Role
		ids = append(ids, m.ClubID)
	}

	clubs, err := h.Clubs.ListByIDs(ctx, ids)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "list clubs failed", err)
		return
	}
	out := make([]clubRow, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, clubRow{
			ID:      c.ID,
			Name:    c.Name,
			Role:    roles[c.ID],
			Current: current != nil && *current == c.ID,
		})
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{"clubs": out})
}

// HandleSelect handles POST /clubs/{id}/select. The club becomes current
// both in storage and in the session cookie.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	clubID, ok := uierrors.PathID(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "club select")
	defer cancel()

	m, err := tenant.Switch(ctx, h.Memberships, h.Users, u.ID, clubID)
	if errors.Is(err, tenant.ErrNotMember) {
		uierrors.Forbidden(w, "You are not a member of that club.")
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "switch club failed", err)
		return
	}
	if err := h.Sessions.SetClub(w, r, clubID); err != nil {
		uierrors.Internal(w, r, h.Log, "save session club failed", err)
		return
	}

	h.AuditLog.ClubSwitched(ctx, r, u.ID, clubID)
	h.Log.Info("club switched",
		zap.String("user_id", u.ID.Hex()),
		zap.String("club_id", clubID.Hex()))
	jsonutil.Write(w, http.StatusOK, map[string]any{"clubId": clubID, "role": m.Role})
}
