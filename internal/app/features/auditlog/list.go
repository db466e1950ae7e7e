// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/store/audit"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/normalize"
	"github.com/dalemusser/bourbonclub/internal/app/system/paging"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /audit: the current club's audit events, newest
// first, filtered by category, event_type, start_date and end_date.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit log list")
	defer cancel()

	q := r.URL.Query()
	category := normalize.QueryParam(q.Get("category"))
	eventType := normalize.QueryParam(q.Get("event_type"))

	page := paging.ParsePage(r)

	filter := audit.QueryFilter{
		ClubID:    &scope.ClubID,
		Category:  category,
		EventType: eventType,
		Limit:     paging.Limit(),
		Offset:    paging.Offset(page),
	}
	if s := normalize.QueryParam(q.Get("start_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			uierrors.BadRequest(w, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartTime = &t
	}
	if s := normalize.QueryParam(q.Get("end_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			uierrors.BadRequest(w, "end_date must be YYYY-MM-DD")
			return
		}
		// end of day
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &end
	}

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "query audit events failed", err)
		return
	}
	total, err := h.Audit.CountByFilter(ctx, filter)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "count audit events failed", err)
		return
	}

	// Batch-resolve actor and target names
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, e := range events {
		for _, id := range []*primitive.ObjectID{e.ActorID, e.UserID} {
			if id != nil && !seen[*id] {
				seen[*id] = true
				ids = append(ids, *id)
			}
		}
	}
	names, err := h.Users.NamesByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("failed to fetch user names for audit log", zap.Error(err))
		names = nil
	}
	nameOf := func(id *primitive.ObjectID) string {
		if id == nil {
			return ""
		}
		if n, ok := names[*id]; ok {
			return n
		}
		return id.Hex()
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, listItem{
			ID:         e.ID.Hex(),
			Timestamp:  e.Timestamp,
			Category:   e.Category,
			EventType:  e.EventType,
			ActorName:  nameOf(e.ActorID),
			TargetName: nameOf(e.UserID),
			IP:         e.IP,
			Success:    e.Success,
			Details:    e.Details,
		})
	}

	jsonutil.Write(w, http.StatusOK, listData{
		Items:      items,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
		Page:       page,
		TotalPages: paging.TotalPages(total),
		Total:      total,
	})
}
