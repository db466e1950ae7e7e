// internal/app/features/bourbons/compare.go
package bourbons

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/engine/compare"
	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/system/enginemetrics"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/normalize"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeCompare handles GET /bourbons/compare?ids=a,b[,c,d].
//
// Ids that name no bourbon in the caller's club are dropped from the result.
func (h *Handler) ServeCompare(w http.ResponseWriter, r *http.Request) {
	scope, ok := uierrors.Scope(w, r)
	if !ok {
		return
	}

	var ids []primitive.ObjectID
	for _, s := range normalize.IDList(r.URL.Query().Get("ids")) {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			uierrors.BadRequest(w, "invalid bourbon id: "+s)
			return
		}
		ids = append(ids, id)
	}
	ids = compare.Distinct(ids)
	if len(ids) < compare.MinSelection || len(ids) > compare.MaxSelection {
		uierrors.BadRequest(w, compare.ErrSelectionSize.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "bourbon compare")
	defer cancel()

	bourbons, err := h.Bourbons.ListByIDs(ctx, scope.ClubID, ids)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load bourbons failed", err)
		return
	}
	reviews, err := h.Reviews.ListByBourbons(ctx, scope.ClubID, ids)
	if err != nil {
		uierrors.Internal(w, r, h.Log, "load reviews failed", err)
		return
	}

	start := time.Now()
	res, err := compare.Compare(ids, bourbons, reviews)
	enginemetrics.ObserveEngine("compare", len(reviews), time.Since(start))
	if errors.Is(err, compare.ErrSelectionSize) {
		uierrors.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		uierrors.Internal(w, r, h.Log, "compare failed", err)
		return
	}
	jsonutil.Write(w, http.StatusOK, res)
}
