// internal/app/features/bourbons/create.go
package bourbons

import (
	"net/http"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/timeouts"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"go.uber.org/zap"
)

type createInput struct {
	Name       string   `json:"name" validate:"required,max=200"`
	Distillery string   `json:"distillery" validate:"max=200"`
	Type       string   `json:"type" validate:"max=100"`
	Region     string   `json:"region" validate:"max=100"`
	Price      *float64 `json:"price" validate:"omitempty,gte=0"`
	Cost       *float64 `json:"cost" validate:"omitempty,gte=0"`
	Proof      *float64 `json:"proof" validate:"omitempty,gte=0,lte=200"`
	Age        *float64 `json:"age" validate:"omitempty,gte=0"`
}

// HandleCreate handles POST /bourbons.
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "bourbon create")
	defer cancel()

	b, err := h.Bourbons.Create(ctx, scope.ClubID, models.Bourbon{
		Name:       in.Name,
		Distillery: in.Distillery,
		Type:       in.Type,
		Region:     in.Region,
		Price:      in.Price,
		Cost:       in.Cost,
		Proof:      in.Proof,
		Age:        in.Age,
	})
	if err != nil {
		uierrors.Internal(w, r, h.Log, "create bourbon failed", err)
		return
	}

	h.AuditLog.BourbonAdded(ctx, r, scope.UserID, scope.ClubID, b.ID, b.Name)
	h.Log.Info("bourbon added",
		zap.String("club_id", scope.ClubID.Hex()),
		zap.String("bourbon_id", b.ID.Hex()),
		zap.String("name", b.Name))
	jsonutil.Write(w, http.StatusCreated, b)
}
