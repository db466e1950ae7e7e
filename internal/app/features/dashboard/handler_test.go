package dashboard_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/bourbonclub/internal/app/features/dashboard"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestServeDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := dashboard.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Rye Society")
	admin := fx.CreateUser(ctx, "Admin", "admin@example.com")
	fx.CreateMembership(ctx, admin.ID, club.ID, models.RoleAdmin)
	fx.CreateMember(ctx, "Member", club.ID)
	fx.CreateBourbon(ctx, club.ID, "Weller", nil, nil)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.WithScope(testutil.NewRequest("GET", "/dashboard"), admin.ID, club.ID))
	rec.AssertStatus(t, http.StatusOK)

	var got struct {
		Club struct {
			Name string `json:"name"`
		} `json:"club"`
		Role   string `json:"role"`
		Counts struct {
			Members  int64 `json:"members"`
			Bourbons int64 `json:"bourbons"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse dashboard: %v", err)
	}
	if got.Club.Name != "Rye Society" || got.Role != models.RoleAdmin {
		t.Errorf("club/role: got %+v", got)
	}
	if got.Counts.Members != 2 || got.Counts.Bourbons != 1 {
		t.Errorf("counts: got %+v", got.Counts)
	}
}

func TestServeDashboard_UnknownClub(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := dashboard.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.WithScope(testutil.NewRequest("GET", "/dashboard"), primitive.NewObjectID(), primitive.NewObjectID()))
	rec.AssertStatus(t, http.StatusNotFound)
}
