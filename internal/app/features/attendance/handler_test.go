package attendance_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/bourbonclub/internal/app/engine/streaks"
	"github.com/dalemusser/bourbonclub/internal/app/features/attendance"
	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeStreak(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := attendance.NewHandler(db, zap.NewNop())
	handler.Now = func() time.Time { return testutil.Date(2026, 6, 1) }
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Club")
	other := fixtures.CreateClub(ctx, "Other")
	user := fixtures.CreateMember(ctx, "Regular", club.ID)

	// Jan going, Feb no RSVP, Mar going, Apr maybe, May not going, Jul (future) going
	jan := fixtures.CreateMeeting(ctx, club.ID, "Jan", testutil.Date(2026, 1, 15))
	fixtures.CreateMeeting(ctx, club.ID, "Feb", testutil.Date(2026, 2, 15))
	mar := fixtures.CreateMeeting(ctx, club.ID, "Mar", testutil.Date(2026, 3, 15))
	apr := fixtures.CreateMeeting(ctx, club.ID, "Apr", testutil.Date(2026, 4, 15))
	may := fixtures.CreateMeeting(ctx, club.ID, "May", testutil.Date(2026, 5, 15))
	jul := fixtures.CreateMeeting(ctx, club.ID, "Jul", testutil.Date(2026, 7, 15))
	elsewhere := fixtures.CreateMeeting(ctx, other.ID, "Elsewhere", testutil.Date(2026, 5, 20))

	fixtures.CreateRSVP(ctx, user.ID, jan, models.RSVPGoing)
	fixtures.CreateRSVP(ctx, user.ID, mar, models.RSVPGoing)
	fixtures.CreateRSVP(ctx, user.ID, apr, models.RSVPMaybe)
	fixtures.CreateRSVP(ctx, user.ID, may, models.RSVPNotGoing)
	fixtures.CreateRSVP(ctx, user.ID, jul, models.RSVPGoing)
	fixtures.CreateRSVP(ctx, user.ID, elsewhere, models.RSVPGoing)

	req := testutil.WithScope(testutil.NewRequest("GET", "/attendance/streak"), user.ID, club.ID)
	rec := testutil.NewRecorder()
	handler.ServeStreak(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got streaks.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	want := streaks.Summary{
		CurrentStreak:        0,
		LongestStreak:        2,
		TotalAttended:        3,
		TotalMeetings:        5,
		AttendancePercentage: 60,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestServeStreak_NoMeetings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := attendance.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Quiet Club")
	user := fixtures.CreateMember(ctx, "Newbie", club.ID)

	req := testutil.WithScope(testutil.NewRequest("GET", "/attendance/streak"), user.ID, club.ID)
	rec := testutil.NewRecorder()
	handler.ServeStreak(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var got streaks.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if got != (streaks.Summary{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}
}
