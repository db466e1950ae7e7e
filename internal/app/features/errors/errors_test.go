package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/bourbonclub/internal/app/features/errors"
	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) jsonutil.ErrorBody {
	t.Helper()
	var body jsonutil.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	return body
}

func TestInvalid_FieldErrorsBecomeDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.Invalid(rec, inputval.Errors{{Field: "nose", Tag: "max", Message: "nose must be at most 10"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decode(t, rec)
	if body.Error != uierrors.CodeValidation || body.Details == nil {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestInternal_LogsOnce(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)

	uierrors.Internal(rec, req, zap.New(core), "leaderboard failed", fmt.Errorf("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["path"]; got != "/leaderboard" {
		t.Errorf("path field: got %v", got)
	}
	if body := decode(t, rec); body.Message == "boom" {
		t.Error("internal error text must not leak to the client")
	}
}

func TestScope(t *testing.T) {
	rec := httptest.NewRecorder()
	if _, ok := uierrors.Scope(rec, httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("expected no scope")
	}
	if rec.Code != http.StatusForbidden || decode(t, rec).Error != uierrors.CodeNoClub {
		t.Errorf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	user, club := primitive.NewObjectID(), primitive.NewObjectID()
	req := testutil.WithScope(httptest.NewRequest(http.MethodGet, "/", nil), user, club)
	s, ok := uierrors.Scope(httptest.NewRecorder(), req)
	if !ok || s.ClubID != club || s.UserID != user {
		t.Errorf("scope: got %+v, %v", s, ok)
	}
}

func TestPathID(t *testing.T) {
	id := primitive.NewObjectID()
	tests := []struct {
		name   string
		value  string
		wantOK bool
	}{
		{"valid", id.Hex(), true},
		{"garbage", "not-an-id", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)
			got, ok := uierrors.PathID(rec, req, "id")
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && got != id {
				t.Errorf("id: got %s", got.Hex())
			}
			if !ok && rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d", rec.Code)
			}
		})
	}
}
