package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/bourbonclub/internal/app/system/auth"
	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithUser adds a signed-in user to the request context.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, userID primitive.ObjectID, clubID *primitive.ObjectID) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{ID: userID, Name: "Test User", ClubID: clubID})
}

// WithScope adds a signed-in user and a resolved club to the request context,
// as the session and tenant middleware would.
func WithScope(r *http.Request, userID, clubID primitive.ObjectID) *http.Request {
	r = WithUser(r, userID, &clubID)
	return tenant.WithScope(r, tenant.Scope{UserID: userID, ClubID: clubID})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request with a JSON body.
func NewJSONRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
