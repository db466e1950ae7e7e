// internal/app/features/errors/errors.go
//
// Package errors writes the JSON error responses shared by every feature
// handler. Importers alias it as uierrors.
package errors

import (
	"errors"
	"net/http"

	"github.com/dalemusser/bourbonclub/internal/app/system/inputval"
	"github.com/dalemusser/bourbonclub/internal/app/system/jsonutil"
	"github.com/dalemusser/bourbonclub/internal/app/system/requestid"
	"github.com/dalemusser/bourbonclub/internal/app/system/tenant"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Error codes carried in the "error" field of every error body.
const (
	CodeBadRequest = "bad_request"
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeForbidden  = "forbidden"
	CodeConflict   = "conflict"
	CodeNoClub     = "no_club"
	CodeInternal   = "internal"
)

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, msg string) {
	jsonutil.Error(w, http.StatusBadRequest, CodeBadRequest, msg)
}

// Invalid reports failed input rules. Field errors from inputval are passed
// through as details.
func Invalid(w http.ResponseWriter, err error) {
	var fields inputval.Errors
	if errors.As(err, &fields) {
		jsonutil.ErrorWithDetails(w, http.StatusUnprocessableEntity, CodeValidation, "Some fields are invalid.", fields)
		return
	}
	jsonutil.Error(w, http.StatusUnprocessableEntity, CodeValidation, err.Error())
}

// NotFound reports a missing record. Records outside the caller's club are
// reported the same way.
func NotFound(w http.ResponseWriter, what string) {
	jsonutil.Error(w, http.StatusNotFound, CodeNotFound, what+" not found")
}

// Forbidden reports an action the caller may not take.
func Forbidden(w http.ResponseWriter, msg string) {
	jsonutil.Error(w, http.StatusForbidden, CodeForbidden, msg)
}

// Conflict reports a uniqueness violation.
func Conflict(w http.ResponseWriter, msg string) {
	jsonutil.Error(w, http.StatusConflict, CodeConflict, msg)
}

// Internal logs err once, tagged with the request id, and writes a generic
// 500.
func Internal(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	log.Error(msg,
		zap.Error(err),
		zap.String("request_id", requestid.FromContext(r.Context())),
		zap.String("path", r.URL.Path))
	jsonutil.Error(w, http.StatusInternalServerError, CodeInternal, "Something went wrong. Please try again.")
}

// Scope returns the resolved club scope. Routes are mounted behind the
// tenant middleware, so a missing scope is answered with 403.
func Scope(w http.ResponseWriter, r *http.Request) (tenant.Scope, bool) {
	s, ok := tenant.FromRequest(r)
	if !ok {
		jsonutil.Error(w, http.StatusForbidden, CodeNoClub, "Join a club to continue.")
	}
	return s, ok
}

// PathID parses the named chi URL parameter as an ObjectID. On failure it
// writes a 400 and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		BadRequest(w, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}
