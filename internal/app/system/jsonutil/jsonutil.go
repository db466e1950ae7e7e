// Package jsonutil reads and writes JSON request and response bodies.
package jsonutil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/goccy/go-json"
)

// MaxBodyBytes caps request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by Decode for a request with no body.
var ErrEmptyBody = errors.New("request body is empty")

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encode","message":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes an ErrorBody.
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, ErrorBody{Error: code, Message: message})
}

// ErrorWithDetails writes an ErrorBody carrying details, such as field
// validation errors.
func ErrorWithDetails(w http.ResponseWriter, status int, code, message string, details any) {
	Write(w, status, ErrorBody{Error: code, Message: message, Details: details})
}

// Decode reads one JSON value from the request body into dst, which must be
// a non-nil pointer. Unknown fields are rejected. dst is left untouched when
// decoding fails.
func Decode(r *http.Request, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode body: destination must be a non-nil pointer, got %T", dst)
	}
	if r.Body == nil {
		return ErrEmptyBody
	}
	tmp := reflect.New(rv.Elem().Type())
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(tmp.Interface()); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode body: %w", err)
	}
	rv.Elem().Set(tmp.Elem())
	return nil
}
