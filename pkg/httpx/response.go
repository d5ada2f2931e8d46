package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// FieldError points at one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// MessageBody is a bare confirmation such as {"message":"Project removed"}.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteJSON writes v as JSON with the given status. Responses carry
// user data, so they are marked uncacheable.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody.
func WriteError(w http.ResponseWriter, status int, code, message string, fields ...FieldError) {
	WriteJSON(w, status, ErrorBody{Message: message, Code: code, Errors: fields})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON reads at most limit bytes of r's body into v. Unknown fields are
// ignored. An empty body leaves v untouched.
func DecodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
}

// IsMultipart reports whether the request carries multipart/form-data.
func IsMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}
