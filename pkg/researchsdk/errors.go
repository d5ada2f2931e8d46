package researchsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes sent in ErrorResponse.Code.
const (
	ErrorCodeValidation         = "validation_failed"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeBadRequest         = "bad_request"
	ErrorCodeUnsupportedFile    = "unsupported_file"
	ErrorCodeExternalService    = "external_service_error"
	ErrorCodeUnavailable        = "unavailable"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "researchdesk: %d", e.StatusCode)
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "; %s: %s", f.Field, f.Message)
	}
	return b.String()
}

// Field returns the validation message for field, if any.
func (e *APIError) Field(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func IsNotFound(err error) bool     { return IsStatus(err, http.StatusNotFound) }
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrorCodeValidation
}

// parseErrorResponse turns a failed response into an *APIError. Bodies that
// are not the usual JSON shape keep the status text as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		apiErr.Code = errResp.Code
		apiErr.Message = errResp.Message
		apiErr.Fields = errResp.Errors
		return apiErr
	}

	apiErr.Code = ErrorCodeServerError
	apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	return apiErr
}
