package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

// writeServiceError maps service errors onto status codes and messages.
// Anything unrecognised is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var (
		validationErr *service.ValidationError
		forbiddenErr  *service.ForbiddenError
		externalErr   *service.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		fields := make([]httpx.FieldError, len(validationErr.Fields))
		for i, f := range validationErr.Fields {
			fields[i] = httpx.FieldError{Field: f.Field, Message: f.Message}
		}
		httpx.WriteError(w, http.StatusBadRequest, researchsdk.ErrorCodeValidation, "Validation failed", fields...)

	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusBadRequest, researchsdk.ErrorCodeConflict, "User already exists")

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, researchsdk.ErrorCodeInvalidCredentials, "Invalid email or password")

	case errors.As(err, &forbiddenErr):
		httpx.WriteError(w, http.StatusUnauthorized, researchsdk.ErrorCodeForbidden,
			"Not authorized to "+forbiddenErr.Action+" this project")

	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusUnauthorized, researchsdk.ErrorCodeForbidden, "Not authorized")

	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "User not found")

	case errors.Is(err, service.ErrProjectNotFound):
		httpx.WriteError(w, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Project not found")

	case errors.Is(err, service.ErrPaperNotFound):
		httpx.WriteError(w, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Paper not found")

	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Not found")

	case errors.Is(err, service.ErrNoText):
		httpx.WriteError(w, http.StatusBadRequest, researchsdk.ErrorCodeBadRequest, "Text content or valid PDF file is required.")

	case errors.Is(err, service.ErrUnsupportedFile):
		httpx.WriteError(w, http.StatusBadRequest, researchsdk.ErrorCodeUnsupportedFile, "Only PDF files are supported for now.")

	case errors.Is(err, service.ErrStorageDisabled):
		httpx.WriteError(w, http.StatusServiceUnavailable, researchsdk.ErrorCodeUnavailable, "Paper storage is not configured")

	case errors.As(err, &externalErr):
		log.Error("external service failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, researchsdk.ErrorCodeExternalService, externalErr.Message)

	default:
		log.Error("unhandled service error", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, researchsdk.ErrorCodeServerError, "Internal Server Error")
	}
}

// writeDecodeError answers a body that could not be read.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, httpx.ErrBodyTooLarge) {
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, researchsdk.ErrorCodeBadRequest, "Request body too large")
		return
	}
	httpx.WriteError(w, http.StatusBadRequest, researchsdk.ErrorCodeBadRequest, "Invalid request body")
}
