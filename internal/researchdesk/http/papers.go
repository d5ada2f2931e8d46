package http

import (
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
)

type PapersHandler struct {
	PaperService   *service.PaperService
	MaxUploadBytes int64
}

// HandleUpload godoc
//
//	@Summary		Upload a paper
//	@Description	Stores a PDF as the project's paper and points paperUrl at the download route. Owner only.
//	@Tags			Papers
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Project id"
//	@Param			file	formData	file	true	"PDF document"
//	@Success		200		{object}	researchsdk.Project
//	@Failure		400		{object}	researchsdk.ErrorResponse	"Only PDF files are supported for now."
//	@Failure		401		{object}	researchsdk.ErrorResponse	"Not authorized to update this project"
//	@Failure		404		{object}	researchsdk.ErrorResponse	"Project not found"
//	@Failure		413		{object}	researchsdk.ErrorResponse
//	@Failure		503		{object}	researchsdk.ErrorResponse	"Paper storage is not configured"
//	@Security		BearerAuth
//	@Router			/api/projects/{id}/paper [post].
func (h *PapersHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !h.PaperService.Enabled() {
		writeServiceError(w, r, service.ErrStorageDisabled)
		return
	}

	if err := parseMultipart(w, r, h.MaxUploadBytes); err != nil {
		writeDecodeError(w, err)
		return
	}
	defer removeMultipart(r)

	file, err := formFile(r, "file")
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	if file == nil {
		httpx.WriteError(w, http.StatusBadRequest, researchsdk.ErrorCodeValidation, "Validation failed",
			httpx.FieldError{Field: "file", Message: "Required"})
		return
	}

	p, err := h.PaperService.Upload(r.Context(), identityFrom(r), r.PathValue("id"), *file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProject(p))
}

// HandleDownload godoc
//
//	@Summary		Download a paper
//	@Description	Redirects to a short-lived signed URL for the project's paper.
//	@Tags			Papers
//	@Param			id	path	string	true	"Project id"
//	@Success		307
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Failure		404	{object}	researchsdk.ErrorResponse	"Project not found or Paper not found"
//	@Failure		503	{object}	researchsdk.ErrorResponse	"Paper storage is not configured"
//	@Security		BearerAuth
//	@Router			/api/projects/{id}/paper [get].
func (h *PapersHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	url, err := h.PaperService.DownloadURL(r.Context(), identityFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
