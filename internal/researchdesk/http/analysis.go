package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
)

type AnalysisHandler struct {
	AnalysisService *service.AnalysisService
	MaxBodyBytes    int64
	MaxUploadBytes  int64
}

// HandleAnalyze godoc
//
//	@Summary		Analyze a paper
//	@Description	Sends the text, or the text of an uploaded PDF, to the language model for a structured review.
//	@Description	Text beyond 25000 characters is truncated.
//	@Tags			Analysis
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			request	body		researchsdk.AnalysisRequest	false	"Text to analyze"
//	@Param			file	formData	file						false	"PDF document"
//	@Param			text	formData	string						false	"Text to analyze"
//	@Success		200		{object}	researchsdk.AnalysisResponse
//	@Failure		400		{object}	researchsdk.ErrorResponse	"Text content or valid PDF file is required."
//	@Failure		401		{object}	researchsdk.ErrorResponse
//	@Failure		500		{object}	researchsdk.ErrorResponse	"Failed to analyze paper."
//	@Security		BearerAuth
//	@Router			/api/analysis [post].
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.AnalysisService.Analyze, func(out string) any {
		return researchsdk.AnalysisResponse{Analysis: out}
	})
}

// HandlePlagiarism godoc
//
//	@Summary		Check for plagiarism
//	@Description	Asks the language model to assess the text, or the text of an uploaded PDF, for plagiarism.
//	@Tags			Analysis
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			request	body		researchsdk.AnalysisRequest	false	"Text to check"
//	@Param			file	formData	file						false	"PDF document"
//	@Param			text	formData	string						false	"Text to check"
//	@Success		200		{object}	researchsdk.PlagiarismResponse
//	@Failure		400		{object}	researchsdk.ErrorResponse	"Text content or valid PDF file is required."
//	@Failure		401		{object}	researchsdk.ErrorResponse
//	@Failure		500		{object}	researchsdk.ErrorResponse	"Failed to check plagiarism."
//	@Security		BearerAuth
//	@Router			/api/analysis/plagiarism [post].
func (h *AnalysisHandler) HandlePlagiarism(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.AnalysisService.CheckPlagiarism, func(out string) any {
		return researchsdk.PlagiarismResponse{Result: out}
	})
}

func (h *AnalysisHandler) run(
	w http.ResponseWriter,
	r *http.Request,
	call func(context.Context, service.AnalysisInput) (string, error),
	wrap func(string) any,
) {
	defer removeMultipart(r)

	in, err := h.readInput(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	out, err := call(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wrap(out))
}

// readInput accepts a JSON {text} body or a multipart form with a text
// field and an optional file part.
func (h *AnalysisHandler) readInput(w http.ResponseWriter, r *http.Request) (service.AnalysisInput, error) {
	if !httpx.IsMultipart(r) {
		var req researchsdk.AnalysisRequest
		if err := httpx.DecodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
			return service.AnalysisInput{}, err
		}
		return service.AnalysisInput{Text: req.Text}, nil
	}

	if err := parseMultipart(w, r, h.MaxUploadBytes); err != nil {
		return service.AnalysisInput{}, err
	}
	file, err := formFile(r, "file")
	if err != nil {
		return service.AnalysisInput{}, err
	}
	return service.AnalysisInput{Text: r.FormValue("text"), File: file}, nil
}
