package http

import (
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
)

type DirectoryHandler struct {
	DirectoryService *service.DirectoryService
}

// HandleCollaborators godoc
//
//	@Summary		Collaborator directory
//	@Description	Lists everyone named as a collaborator on the caller's projects, deduplicated by email and sorted by name.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{array}		researchsdk.DirectoryEntry
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/collaborators [get].
func (h *DirectoryHandler) HandleCollaborators(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DirectoryService.Collaborators(r.Context(), identityFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDirectory(entries))
}

// HandleStats godoc
//
//	@Summary		Dashboard statistics
//	@Description	Counts the caller's projects by status and research step and lists the next five deadlines.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{object}	researchsdk.DashboardStats
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/dashboard/stats [get].
func (h *DirectoryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.DirectoryService.Stats(r.Context(), identityFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStats(st))
}
