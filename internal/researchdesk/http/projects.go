package http

import (
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
)

type ProjectsHandler struct {
	ProjectService *service.ProjectService
	SearchService  *service.SearchService
	MaxBodyBytes   int64
}

// HandleList godoc
//
//	@Summary		List projects
//	@Description	Returns the projects the caller owns or collaborates on, newest first.
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{array}		researchsdk.Project
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.ProjectService.ListForUser(r.Context(), identityFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjects(ps))
}

// HandleCreate godoc
//
//	@Summary		Create a project
//	@Description	Creates a project owned by the caller with status Idea.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		researchsdk.CreateProjectRequest	true	"Project"
//	@Success		201		{object}	researchsdk.Project
//	@Failure		400		{object}	researchsdk.ErrorResponse
//	@Failure		401		{object}	researchsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CreateProjectInput
	if err := httpx.DecodeJSON(w, r, h.MaxBodyBytes, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.ProjectService.Create(r.Context(), identityFrom(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProject(p))
}

// HandleGet godoc
//
//	@Summary		Get a project
//	@Description	Returns one project with its owner resolved.
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	researchsdk.Project
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Failure		404	{object}	researchsdk.ErrorResponse	"Project not found"
//	@Security		BearerAuth
//	@Router			/api/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProjectService.GetByID(r.Context(), identityFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProject(p))
}

// HandleUpdate godoc
//
//	@Summary		Update a project
//	@Description	Overwrites the supplied fields. A supplied collaborators list replaces the old one. Owner only.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Project id"
//	@Param			request	body		researchsdk.UpdateProjectRequest	true	"Fields to change"
//	@Success		200		{object}	researchsdk.Project
//	@Failure		400		{object}	researchsdk.ErrorResponse
//	@Failure		401		{object}	researchsdk.ErrorResponse	"Not authorized to update this project"
//	@Failure		404		{object}	researchsdk.ErrorResponse	"Project not found"
//	@Security		BearerAuth
//	@Router			/api/projects/{id} [put].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateProjectInput
	if err := httpx.DecodeJSON(w, r, h.MaxBodyBytes, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.ProjectService.Update(r.Context(), identityFrom(r), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProject(p))
}

// HandleDelete godoc
//
//	@Summary		Delete a project
//	@Description	Removes the project, its collaborators and its stored paper. Owner only.
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	researchsdk.MessageResponse	"Project removed"
//	@Failure		401	{object}	researchsdk.ErrorResponse	"Not authorized to delete this project"
//	@Failure		404	{object}	researchsdk.ErrorResponse	"Project not found"
//	@Security		BearerAuth
//	@Router			/api/projects/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProjectService.Delete(r.Context(), identityFrom(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, researchsdk.MessageResponse{Message: "Project removed"})
}

// HandleSearch godoc
//
//	@Summary		Search projects
//	@Description	Full-text search over the caller's projects. An empty query lists them all.
//	@Tags			Projects
//	@Produce		json
//	@Param			q	query		string	false	"Search terms"
//	@Success		200	{array}		researchsdk.Project
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/projects/search [get].
func (h *ProjectsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ps, err := h.SearchService.Search(r.Context(), identityFrom(r), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjects(ps))
}
