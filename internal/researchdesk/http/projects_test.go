package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/stretchr/testify/require"
)

func TestProjectsCRUD(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("owner@example.com")
	guide := env.register("guide@example.com")
	stranger := env.register("stranger@example.com")

	p := env.createProject(owner.Token, sampleProject("Quantum Widgets"))

	t.Run("created defaults", func(t *testing.T) {
		require.NotEmpty(t, p.ID)
		require.Equal(t, "Idea", p.Status)
		require.Equal(t, "abstract", p.ResearchStep)
		require.Equal(t, owner.ID, p.Owner.ID)
		require.Len(t, p.Collaborators, 1)
		require.Nil(t, p.Deadline)
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/projects", owner.Token, researchsdk.CreateProjectRequest{Name: "x"})
		body := requireError(t, rec, http.StatusBadRequest, researchsdk.ErrorCodeValidation, "Validation failed")
		require.Len(t, body.Errors, 2)
	})

	t.Run("list by collaborator email", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/projects", guide.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[[]researchsdk.Project](t, rec)
		require.Len(t, list, 1)
		require.Equal(t, p.ID, list[0].ID)

		rec = env.do(http.MethodGet, "/api/projects", stranger.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("get resolves owner", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/projects/"+p.ID, stranger.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[researchsdk.Project](t, rec)
		require.Equal(t, researchsdk.ProjectOwner{ID: owner.ID, Name: owner.Name, Email: owner.Email}, got.Owner)
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/projects/01ARZ3NDEKTSV4RRFFQ69G5FAV", owner.Token, nil)
		requireError(t, rec, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Project not found")

		rec = env.do(http.MethodGet, "/api/projects/not-an-id", owner.Token, nil)
		requireError(t, rec, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Project not found")
	})

	t.Run("update by non-owner", func(t *testing.T) {
		status := "Submitted"
		rec := env.do(http.MethodPut, "/api/projects/"+p.ID, guide.Token, researchsdk.UpdateProjectRequest{Status: &status})
		requireError(t, rec, http.StatusUnauthorized, researchsdk.ErrorCodeForbidden, "Not authorized to update this project")
	})

	t.Run("update by owner", func(t *testing.T) {
		status := "In Progress"
		step := "methodology"
		deadline := "2031-01-15"
		none := []researchsdk.Collaborator{}
		rec := env.do(http.MethodPut, "/api/projects/"+p.ID, owner.Token, researchsdk.UpdateProjectRequest{
			Status: &status, ResearchStep: &step, Deadline: &deadline, Collaborators: &none,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[researchsdk.Project](t, rec)
		require.Equal(t, "In Progress", got.Status)
		require.Equal(t, "methodology", got.ResearchStep)
		require.Equal(t, "Quantum Widgets", got.Name)
		require.NotNil(t, got.Deadline)
		require.Equal(t, "2031-01-15", got.Deadline.Format("2006-01-02"))
		require.Empty(t, got.Collaborators)
		require.NotNil(t, got.Collaborators)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "Done"
		rec := env.do(http.MethodPut, "/api/projects/"+p.ID, owner.Token, researchsdk.UpdateProjectRequest{Status: &status})
		body := requireError(t, rec, http.StatusBadRequest, researchsdk.ErrorCodeValidation, "Validation failed")
		require.Equal(t, "status", body.Errors[0].Field)
	})

	t.Run("delete by non-owner", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/api/projects/"+p.ID, stranger.Token, nil)
		requireError(t, rec, http.StatusUnauthorized, researchsdk.ErrorCodeForbidden, "Not authorized to delete this project")
	})

	t.Run("delete", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/api/projects/"+p.ID, owner.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"Project removed"}`, rec.Body.String())

		rec = env.do(http.MethodGet, "/api/projects/"+p.ID, owner.Token, nil)
		requireError(t, rec, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Project not found")
	})
}

func TestProjectsVisibleReadScope(t *testing.T) {
	env := newTestEnv(t, withReadScope(service.ReadScopeVisible))
	owner := env.register("owner@example.com")
	stranger := env.register("stranger@example.com")

	p := env.createProject(owner.Token, sampleProject("Private"))

	rec := env.do(http.MethodGet, "/api/projects/"+p.ID, stranger.Token, nil)
	requireError(t, rec, http.StatusNotFound, researchsdk.ErrorCodeNotFound, "Project not found")

	rec = env.do(http.MethodGet, "/api/projects/"+p.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectSearch(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register("owner@example.com")

	env.createProject(owner.Token, sampleProject("Quantum Widgets"))
	other := sampleProject("Protein Folding")
	other.Description = "graph neural networks"
	env.createProject(owner.Token, other)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Protein Folding", "Quantum Widgets"}},
		{"quantum", []string{"Quantum Widgets"}},
		{"NEURAL graph", []string{"Protein Folding"}},
		{"dr. guide", []string{"Protein Folding", "Quantum Widgets"}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/api/projects/search?q="+urlQuery(tt.query), owner.Token, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var names []string
			for _, p := range decode[[]researchsdk.Project](t, rec) {
				names = append(names, p.Name)
			}
			require.Equal(t, tt.want, names)
		})
	}
}
