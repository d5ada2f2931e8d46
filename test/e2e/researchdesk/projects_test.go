package researchdesk_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/app"
	"github.com/aussiebroadwan/researchdesk/pkg/pdfx/pdfxtest"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/stretchr/testify/require"
)

func TestProjectWorkflow(t *testing.T) {
	srv := startServer(t)
	ctx := t.Context()

	owner := registerResearcher(t, srv.client, "olivia@example.com")
	guide := registerGuide(t, srv.client, "gus@example.com")
	outsider := registerResearcher(t, srv.client, "oscar@example.com")

	deadline := time.Now().UTC().AddDate(0, 2, 0).Format(time.DateOnly)
	p, err := owner.CreateProject(ctx, researchsdk.CreateProjectRequest{
		Name:        "Sparse Attention",
		Description: "Cheaper transformers",
		Track:       "AI",
		Format:      "ACM",
		Conference:  "ICLR",
		Deadline:    deadline,
		Collaborators: []researchsdk.Collaborator{
			{Name: "Gus", Email: "GUS@example.com", Role: "guide", Organization: "Uni"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Idea", p.Status)
	require.Equal(t, "abstract", p.ResearchStep)
	require.Equal(t, owner.User().ID, p.Owner.ID)
	require.NotNil(t, p.Deadline)

	t.Run("collaborator sees it", func(t *testing.T) {
		list, err := guide.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, p.ID, list[0].ID)

		got, err := guide.GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, "olivia@example.com", got.Owner.Email)
	})

	t.Run("outsider list is empty", func(t *testing.T) {
		list, err := outsider.ListProjects(ctx)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("only the owner updates", func(t *testing.T) {
		_, err := guide.UpdateProject(ctx, p.ID, researchsdk.UpdateProjectRequest{Status: ptr("Submitted")})
		require.True(t, researchsdk.IsUnauthorized(err), "%v", err)

		got, err := owner.UpdateProject(ctx, p.ID, researchsdk.UpdateProjectRequest{
			Status:       ptr("In Progress"),
			ResearchStep: ptr("methodology"),
			Conference:   ptr(""),
		})
		require.NoError(t, err)
		require.Equal(t, "In Progress", got.Status)
		require.Equal(t, "methodology", got.ResearchStep)
		require.Empty(t, got.Conference)
		require.Equal(t, "Sparse Attention", got.Name)

		_, err = owner.UpdateProject(ctx, p.ID, researchsdk.UpdateProjectRequest{Status: ptr("Done")})
		require.True(t, researchsdk.IsValidation(err), "%v", err)
	})

	t.Run("search", func(t *testing.T) {
		hits, err := guide.SearchProjects(ctx, "sparse")
		require.NoError(t, err)
		require.Len(t, hits, 1)

		hits, err = outsider.SearchProjects(ctx, "sparse")
		require.NoError(t, err)
		require.Empty(t, hits)
	})

	t.Run("directory and stats", func(t *testing.T) {
		entries, err := owner.Collaborators(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "gus@example.com", strings.ToLower(entries[0].Email))
		require.Equal(t, 1, entries[0].ProjectCount)

		stats, err := owner.DashboardStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, stats.TotalProjects)
		require.Equal(t, 1, stats.ByStatus["In Progress"])
		require.Equal(t, 1, stats.ByResearchStep["methodology"])
		require.Equal(t, 1, stats.Collaborators)
		require.Len(t, stats.UpcomingDeadlines, 1)
	})

	t.Run("paper", func(t *testing.T) {
		_, err := owner.PaperURL(ctx, p.ID)
		require.True(t, researchsdk.IsNotFound(err), "%v", err)

		got, err := owner.UploadPaper(ctx, p.ID, "paper.pdf", pdfxtest.Build("Sparse attention paper"))
		require.NoError(t, err)
		require.Equal(t, "/api/projects/"+p.ID+"/paper", got.PaperURL)

		link, err := guide.PaperURL(ctx, p.ID)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(link, "https://papers.e2e.test/"), link)
	})

	t.Run("delete", func(t *testing.T) {
		err := guide.DeleteProject(ctx, p.ID)
		require.True(t, researchsdk.IsUnauthorized(err), "%v", err)

		require.NoError(t, owner.DeleteProject(ctx, p.ID))

		_, err = owner.GetProject(ctx, p.ID)
		require.True(t, researchsdk.IsNotFound(err), "%v", err)
		require.True(t, researchsdk.IsStatus(owner.DeleteProject(ctx, p.ID), http.StatusNotFound))
	})
}

func TestVisibleReadScope(t *testing.T) {
	srv := startServer(t, func(c *app.Config) { c.ProjectReadScope = "visible" })
	ctx := t.Context()

	owner := registerResearcher(t, srv.client, "olivia@example.com")
	outsider := registerResearcher(t, srv.client, "oscar@example.com")

	p, err := owner.CreateProject(ctx, researchsdk.CreateProjectRequest{Name: "Private", Track: "HCI", Format: "IEEE"})
	require.NoError(t, err)

	_, err = outsider.GetProject(ctx, p.ID)
	require.True(t, researchsdk.IsNotFound(err), "%v", err)
}

func TestAnalysis(t *testing.T) {
	srv := startServer(t)
	ctx := t.Context()
	s := registerResearcher(t, srv.client, "ana@example.com")

	out, err := s.Analyze(ctx, "Our method improves recall.")
	require.NoError(t, err)
	require.Equal(t, "## Report\nreviewed", out)
	require.Contains(t, srv.llm.prompt(), "Our method improves recall.")

	out, err = s.CheckPlagiarismPDF(ctx, "draft.pdf", pdfxtest.Build("Borrowed sentences"))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Contains(t, srv.llm.prompt(), "Borrowed sentences")

	_, err = s.AnalyzePDF(ctx, "empty.pdf", []byte("not a pdf at all"))
	require.Error(t, err)

	_, err = s.CheckPlagiarism(ctx, "   ")
	require.True(t, researchsdk.IsStatus(err, http.StatusBadRequest), "%v", err)
}
