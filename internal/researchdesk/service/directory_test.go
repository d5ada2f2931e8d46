package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/stretchr/testify/require"
)

func TestBuildDirectory(t *testing.T) {
	ps := []domain.Project{
		{ID: "p1", Name: "One", Collaborators: []domain.Collaborator{
			{Name: "Zed", Email: "zed@example.com", Role: domain.RoleResearcher},
			{Name: "Amy", Email: "amy@example.com", Role: domain.RoleGuide, Organization: "Uni", Country: "AU"},
			{Name: "Amy Dup", Email: "AMY@example.com", Role: domain.RoleGuide},
		}},
		{ID: "p2", Name: "Two", Collaborators: []domain.Collaborator{
			{Name: "Amy Later", Email: "Amy@Example.com", Role: domain.RoleResearcher},
		}},
		{ID: "p3", Name: "Three"},
	}

	got := buildDirectory(ps)
	require.Len(t, got, 2)

	require.Equal(t, "Amy", got[0].Name)
	require.Equal(t, "amy@example.com", got[0].Email)
	require.Equal(t, domain.RoleGuide, got[0].Role)
	require.Equal(t, "Uni", got[0].Organization)
	require.Equal(t, []ProjectLink{{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"}}, got[0].Projects)

	require.Equal(t, "Zed", got[1].Name)
	require.Len(t, got[1].Projects, 1)

	require.Empty(t, buildDirectory(nil))
	require.NotNil(t, buildDirectory(nil))
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(days int) *time.Time {
		d := now.AddDate(0, 0, days)
		return &d
	}

	ps := []domain.Project{
		{ID: "past", Status: domain.StatusIdea, Deadline: at(-1)},
		{ID: "d10", Status: domain.StatusIdea, ResearchStep: domain.StepResults, Deadline: at(10)},
		{ID: "d2", Status: domain.StatusSubmitted, Deadline: at(2),
			Collaborators: []domain.Collaborator{{Email: "a@example.com"}, {Email: "A@example.com"}, {Email: "b@example.com"}}},
		{ID: "d5", Status: domain.StatusPublished, Deadline: at(5)},
		{ID: "d1", Status: domain.StatusAccepted, Deadline: at(1)},
		{ID: "d30", Status: domain.StatusInProgress, Deadline: at(30)},
		{ID: "d20", Status: domain.StatusInProgress, Deadline: at(20)},
		{ID: "none", Status: domain.StatusIdea},
	}

	st := buildStats(ps, now)
	require.Equal(t, 8, st.TotalProjects)
	require.Equal(t, 3, st.ByStatus[domain.StatusIdea])
	require.Equal(t, 2, st.ByStatus[domain.StatusInProgress])
	require.Equal(t, 7, st.ByResearchStep[domain.StepAbstract])
	require.Equal(t, 1, st.ByResearchStep[domain.StepResults])
	require.Equal(t, 0, st.ByResearchStep[domain.StepConclusion])
	require.Equal(t, 2, st.Collaborators)

	ids := make([]string, len(st.UpcomingDeadlines))
	for i, p := range st.UpcomingDeadlines {
		ids[i] = p.ID
	}
	require.Equal(t, []string{"d1", "d2", "d5", "d10", "d20"}, ids)
}

func TestDirectoryService(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, ReadScopeAny)
	_, err := f.projects.Create(ctx, f.owner, sampleProject())
	require.NoError(t, err)

	svc := &DirectoryService{
		Projects: f.projects,
		Now:      func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	}

	entries, err := svc.Collaborators(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "guide@example.com", entries[0].Email)

	st, err := svc.Stats(ctx, f.guide)
	require.NoError(t, err)
	require.Equal(t, 1, st.TotalProjects)
	require.Len(t, st.UpcomingDeadlines, 1)

	st, err = svc.Stats(ctx, f.stranger)
	require.NoError(t, err)
	require.Zero(t, st.TotalProjects)
	require.Empty(t, st.UpcomingDeadlines)
}
