package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	users    *UserService
	projects *ProjectService
	indexer  *fakeIndexer
	owner    domain.Identity
	guide    domain.Identity
	stranger domain.Identity
}

func newProjectFixture(t *testing.T, scope ReadScope) *projectFixture {
	t.Helper()
	s := newTestStore(t)
	users, _ := newUserService(t, s)
	indexer := newFakeIndexer()

	return &projectFixture{
		users:    users,
		projects: &ProjectService{Store: s, ReadScope: scope, Indexer: indexer},
		indexer:  indexer,
		owner:    register(t, users, "owner@example.com"),
		guide:    register(t, users, "guide@example.com"),
		stranger: register(t, users, "stranger@example.com"),
	}
}

func TestProjectCreate(t *testing.T) {
	f := newProjectFixture(t, ReadScopeAny)
	ctx := context.Background()

	p, err := f.projects.Create(ctx, f.owner, sampleProject())
	require.NoError(t, err)
	require.True(t, idx.Valid(p.ID))
	require.Equal(t, f.owner.UserID, p.OwnerID)
	require.Equal(t, domain.StatusIdea, p.Status)
	require.Equal(t, domain.ResearchStep(""), p.ResearchStep)
	require.NotNil(t, p.Deadline)
	require.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), *p.Deadline)
	require.Len(t, p.Collaborators, 1)
	require.Equal(t, domain.RoleGuide, p.Collaborators[0].Role)

	f.indexer.wait(t)
	require.True(t, f.indexer.has(p.ID))
}

func TestProjectCreate_Validation(t *testing.T) {
	f := newProjectFixture(t, ReadScopeAny)

	in := CreateProjectInput{
		Name:     " ",
		Format:   "ieee",
		Deadline: "next tuesday",
		PaperURL: "not a url",
		Collaborators: []CollaboratorInput{
			{Name: "Ok", Email: "ok@example.com", Role: "guide"},
			{Name: "", Email: "bad", Role: "boss"},
		},
	}
	_, err := f.projects.Create(context.Background(), f.owner, in)
	require.ElementsMatch(t, []string{
		"name", "track", "deadline", "paperUrl",
		"collaborators.1.name", "collaborators.1.email", "collaborators.1.role",
	}, fieldNames(t, err))
}

func TestProjectCreate_PaperURL(t *testing.T) {
	f := newProjectFixture(t, ReadScopeAny)

	for _, url := range []string{"https://example.com/paper.pdf", "/api/projects/x/paper"} {
		in := sampleProject()
		in.PaperURL = url
		p, err := f.projects.Create(context.Background(), f.owner, in)
		require.NoError(t, err)
		require.Equal(t, url, p.PaperURL)
	}
}

func TestProjectListForUser(t *testing.T) {
	f := newProjectFixture(t, ReadScopeAny)
	ctx := context.Background()

	shared, err := f.projects.Create(ctx, f.owner, sampleProject())
	require.NoError(t, err)

	private := sampleProject()
	private.Name = "Private"
	private.Collaborators = nil
	_, err = f.projects.Create(ctx, f.owner, private)
	require.NoError(t, err)

	got, err := f.projects.ListForUser(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Private", got[0].Name)

	got, err = f.projects.ListForUser(ctx, f.guide)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, shared.ID, got[0].ID)

	got, err = f.projects.ListForUser(ctx, f.stranger)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestProjectGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("any scope", func(t *testing.T) {
		f := newProjectFixture(t, ReadScopeAny)
		p, err := f.projects.Create(ctx, f.owner, sampleProject())
		require.NoError(t, err)

		got, err := f.projects.GetByID(ctx, f.stranger, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Owner)
		require.Equal(t, "owner@example.com", got.Owner.Email)
	})

	t.Run("visible scope", func(t *testing.T) {
		f := newProjectFixture(t, ReadScopeVisible)
		p, err := f.projects.Create(ctx, f.owner, sampleProject())
		require.NoError(t, err)

		_, err = f.projects.GetByID(ctx, f.guide, p.ID)
		require.NoError(t, err)

		_, err = f.projects.GetByID(ctx, f.stranger, p.ID)
		require.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("missing and malformed ids", func(t *testing.T) {
		f := newProjectFixture(t, ReadScopeAny)

		_, err := f.projects.GetByID(ctx, f.owner, idx.New().String())
		require.ErrorIs(t, err, ErrProjectNotFound)

		_, err = f.projects.GetByID(ctx, f.owner, "not-an-id")
		require.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestProjectUpdate(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, ReadScopeAny)
	p, err := f.projects.Create(ctx, f.owner, sampleProject())
	require.NoError(t, err)
	f.indexer.wait(t)

	str := func(s string) *string { return &s }

	t.Run("status then step both stick", func(t *testing.T) {
		_, err := f.projects.Update(ctx, f.owner, p.ID, UpdateProjectInput{Status: str("In Progress")})
		require.NoError(t, err)
		f.indexer.wait(t)

		got, err := f.projects.Update(ctx, f.owner, p.ID, UpdateProjectInput{ResearchStep: str("results")})
		require.NoError(t, err)
		f.indexer.wait(t)

		require.Equal(t, domain.StatusInProgress, got.Status)
		require.Equal(t, domain.StepResults, got.ResearchStep)
		require.Equal(t, "AI in Healthcare", got.Name)
		require.Len(t, got.Collaborators, 1)
		require.False(t, got.UpdatedAt.Before(p.UpdatedAt))
	})

	t.Run("empty strings clear optional fields", func(t *testing.T) {
		got, err := f.projects.Update(ctx, f.owner, p.ID, UpdateProjectInput{
			Conference: str(""),
			Deadline:   str(""),
		})
		require.NoError(t, err)
		f.indexer.wait(t)
		require.Empty(t, got.Conference)
		require.Nil(t, got.Deadline)
	})

	t.Run("replace collaborators", func(t *testing.T) {
		list := []CollaboratorInput{{Name: "New", Email: "new@example.com", Role: "researcher"}}
		got, err := f.projects.Update(ctx, f.owner, p.ID, UpdateProjectInput{Collaborators: &list})
		require.NoError(t, err)
		f.indexer.wait(t)
		require.Len(t, got.Collaborators, 1)
		require.Equal(t, "new@example.com", got.Collaborators[0].Email)
	})

	t.Run("empty body returns the project", func(t *testing.T) {
		got, err := f.projects.Update(ctx, f.owner, p.ID, UpdateProjectInput{})
		require.NoError(t, err)
		f.indexer.wait(t)
		require.Equal(t, p.ID, got.ID)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := f.projects.Update(ctx, f.owner, p.ID, UpdateProjectInput{
			Name:         str(""),
			Status:       str("Done"),
			ResearchStep: str("intro"),
			Deadline:     str("soon"),
		})
		require.ElementsMatch(t, []string{"name", "status", "researchStep", "deadline"}, fieldNames(t, err))
	})

	t.Run("non-owner", func(t *testing.T) {
		_, err := f.projects.Update(ctx, f.guide, p.ID, UpdateProjectInput{Name: str("Hijacked")})
		require.ErrorIs(t, err, ErrForbidden)

		var fe *ForbiddenError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, "update", fe.Action)

		got, err := f.projects.GetByID(ctx, f.owner, p.ID)
		require.NoError(t, err)
		require.Equal(t, "AI in Healthcare", got.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.projects.Update(ctx, f.owner, idx.New().String(), UpdateProjectInput{Name: str("x")})
		require.ErrorIs(t, err, ErrProjectNotFound)
	})
}

type fakePaperRemover struct{ removed []string }

func (f *fakePaperRemover) RemovePaper(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func TestProjectDelete(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, ReadScopeAny)
	papers := &fakePaperRemover{}
	f.projects.Papers = papers

	p, err := f.projects.Create(ctx, f.owner, sampleProject())
	require.NoError(t, err)
	f.indexer.wait(t)

	err = f.projects.Delete(ctx, f.guide, p.ID)
	require.ErrorIs(t, err, ErrForbidden)
	require.EqualError(t, err, "not authorized to delete this project")

	require.NoError(t, f.projects.Delete(ctx, f.owner, p.ID))
	f.indexer.wait(t)
	require.Equal(t, []string{p.ID}, papers.removed)
	require.False(t, f.indexer.has(p.ID))

	_, err = f.projects.GetByID(ctx, f.owner, p.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	got, err := f.projects.ListForUser(ctx, f.guide)
	require.NoError(t, err)
	require.Empty(t, got)

	require.ErrorIs(t, f.projects.Delete(ctx, f.owner, p.ID), ErrProjectNotFound)
	require.ErrorIs(t, f.projects.Delete(ctx, f.owner, "bogus"), ErrProjectNotFound)
}

func TestReadScopeValid(t *testing.T) {
	require.True(t, ReadScopeAny.Valid())
	require.True(t, ReadScopeVisible.Valid())
	require.False(t, ReadScope("everyone").Valid())
}
