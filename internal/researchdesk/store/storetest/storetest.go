// Package storetest is a conformance suite run by every store driver's tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store. The suite closes nothing; the
// factory registers its own cleanup.
type Factory func(t *testing.T) store.Store

// Run exercises the store.Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("ProjectRoundTrip", func(t *testing.T) { testProjectRoundTrip(t, newStore(t)) })
	t.Run("ListVisible", func(t *testing.T) { testListVisible(t, newStore(t)) })
	t.Run("UpdateProject", func(t *testing.T) { testUpdateProject(t, newStore(t)) })
	t.Run("DeleteProject", func(t *testing.T) { testDeleteProject(t, newStore(t)) })
	t.Run("WithTxRollback", func(t *testing.T) { testWithTxRollback(t, newStore(t)) })
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// NewUser builds a researcher with a fresh id.
func NewUser(email string) domain.User {
	ts := now()
	return domain.User{
		ID:                 idx.New().String(),
		Email:              email,
		Name:               "Test User",
		PasswordHash:       "$argon2id$v=19$m=16,t=1,p=1$c2FsdA$aGFzaA",
		Role:               domain.RoleResearcher,
		RegistrationNumber: "R-1",
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}

// NewProject builds a project owned by ownerID created at ts.
func NewProject(ownerID, name string, ts time.Time, collaborators ...domain.Collaborator) domain.Project {
	return domain.Project{
		ID:            idx.NewAt(ts).String(),
		OwnerID:       ownerID,
		Name:          name,
		Track:         "AI",
		Format:        "IEEE",
		Status:        domain.StatusIdea,
		Collaborators: collaborators,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func createUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	u := NewUser(email)
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := NewUser("alice@example.com")
	u.PhoneNumber = "555-0100"
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("duplicate email", func(t *testing.T) {
		dup := NewUser("alice@example.com")
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get by id and email", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u, got)

		got, err = s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		name := "Alice Smith"
		dept := "Physics"
		require.NoError(t, s.Users().UpdateUser(ctx, u.ID, domain.UserPatch{Name: &name, Department: &dept}))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Alice Smith", got.Name)
		require.Equal(t, "Physics", got.Department)
		require.Equal(t, "555-0100", got.PhoneNumber)
		require.False(t, got.UpdatedAt.Before(u.UpdatedAt))

		err = s.Users().UpdateUser(ctx, idx.New().String(), domain.UserPatch{Name: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testProjectRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := createUser(t, s, "owner@example.com")

	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	p := NewProject(owner.ID, "Quantum Widgets", now(),
		domain.Collaborator{Name: "G", Email: "guide@example.com", Role: domain.RoleGuide, Country: "AU"},
		domain.Collaborator{Name: "R", Email: "res@example.com", Role: domain.RoleResearcher, Organization: "Uni"},
	)
	p.Description = "desc"
	p.Deadline = &deadline
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	got, err := s.Projects().GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Name, got.Name)
	require.Equal(t, p.Description, got.Description)
	require.Equal(t, domain.StatusIdea, got.Status)
	require.Equal(t, domain.ResearchStep(""), got.ResearchStep)
	require.NotNil(t, got.Deadline)
	require.True(t, deadline.Equal(*got.Deadline))
	require.True(t, p.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, p.Collaborators, got.Collaborators)

	require.NotNil(t, got.Owner)
	require.Equal(t, domain.UserRef{ID: owner.ID, Name: owner.Name, Email: owner.Email}, *got.Owner)

	_, err = s.Projects().GetProject(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testListVisible(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := createUser(t, s, "alice@example.com")
	bob := createUser(t, s, "bob@example.com")

	base := now().Add(-time.Hour)
	p1 := NewProject(alice.ID, "alice-old", base)
	p2 := NewProject(bob.ID, "bob-shared", base.Add(time.Minute),
		domain.Collaborator{Name: "Alice", Email: "ALICE@example.com", Role: domain.RoleResearcher})
	p3 := NewProject(bob.ID, "bob-private", base.Add(2*time.Minute))
	p4 := NewProject(alice.ID, "alice-new", base.Add(3*time.Minute))
	for _, p := range []domain.Project{p1, p2, p3, p4} {
		require.NoError(t, s.Projects().CreateProject(ctx, p))
	}

	names := func(ps []domain.Project) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	got, err := s.Projects().ListVisible(ctx, alice.ID, alice.Email)
	require.NoError(t, err)
	require.Equal(t, []string{"alice-new", "bob-shared", "alice-old"}, names(got))
	require.Len(t, got[1].Collaborators, 1)

	got, err = s.Projects().ListVisible(ctx, bob.ID, bob.Email)
	require.NoError(t, err)
	require.Equal(t, []string{"bob-private", "bob-shared"}, names(got))

	got, err = s.Projects().ListVisible(ctx, idx.New().String(), "stranger@example.com")
	require.NoError(t, err)
	require.Empty(t, got)

	all, err := s.Projects().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func testUpdateProject(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := createUser(t, s, "owner@example.com")

	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := NewProject(owner.ID, "Draft", now(),
		domain.Collaborator{Name: "G", Email: "g@example.com", Role: domain.RoleGuide})
	p.Conference = "NeurIPS"
	p.Deadline = &deadline
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	t.Run("disjoint fields both survive", func(t *testing.T) {
		status := domain.StatusInProgress
		require.NoError(t, s.Projects().UpdateProject(ctx, p.ID, domain.ProjectPatch{Status: &status}))

		step := domain.StepMethodology
		require.NoError(t, s.Projects().UpdateProject(ctx, p.ID, domain.ProjectPatch{ResearchStep: &step}))

		got, err := s.Projects().GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusInProgress, got.Status)
		require.Equal(t, domain.StepMethodology, got.ResearchStep)
		require.Equal(t, "Draft", got.Name)
		require.Equal(t, "NeurIPS", got.Conference)
		require.Len(t, got.Collaborators, 1)
	})

	t.Run("clear optional fields and collaborators", func(t *testing.T) {
		empty := ""
		none := []domain.Collaborator{}
		require.NoError(t, s.Projects().UpdateProject(ctx, p.ID, domain.ProjectPatch{
			Conference:    &empty,
			ClearDeadline: true,
			Collaborators: &none,
		}))

		got, err := s.Projects().GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.Empty(t, got.Conference)
		require.Nil(t, got.Deadline)
		require.Empty(t, got.Collaborators)
	})

	t.Run("replace collaborators keeps order", func(t *testing.T) {
		list := []domain.Collaborator{
			{Name: "B", Email: "b@example.com", Role: domain.RoleResearcher},
			{Name: "A", Email: "a@example.com", Role: domain.RoleGuide},
		}
		require.NoError(t, s.Projects().UpdateProject(ctx, p.ID, domain.ProjectPatch{Collaborators: &list}))

		got, err := s.Projects().GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, list, got.Collaborators)
	})

	t.Run("missing project", func(t *testing.T) {
		name := "x"
		err := s.Projects().UpdateProject(ctx, idx.New().String(), domain.ProjectPatch{Name: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testDeleteProject(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := createUser(t, s, "owner@example.com")

	p := NewProject(owner.ID, "Doomed", now(),
		domain.Collaborator{Name: "C", Email: "c@example.com", Role: domain.RoleGuide})
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	require.NoError(t, s.Projects().DeleteProject(ctx, p.ID))

	_, err := s.Projects().GetProject(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Projects().ListVisible(ctx, "", "c@example.com")
	require.NoError(t, err)
	require.Empty(t, got)

	require.ErrorIs(t, s.Projects().DeleteProject(ctx, p.ID), store.ErrNotFound)
}

func testWithTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := createUser(t, s, "owner@example.com")

	p := NewProject(owner.ID, "Committed", now())
	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Projects().CreateProject(ctx, p)
	}))

	_, err := s.Projects().GetProject(ctx, p.ID)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithTx(ctx, func(tx store.Tx) error {
		name := "Renamed"
		if err := tx.Projects().UpdateProject(ctx, p.ID, domain.ProjectPatch{Name: &name}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
}
