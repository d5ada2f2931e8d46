package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	healthy bool
	ids     []string
	err     error
	queries []string
}

func (f *fakeSearcher) Healthy() bool { return f.healthy }

func (f *fakeSearcher) SearchProjects(_ context.Context, q string, _ domain.Identity, _ int) ([]string, error) {
	f.queries = append(f.queries, q)
	return f.ids, f.err
}

func seedSearch(t *testing.T) (*projectFixture, domain.Project, domain.Project) {
	t.Helper()
	f := newProjectFixture(t, ReadScopeAny)
	ctx := context.Background()

	a, err := f.projects.Create(ctx, f.owner, sampleProject())
	require.NoError(t, err)

	in := sampleProject()
	in.Name = "Graph Neural Networks"
	in.Description = "Message passing at scale"
	in.Track = "ml"
	in.Collaborators = []CollaboratorInput{{Name: "Grace Hopper", Email: "grace@example.com", Role: "researcher"}}
	b, err := f.projects.Create(ctx, f.owner, in)
	require.NoError(t, err)
	return f, a, b
}

func TestSearch_Fallback(t *testing.T) {
	f, a, b := seedSearch(t)
	svc := &SearchService{Projects: f.projects}
	ctx := context.Background()

	tests := []struct {
		q    string
		want []string
	}{
		{q: "healthcare", want: []string{a.ID}},
		{q: "MESSAGE passing", want: []string{b.ID}},
		{q: "hopper", want: []string{b.ID}},
		{q: "miccai", want: []string{b.ID, a.ID}},
		{q: "nothing matches", want: []string{}},
		{q: "  ", want: []string{b.ID, a.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got, err := svc.Search(ctx, f.owner, tt.q)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			require.Equal(t, tt.want, ids)
		})
	}

	t.Run("only visible projects", func(t *testing.T) {
		got, err := svc.Search(ctx, f.stranger, "healthcare")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestSearch_Index(t *testing.T) {
	f, a, b := seedSearch(t)
	ctx := context.Background()

	t.Run("hits are loaded in index order", func(t *testing.T) {
		index := &fakeSearcher{healthy: true, ids: []string{a.ID, idx.New().String(), b.ID}}
		svc := &SearchService{Projects: f.projects, Index: index}

		got, err := svc.Search(ctx, f.owner, "anything")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, a.ID, got[0].ID)
		require.Equal(t, b.ID, got[1].ID)
		require.Equal(t, []string{"anything"}, index.queries)
	})

	t.Run("invisible hits are dropped", func(t *testing.T) {
		index := &fakeSearcher{healthy: true, ids: []string{a.ID}}
		svc := &SearchService{Projects: f.projects, Index: index}

		got, err := svc.Search(ctx, f.stranger, "anything")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("unhealthy index is skipped", func(t *testing.T) {
		index := &fakeSearcher{healthy: false}
		svc := &SearchService{Projects: f.projects, Index: index}

		got, err := svc.Search(ctx, f.owner, "hopper")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Empty(t, index.queries)
	})

	t.Run("index errors fall back", func(t *testing.T) {
		index := &fakeSearcher{healthy: true, err: errors.New("connection refused")}
		svc := &SearchService{Projects: f.projects, Index: index}

		got, err := svc.Search(ctx, f.owner, "hopper")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, b.ID, got[0].ID)
	})
}
