package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

// searchLimit caps the hits returned by a single search.
const searchLimit = 50

// ProjectSearcher answers full-text queries with project ids, already
// restricted to what the caller may see.
type ProjectSearcher interface {
	Healthy() bool
	SearchProjects(ctx context.Context, query string, id domain.Identity, limit int) ([]string, error)
}

// SearchService finds projects visible to the caller. It prefers the
// external index and falls back to matching in memory when the index is
// missing or unhealthy.
type SearchService struct {
	Projects *ProjectService
	Index    ProjectSearcher
}

// Search returns the caller's projects matching q. An empty query lists
// every visible project.
func (s *SearchService) Search(ctx context.Context, id domain.Identity, q string) ([]domain.Project, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.Projects.ListForUser(ctx, id)
	}

	if s.Index != nil && s.Index.Healthy() {
		ps, err := s.searchIndex(ctx, id, q)
		if err == nil {
			return ps, nil
		}
		slogx.FromContext(ctx).Warn("search index failed, falling back to store",
			slog.Any("error", err),
		)
	}

	all, err := s.Projects.ListForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return matchProjects(all, q), nil
}

func (s *SearchService) searchIndex(ctx context.Context, id domain.Identity, q string) ([]domain.Project, error) {
	ids, err := s.Index.SearchProjects(ctx, q, id, searchLimit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(ids))
	for _, pid := range ids {
		p, err := s.Projects.Store.Projects().GetProject(ctx, pid)
		if err != nil {
			// The index can trail the store by a write.
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load search hit: %w", err)
		}
		if !p.VisibleTo(id) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// matchProjects keeps the projects where every term of q appears in one of
// the searchable fields, ignoring case.
func matchProjects(ps []domain.Project, q string) []domain.Project {
	terms := strings.Fields(strings.ToLower(q))
	out := make([]domain.Project, 0)
	for _, p := range ps {
		text := searchText(p)
		matched := true
		for _, t := range terms {
			if !strings.Contains(text, t) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, p)
		}
	}
	return out
}

func searchText(p domain.Project) string {
	parts := []string{p.Name, p.Description, p.Track, p.Format, p.Conference}
	for _, c := range p.Collaborators {
		parts = append(parts, c.Name)
	}
	return strings.ToLower(strings.Join(parts, "\n"))
}
