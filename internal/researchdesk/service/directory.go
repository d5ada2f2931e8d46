package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
)

// upcomingLimit is how many deadlines the dashboard shows.
const upcomingLimit = 5

// ProjectLink names a project in summaries.
type ProjectLink struct {
	ID   string
	Name string
}

// DirectoryEntry is one collaborator across all of the caller's projects.
type DirectoryEntry struct {
	Name         string
	Email        string
	Role         domain.Role
	Organization string
	Country      string
	Projects     []ProjectLink
}

// DashboardStats summarises the caller's visible projects.
type DashboardStats struct {
	TotalProjects     int
	ByStatus          map[domain.Status]int
	ByResearchStep    map[domain.ResearchStep]int
	Collaborators     int
	UpcomingDeadlines []domain.Project
}

// DirectoryService derives read-only views over the caller's projects.
type DirectoryService struct {
	Projects *ProjectService
	Now      func() time.Time
}

func (s *DirectoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Collaborators lists everyone named on the caller's visible projects,
// merged by email and sorted by name. The first occurrence supplies the
// details.
func (s *DirectoryService) Collaborators(ctx context.Context, id domain.Identity) ([]DirectoryEntry, error) {
	ps, err := s.Projects.ListForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildDirectory(ps), nil
}

func buildDirectory(ps []domain.Project) []DirectoryEntry {
	byEmail := make(map[string]int)
	out := make([]DirectoryEntry, 0)

	for _, p := range ps {
		seen := make(map[string]bool)
		for _, c := range p.Collaborators {
			key := strings.ToLower(c.Email)
			i, ok := byEmail[key]
			if !ok {
				i = len(out)
				byEmail[key] = i
				out = append(out, DirectoryEntry{
					Name:         c.Name,
					Email:        c.Email,
					Role:         c.Role,
					Organization: c.Organization,
					Country:      c.Country,
				})
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out[i].Projects = append(out[i].Projects, ProjectLink{ID: p.ID, Name: p.Name})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		na, nb := strings.ToLower(out[a].Name), strings.ToLower(out[b].Name)
		if na != nb {
			return na < nb
		}
		return strings.ToLower(out[a].Email) < strings.ToLower(out[b].Email)
	})
	return out
}

// Stats computes the dashboard numbers for the caller.
func (s *DirectoryService) Stats(ctx context.Context, id domain.Identity) (DashboardStats, error) {
	ps, err := s.Projects.ListForUser(ctx, id)
	if err != nil {
		return DashboardStats{}, err
	}
	return buildStats(ps, s.now()), nil
}

func buildStats(ps []domain.Project, now time.Time) DashboardStats {
	st := DashboardStats{
		TotalProjects:     len(ps),
		ByStatus:          make(map[domain.Status]int, len(domain.Statuses)),
		ByResearchStep:    make(map[domain.ResearchStep]int, len(domain.ResearchSteps)),
		UpcomingDeadlines: make([]domain.Project, 0, upcomingLimit),
	}
	for _, v := range domain.Statuses {
		st.ByStatus[v] = 0
	}
	for _, v := range domain.ResearchSteps {
		st.ByResearchStep[v] = 0
	}

	emails := make(map[string]struct{})
	var upcoming []domain.Project
	for _, p := range ps {
		st.ByStatus[p.Status]++
		st.ByResearchStep[p.ResearchStep.OrDefault()]++
		for _, c := range p.Collaborators {
			emails[strings.ToLower(c.Email)] = struct{}{}
		}
		if p.Deadline != nil && p.Deadline.After(now) {
			upcoming = append(upcoming, p)
		}
	}
	st.Collaborators = len(emails)

	sort.SliceStable(upcoming, func(a, b int) bool {
		return upcoming[a].Deadline.Before(*upcoming[b].Deadline)
	})
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	st.UpcomingDeadlines = append(st.UpcomingDeadlines, upcoming...)
	return st
}
