package http

import (
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
)

// identityFrom returns the caller verified by AuthnMiddleware.
func identityFrom(r *http.Request) domain.Identity {
	claims, _ := httpx.ClaimsFromContext(r.Context())
	return service.IdentityFromClaims(claims)
}

func toUserResponse(u domain.User) researchsdk.UserResponse {
	return researchsdk.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		RegistrationNumber: u.RegistrationNumber,
		FacultyID:          u.FacultyID,
		PhoneNumber:        u.PhoneNumber,
		Department:         u.Department,
		Avatar:             u.Avatar,
	}
}

func toAuthResponse(res service.AuthResult) researchsdk.AuthResponse {
	return researchsdk.AuthResponse{UserResponse: toUserResponse(res.User), Token: res.Token}
}

func toProject(p domain.Project) researchsdk.Project {
	owner := researchsdk.ProjectOwner{ID: p.OwnerID}
	if p.Owner != nil {
		owner.Name = p.Owner.Name
		owner.Email = p.Owner.Email
	}

	collaborators := make([]researchsdk.Collaborator, len(p.Collaborators))
	for i, c := range p.Collaborators {
		collaborators[i] = researchsdk.Collaborator{
			Name:               c.Name,
			Email:              c.Email,
			Role:               string(c.Role),
			RegistrationNumber: c.RegistrationNumber,
			Organization:       c.Organization,
			Country:            c.Country,
		}
	}

	return researchsdk.Project{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Track:         p.Track,
		Format:        p.Format,
		Conference:    p.Conference,
		Deadline:      p.Deadline,
		PaperURL:      p.PaperURL,
		Collaborators: collaborators,
		Status:        string(p.Status),
		ResearchStep:  string(p.ResearchStep.OrDefault()),
		Owner:         owner,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProjects(ps []domain.Project) []researchsdk.Project {
	out := make([]researchsdk.Project, len(ps))
	for i, p := range ps {
		out[i] = toProject(p)
	}
	return out
}

func toDirectory(entries []service.DirectoryEntry) []researchsdk.DirectoryEntry {
	out := make([]researchsdk.DirectoryEntry, len(entries))
	for i, e := range entries {
		links := make([]researchsdk.ProjectLink, len(e.Projects))
		for j, l := range e.Projects {
			links[j] = researchsdk.ProjectLink{ID: l.ID, Name: l.Name}
		}
		out[i] = researchsdk.DirectoryEntry{
			Name:         e.Name,
			Email:        e.Email,
			Role:         string(e.Role),
			Organization: e.Organization,
			Country:      e.Country,
			ProjectCount: len(links),
			Projects:     links,
		}
	}
	return out
}

func toStats(st service.DashboardStats) researchsdk.DashboardStats {
	byStatus := make(map[string]int, len(st.ByStatus))
	for k, v := range st.ByStatus {
		byStatus[string(k)] = v
	}
	byStep := make(map[string]int, len(st.ByResearchStep))
	for k, v := range st.ByResearchStep {
		byStep[string(k)] = v
	}
	return researchsdk.DashboardStats{
		TotalProjects:     st.TotalProjects,
		ByStatus:          byStatus,
		ByResearchStep:    byStep,
		Collaborators:     st.Collaborators,
		UpcomingDeadlines: toProjects(st.UpcomingDeadlines),
	}
}
