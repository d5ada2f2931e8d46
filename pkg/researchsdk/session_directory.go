package researchsdk

import (
	"context"
	"net/http"
)

// Collaborators lists everyone named on the caller's projects, merged by
// email.
func (s *Session) Collaborators(ctx context.Context) ([]DirectoryEntry, error) {
	var out []DirectoryEntry
	if err := s.do(ctx, http.MethodGet, "/collaborators", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := s.do(ctx, http.MethodGet, "/dashboard/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
