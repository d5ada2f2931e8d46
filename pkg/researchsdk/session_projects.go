package researchsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ListProjects returns the projects the caller owns or collaborates on,
// newest first.
func (s *Session) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := s.do(ctx, http.MethodGet, "/projects", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var out Project
	if err := s.do(ctx, http.MethodPost, "/projects", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProject fetches one project with its owner resolved.
func (s *Session) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := s.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject changes the supplied fields of a project the caller owns.
func (s *Session) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	var out Project
	if err := s.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project the caller owns.
func (s *Session) DeleteProject(ctx context.Context, id string) error {
	var out MessageResponse
	return s.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, &out, http.StatusOK)
}

// SearchProjects runs a full-text query over the caller's projects.
func (s *Session) SearchProjects(ctx context.Context, query string) ([]Project, error) {
	var out []Project
	path := "/projects/search?q=" + url.QueryEscape(query)
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadPaper stores a PDF as the project's paper.
func (s *Session) UploadPaper(ctx context.Context, id, filename string, pdf []byte) (*Project, error) {
	var out Project
	err := s.client.doMultipart(ctx,
		s.client.api("/projects/"+url.PathEscape(id)+"/paper"), s.Token(),
		nil,
		&multipartFile{field: "file", filename: filename, contentType: "application/pdf", data: pdf},
		&out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PaperURL returns the short-lived download link of a project's paper
// without following the redirect.
func (s *Session) PaperURL(ctx context.Context, id string) (string, error) {
	hc := *s.client.HTTPClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.client.url(s.client.api("/projects/"+url.PathEscape(id)+"/paper")), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.Token())

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		body, _ := io.ReadAll(resp.Body)
		return "", parseErrorResponse(resp, body)
	}
	return resp.Header.Get("Location"), nil
}
