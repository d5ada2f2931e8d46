package researchsdk

import (
	"context"
	"net/http"
	"sync"
)

// Session makes calls as one signed-in user. Profile updates swap in the
// reissued token, so a Session is safe to share between goroutines.
type Session struct {
	client *Client

	mu    sync.RWMutex
	token string
	user  UserResponse
}

func newSession(c *Client, auth AuthResponse) *Session {
	return &Session{client: c, token: auth.Token, user: auth.UserResponse}
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the profile from the last register, login, Me or profile
// update.
func (s *Session) User() UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Me fetches the caller's profile.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = out
	s.mu.Unlock()
	return &out, nil
}

// UpdateProfile changes the supplied fields and adopts the reissued token.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	var out AuthResponse
	if err := s.do(ctx, http.MethodPut, "/auth/profile", req, &out, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = out.Token
	s.user = out.UserResponse
	s.mu.Unlock()
	return &out.UserResponse, nil
}

// do sends an authenticated JSON request to an API path.
func (s *Session) do(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	return s.client.doJSON(ctx, method, s.client.api(path), s.Token(), in, out, expectedStatus)
}
