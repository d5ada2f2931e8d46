package researchsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIPrefix is where the server mounts its API routes by default.
const DefaultAPIPrefix = "/api"

// Client talks to one researchdesk server. It handles the public endpoints
// and creates Sessions.
type Client struct {
	BaseURL    string
	APIPrefix  string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL using DefaultAPIPrefix. Analysis
// calls wait on a language model, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		APIPrefix: DefaultAPIPrefix,
		HTTPClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// Register creates an account and returns a Session for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, c.api("/auth/register"), "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// Login checks the credentials and returns a Session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, c.api("/auth/login"), "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// NewSessionFromToken wraps a token obtained earlier. The profile is empty
// until Me is called.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
