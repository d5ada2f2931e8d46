package researchsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks that the service is running.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks that the service can reach its database. A degraded
// service answers 503, which is returned as an *APIError.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
