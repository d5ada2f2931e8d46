package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	live := decode[researchsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	rec = env.do(http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[researchsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, &researchsdk.HealthChecks{Database: "ok", Search: "disabled", Storage: "disabled"}, ready.Checks)

	env = newTestEnv(t, withPapers())
	rec = env.do(http.MethodGet, "/readyz", "", nil)
	require.Equal(t, "ok", decode[researchsdk.HealthResponse](t, rec).Checks.Storage)
}

func TestRequestIDAndCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := env.serve(req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSwaggerDoc(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ResearchDesk API")
	require.Contains(t, rec.Body.String(), "/api/projects/{id}/paper")
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t)

	var last *httptest.ResponseRecorder
	for range 50 {
		last = env.do(http.MethodPost, "/api/auth/login", "", researchsdk.LoginRequest{
			Email: "nobody@example.com", Password: "wrong-password",
		})
		if last.Code == http.StatusTooManyRequests {
			break
		}
		require.Equal(t, http.StatusUnauthorized, last.Code)
	}

	requireError(t, last, http.StatusTooManyRequests, researchsdk.ErrorCodeRateLimited, "")
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPatch, "/api/projects", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
