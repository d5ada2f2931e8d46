package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Only the database decides readiness. Search falls back to the store and reports "degraded" when Meilisearch is down.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	researchsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	researchsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	search *service.SearchService,
	papers *service.PaperService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &researchsdk.HealthChecks{
			Database: "ok",
			Search:   "disabled",
			Storage:  "disabled",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if search != nil && search.Index != nil {
			checks.Search = "ok"
			if !search.Index.Healthy() {
				checks.Search = "degraded"
			}
		}

		if papers.Enabled() {
			checks.Storage = "ok"
		}

		response := researchsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
