package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"

	_ "github.com/aussiebroadwan/researchdesk/api/researchdesk" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Body limits applied by NewRouter when RouterConfig leaves them unset.
const (
	DefaultMaxBodyBytes   = 1 << 20
	DefaultMaxUploadBytes = 25 << 20
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	// Prefix is prepended to every API route, such as "/api". Empty mounts
	// the API at the root. Health and docs always stay at the root.
	Prefix       string
	BuildVersion string
	CORSOrigins  []string

	// MaxBodyBytes caps JSON bodies, MaxUploadBytes caps multipart bodies.
	MaxBodyBytes   int64
	MaxUploadBytes int64

	// Limiters builds the rate limiter of each route group. Nil means
	// in-memory limiters.
	Limiters httpx.LimiterFactory
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	cfg       RouterConfig
	verifier  jwtx.Verifier
	startTime time.Time
	logger    *slog.Logger
	store     store.Store

	UserService      *service.UserService
	ProjectService   *service.ProjectService
	SearchService    *service.SearchService
	PaperService     *service.PaperService
	AnalysisService  *service.AnalysisService
	DirectoryService *service.DirectoryService
}

func NewRouter(
	verifier jwtx.Verifier,
	cfg RouterConfig,
	st store.Store,
	logger *slog.Logger,
) *Router {
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	if cfg.Prefix != "" {
		cfg.Prefix = "/" + cfg.Prefix
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Limiters == nil {
		cfg.Limiters = httpx.MemoryLimiterFactory
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		verifier:  verifier,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cfg.CORSOrigins),
	}

	return r
}

// ApplyRoutes registers every route. Services must be set beforehand.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProjects()
	r.registerPapers()
	r.registerAnalysis()
	r.registerDirectory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ResearchDesk API
//	@version		0.1.0
//	@description	Research project management for researchers and guides, with LLM-backed paper analysis and plagiarism checks.
//	@description
//	@description				Tokens are JWTs issued by register, login and profile updates.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/researchdesk
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
		return
	}
	r.handler.ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.cfg.Prefix + path
}

// limitByIP keys the named limiter on the client address.
func (r *Router) limitByIP(name string, cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitWith(r.cfg.Limiters(name, cfg), cfg, httpx.IPKeyExtractor)
}

// secured requires a bearer token and then limits by user.
func (r *Router) secured(h http.HandlerFunc, name string, cfg httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitWith(r.cfg.Limiters(name, cfg), cfg, httpx.UserKeyExtractor),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{UserService: r.UserService, MaxBodyBytes: r.cfg.MaxBodyBytes}

	// Credential endpoints - strict rate limit by IP against brute force
	r.Mux.Handle(r.route("POST", "/auth/register"),
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.limitByIP("auth_register", httpx.StrictLimit),
		),
	)
	r.Mux.Handle(r.route("POST", "/auth/login"),
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			r.limitByIP("auth_login", httpx.StrictLimit),
		),
	)

	r.Mux.Handle(r.route("GET", "/auth/me"), r.secured(h.HandleMe, "auth_me", httpx.LenientLimit))
	r.Mux.Handle(r.route("PUT", "/auth/profile"), r.secured(h.HandleUpdateProfile, "auth_profile", httpx.LenientLimit))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{
		ProjectService: r.ProjectService,
		SearchService:  r.SearchService,
		MaxBodyBytes:   r.cfg.MaxBodyBytes,
	}

	r.Mux.Handle(r.route("GET", "/projects"), r.secured(h.HandleList, "projects_read", httpx.LenientLimit))
	r.Mux.Handle(r.route("POST", "/projects"), r.secured(h.HandleCreate, "projects_write", httpx.LenientLimit))
	r.Mux.Handle(r.route("GET", "/projects/search"), r.secured(h.HandleSearch, "projects_search", httpx.LenientLimit))
	r.Mux.Handle(r.route("GET", "/projects/{id}"), r.secured(h.HandleGet, "projects_read", httpx.LenientLimit))
	r.Mux.Handle(r.route("PUT", "/projects/{id}"), r.secured(h.HandleUpdate, "projects_write", httpx.LenientLimit))
	r.Mux.Handle(r.route("DELETE", "/projects/{id}"), r.secured(h.HandleDelete, "projects_write", httpx.LenientLimit))
}

func (r *Router) registerPapers() {
	h := &PapersHandler{PaperService: r.PaperService, MaxUploadBytes: r.cfg.MaxUploadBytes}

	// Uploads are large - moderate rate limit by user
	r.Mux.Handle(r.route("POST", "/projects/{id}/paper"), r.secured(h.HandleUpload, "papers_upload", httpx.ModerateLimit))
	r.Mux.Handle(r.route("GET", "/projects/{id}/paper"), r.secured(h.HandleDownload, "papers_download", httpx.LenientLimit))
}

func (r *Router) registerAnalysis() {
	h := &AnalysisHandler{
		AnalysisService: r.AnalysisService,
		MaxBodyBytes:    r.cfg.MaxBodyBytes,
		MaxUploadBytes:  r.cfg.MaxUploadBytes,
	}

	// Every call costs an LLM completion - moderate rate limit by user
	r.Mux.Handle(r.route("POST", "/analysis"), r.secured(h.HandleAnalyze, "analysis", httpx.ModerateLimit))
	r.Mux.Handle(r.route("POST", "/analysis/plagiarism"), r.secured(h.HandlePlagiarism, "analysis", httpx.ModerateLimit))
}

func (r *Router) registerDirectory() {
	h := &DirectoryHandler{DirectoryService: r.DirectoryService}

	r.Mux.Handle(r.route("GET", "/collaborators"), r.secured(h.HandleCollaborators, "directory", httpx.LenientLimit))
	r.Mux.Handle(r.route("GET", "/dashboard/stats"), r.secured(h.HandleStats, "directory", httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.BuildVersion),
			r.limitByIP("livez", httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.store, r.SearchService, r.PaperService),
			r.limitByIP("readyz", httpx.PublicLimit),
		),
	)
}
