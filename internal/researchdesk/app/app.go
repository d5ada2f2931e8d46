package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/researchdesk/internal/researchdesk/http"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/search"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/mongo"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/postgres"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
	"github.com/aussiebroadwan/researchdesk/pkg/llm"
	"github.com/aussiebroadwan/researchdesk/pkg/objstore"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	// startupTimeout bounds connecting to the database and object storage.
	startupTimeout = 30 * time.Second
)

// Application encapsulates the researchdesk service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	keys    TokenKeys
	hasher  *cryptox.Hasher
	llm     llm.Client
	objects objstore.Store
	redis   *redis.Client
	meili   *search.Meili

	// Services
	userService      *service.UserService
	projectService   *service.ProjectService
	searchService    *service.SearchService
	paperService     *service.PaperService
	analysisService  *service.AnalysisService
	directoryService *service.DirectoryService
	indexSyncService *service.IndexSyncService // Optional: only with Meilisearch

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// Option overrides a dependency New would otherwise build from Config.
type Option func(*Application)

// WithLogger replaces the logger built from the logging settings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// WithLLM replaces the OpenAI compatible client.
func WithLLM(c llm.Client) Option {
	return func(a *Application) { a.llm = c }
}

// WithObjectStore enables paper storage on s instead of S3.
func WithObjectStore(s objstore.Store) Option {
	return func(a *Application) { a.objects = s }
}

// WithHasher replaces the pepper file based password hasher.
func WithHasher(h *cryptox.Hasher) Option {
	return func(a *Application) { a.hasher = h }
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "researchdesk",
			Version: cfg.Version,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	keys, err := InitTokenKeys(cfg, app.logger)
	if err != nil {
		app.closeDeps()
		return nil, fmt.Errorf("failed to initialize token keys: %w", err)
	}
	app.keys = keys

	if err := app.initDeps(ctx); err != nil {
		app.closeDeps()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.indexSyncService != nil {
		app.indexSyncService.Start()
	}

	app.logger.Info("researchdesk starting",
		"addr", app.cfg.ListenAddr,
		"version", app.cfg.Version,
		"store", app.cfg.StoreDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopWorkers()
			app.closeDeps()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down researchdesk...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.stopWorkers()

	if err := app.closeDeps(); err != nil {
		return err
	}

	app.logger.Info("researchdesk stopped")
	return nil
}

// Close releases every dependency without touching the HTTP server. Tests
// that serve Handler themselves use it instead of Shutdown.
func (app *Application) Close() error {
	return app.closeDeps()
}

func (app *Application) stopWorkers() {
	if app.indexSyncService != nil {
		app.indexSyncService.Stop()
	}
}

func (app *Application) closeDeps() error {
	if app.meili != nil {
		app.meili.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if app.db == nil {
		return nil
	}
	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseDSN)
	case "mongo":
		db, err = mongo.NewStore(ctx, app.cfg.DatabaseDSN, app.cfg.MongoDatabase)
	default:
		db, err = sqlite.NewStore(sqliteDSN(app.cfg.DatabaseDSN))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", app.cfg.StoreDriver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		app.db = nil
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

// sqliteDSN turns a bare file path into a DSN with a busy timeout and WAL.
func sqliteDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// apiPrefix normalises API_PREFIX to "/x" form, or "" for the root.
func apiPrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// initDeps builds the optional backends. Each one is skipped when it is not
// configured.
func (app *Application) initDeps(ctx context.Context) error {
	if app.hasher == nil {
		pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
		if err != nil {
			return fmt.Errorf("failed to load pepper: %w", err)
		}
		app.hasher = cryptox.NewHasher(pepper)
	}

	if app.llm == nil {
		baseURL := app.cfg.LLMBaseURL
		if baseURL == "" {
			baseURL = llm.GroqBaseURL
		}
		if app.cfg.GroqAPIKey == "" {
			app.logger.Warn("GROQ_API_KEY not set, analysis requests will fail")
		}
		app.llm = llm.NewOpenAIClient(baseURL, app.cfg.GroqAPIKey, app.cfg.LLMModel, app.cfg.LLMTimeout)
	}

	if app.objects == nil && app.cfg.S3Bucket != "" {
		s3, err := objstore.NewS3Store(ctx, objstore.S3Config{
			Bucket:          app.cfg.S3Bucket,
			Region:          app.cfg.S3Region,
			Endpoint:        app.cfg.S3Endpoint,
			AccessKeyID:     app.cfg.S3AccessKeyID,
			SecretAccessKey: app.cfg.S3SecretAccessKey,
			UsePathStyle:    app.cfg.S3UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize paper storage: %w", err)
		}
		app.objects = s3
		app.logger.Info("paper storage enabled", "bucket", app.cfg.S3Bucket)
	}

	if app.cfg.RedisURL != "" {
		opts, err := redis.ParseURL(app.cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		app.redis = redis.NewClient(opts)
		if err := app.redis.Ping(ctx).Err(); err != nil {
			// Limiters fail open, so a late Redis only loses rate limiting.
			app.logger.Warn("redis unavailable", "error", err)
		} else {
			app.logger.Info("shared rate limiting enabled")
		}
	}

	if app.cfg.MeiliURL != "" {
		app.meili = search.NewMeili(app.cfg.MeiliURL, app.cfg.MeiliAPIKey, app.cfg.MeiliIndex, app.logger)
	}

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: app.hasher,
		Tokens: &service.TokenService{
			Signer: app.keys,
			Issuer: app.cfg.TokenIssuer,
			TTL:    app.cfg.TokenTTL,
		},
	}

	app.projectService = &service.ProjectService{
		Store:     app.db,
		ReadScope: service.ReadScope(app.cfg.ProjectReadScope),
	}

	app.paperService = &service.PaperService{
		Projects: app.projectService,
		MaxBytes: app.cfg.PaperMaxBytes,
		BasePath: apiPrefix(app.cfg.APIPrefix),
	}
	if app.objects != nil {
		app.paperService.Objects = app.objects
		app.projectService.Papers = app.paperService
	}

	app.searchService = &service.SearchService{Projects: app.projectService}
	if app.meili != nil {
		app.projectService.Indexer = app.meili
		app.searchService.Index = app.meili
		app.indexSyncService = service.NewIndexSyncService(
			app.db,
			app.meili,
			app.logger,
			app.cfg.SearchSyncInterval,
		)
	}

	app.analysisService = &service.AnalysisService{LLM: app.llm}
	app.directoryService = &service.DirectoryService{Projects: app.projectService}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	var limiters httpx.LimiterFactory = httpx.MemoryLimiterFactory
	if app.redis != nil {
		limiters = httpx.RedisLimiterFactory(app.redis)
	}

	router := httpapi.NewRouter(
		app.keys,
		httpapi.RouterConfig{
			Prefix:         app.cfg.APIPrefix,
			BuildVersion:   app.cfg.Version,
			CORSOrigins:    app.cfg.CORSOrigins,
			MaxUploadBytes: app.cfg.MaxUploadBytes,
			Limiters:       limiters,
		},
		app.db,
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.ProjectService = app.projectService
	router.SearchService = app.searchService
	router.PaperService = app.paperService
	router.AnalysisService = app.analysisService
	router.DirectoryService = app.directoryService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              app.cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		// Analysis waits on the LLM, so writes get the LLM timeout plus slack.
		WriteTimeout: app.cfg.LLMTimeout + 30*time.Second,
	}
}
