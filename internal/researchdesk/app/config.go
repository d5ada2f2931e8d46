package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
)

type Config struct {
	// Server
	ListenAddr          string        // HTTP listen address (default: :8080)
	APIPrefix           string        // Prefix of every API route (default: /api)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	CORSOrigins         []string      // Allowed CORS origins, comma separated (default: *)
	MaxUploadBytes      int64         // Multipart body limit (default: 25 MiB)

	// Logging
	Env       string // Environment (dev, staging, production) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Version   string // Reported by the health endpoints (default: BuildVersion)

	// Store
	StoreDriver   string // sqlite, postgres or mongo (default: sqlite)
	DatabaseDSN   string // File path, postgres URL or mongo URI (default: researchdesk.db)
	MongoDatabase string // Mongo database name (default: researchdesk)

	// Tokens
	TokenIssuer    string        // iss claim (default: researchdesk)
	TokenTTL       time.Duration // Token lifetime (default: 720h)
	TokenAlgorithm string        // HS256 or EdDSA (default: HS256)
	JWTSecret      string        // HS256 secret, required in production
	TokenKeyFile   string        // EdDSA PEM key, created when missing (default: ./token_ed25519.pem)

	PepperFile string // Password pepper, created when missing (default: ./pepper)

	ProjectReadScope string // any or visible (default: any)

	// LLM
	GroqAPIKey string
	LLMBaseURL string        // OpenAI compatible endpoint (default: Groq)
	LLMModel   string        // (default: llama-3.3-70b-versatile)
	LLMTimeout time.Duration // Outbound call timeout (default: 60s)

	// Rate limiting
	RedisURL string // Shared limiter backend. Empty keeps limiters in memory.

	// Search
	MeiliURL           string // Empty disables Meilisearch
	MeiliAPIKey        string
	MeiliIndex         string        // (default: researchdesk_projects)
	SearchSyncInterval time.Duration // Full re-index interval (default: 15m)

	// Paper storage
	S3Bucket          string // Empty disables paper storage
	S3Region          string // (default: us-east-1)
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
	PaperMaxBytes     int64 // (default: 20 MiB)
}

func LoadConfig() Config {
	return Config{
		ListenAddr:          getEnvOrDefault("LISTEN_ADDR", ":8080"),
		APIPrefix:           getEnvOrDefault("API_PREFIX", "/api"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		CORSOrigins:         splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		MaxUploadBytes:      int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 25<<20)),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Version:   getEnvOrDefault("VERSION", BuildVersion),

		StoreDriver:   getEnvOrDefault("STORE_DRIVER", "sqlite"),
		DatabaseDSN:   getEnvOrDefault("DATABASE_DSN", "researchdesk.db"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "researchdesk"),

		TokenIssuer:    getEnvOrDefault("TOKEN_ISSUER", "researchdesk"),
		TokenTTL:       getEnvDurationOrDefault("TOKEN_TTL", 720*time.Hour),
		TokenAlgorithm: getEnvOrDefault("TOKEN_ALGORITHM", "HS256"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenKeyFile:   getEnvOrDefault("TOKEN_KEY_FILE", "token_ed25519.pem"),

		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),

		ProjectReadScope: getEnvOrDefault("PROJECT_READ_SCOPE", string(service.ReadScopeAny)),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMModel:   os.Getenv("LLM_MODEL"),
		LLMTimeout: getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliURL:           os.Getenv("MEILI_URL"),
		MeiliAPIKey:        os.Getenv("MEILI_API_KEY"),
		MeiliIndex:         os.Getenv("MEILI_INDEX"),
		SearchSyncInterval: getEnvDurationOrDefault("SEARCH_SYNC_INTERVAL", 15*time.Minute),

		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3UsePathStyle:    getEnvBoolOrDefault("S3_USE_PATH_STYLE", false),
		PaperMaxBytes:     int64(getEnvIntOrDefault("PAPER_MAX_BYTES", service.DefaultPaperMaxBytes)),
	}
}

// IsProduction reports whether ENV names a production deployment.
func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Validate rejects settings that cannot work together.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case "sqlite", "postgres", "mongo":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be sqlite, postgres or mongo, got %q", c.StoreDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	if c.StoreDriver == "mongo" && c.MongoDatabase == "" {
		errs = append(errs, errors.New("MONGO_DATABASE is required for the mongo driver"))
	}

	switch c.TokenAlgorithm {
	case "HS256":
		if c.JWTSecret == "" && c.IsProduction() {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		}
		if c.JWTSecret != "" && len(c.JWTSecret) < 16 {
			errs = append(errs, errors.New("JWT_SECRET must be at least 16 bytes"))
		}
	case "EdDSA":
		if c.TokenKeyFile == "" {
			errs = append(errs, errors.New("TOKEN_KEY_FILE is required for EdDSA"))
		}
	default:
		errs = append(errs, fmt.Errorf("TOKEN_ALGORITHM must be HS256 or EdDSA, got %q", c.TokenAlgorithm))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	if !service.ReadScope(c.ProjectReadScope).Valid() {
		errs = append(errs, fmt.Errorf("PROJECT_READ_SCOPE must be any or visible, got %q", c.ProjectReadScope))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	if c.MaxUploadBytes <= 0 || c.PaperMaxBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES and PAPER_MAX_BYTES must be positive"))
	}
	if c.PaperMaxBytes > c.MaxUploadBytes {
		errs = append(errs, errors.New("PAPER_MAX_BYTES cannot exceed MAX_UPLOAD_BYTES"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
