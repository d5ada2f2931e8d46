package researchdesk_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/app"
	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/aussiebroadwan/researchdesk/pkg/llm"
	"github.com/aussiebroadwan/researchdesk/pkg/objstore"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests drive a fully wired server through the SDK. The server
 * runs in-process on a temporary sqlite file with miniredis behind the rate
 * limiters and a canned language model.
 */

const testPassword = "Secret123!"

// echoLLM gives a canned report and remembers the last prompt.
type echoLLM struct {
	mu   sync.Mutex
	last string
}

func (e *echoLLM) Chat(_ context.Context, msgs []llm.Message, _ *llm.SamplingOptions) (*llm.Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = msgs[len(msgs)-1].Content
	return &llm.Response{Content: "## Report\nreviewed", FinishReason: "stop"}, nil
}

func (e *echoLLM) prompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

type server struct {
	client *researchsdk.Client
	llm    *echoLLM
	redis  *miniredis.Miniredis
}

type configFunc func(*app.Config)

// startServer boots the application and returns an SDK client for it.
func startServer(t *testing.T, mutators ...configFunc) *server {
	t.Helper()

	mr := miniredis.RunT(t)

	cfg := app.LoadConfig()
	cfg.Env = "test"
	cfg.StoreDriver = "sqlite"
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "researchdesk.db")
	cfg.PepperFile = filepath.Join(t.TempDir(), "pepper")
	cfg.TokenAlgorithm = "EdDSA"
	cfg.TokenKeyFile = filepath.Join(t.TempDir(), "token_ed25519.pem")
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.MeiliURL = ""
	cfg.S3Bucket = ""
	for _, m := range mutators {
		m(&cfg)
	}

	fake := &echoLLM{}
	hasher := cryptox.NewHasherWithParams("e2e-pepper", cryptox.Params{
		Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8,
	})

	application, err := app.New(cfg,
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		app.WithHasher(hasher),
		app.WithLLM(fake),
		app.WithObjectStore(objstore.NewMemoryStore("https://papers.e2e.test")),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Close()
	})

	return &server{
		client: researchsdk.NewClient(srv.URL),
		llm:    fake,
		redis:  mr,
	}
}

// registerResearcher signs up a researcher named after the local part of
// email.
func registerResearcher(t *testing.T, c *researchsdk.Client, email string) *researchsdk.Session {
	t.Helper()
	name, _, _ := strings.Cut(email, "@")
	s, err := c.Register(t.Context(), researchsdk.RegisterRequest{
		Name:               name,
		Email:              email,
		Password:           testPassword,
		Role:               "researcher",
		RegistrationNumber: "R-" + name,
	})
	require.NoError(t, err)
	return s
}

func registerGuide(t *testing.T, c *researchsdk.Client, email string) *researchsdk.Session {
	t.Helper()
	name, _, _ := strings.Cut(email, "@")
	s, err := c.Register(t.Context(), researchsdk.RegisterRequest{
		Name:      name,
		Email:     email,
		Password:  testPassword,
		Role:      "guide",
		FacultyID: "F-" + name,
	})
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T { return &v }
