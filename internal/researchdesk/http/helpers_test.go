package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/researchdesk/internal/researchdesk/http"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
	"github.com/aussiebroadwan/researchdesk/pkg/llm"
	"github.com/aussiebroadwan/researchdesk/pkg/objstore"
	"github.com/aussiebroadwan/researchdesk/pkg/researchsdk"
	"github.com/stretchr/testify/require"
)

const testIssuer = "researchdesk-test"

type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	messages []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, msgs []llm.Message, _ *llm.SamplingOptions) (*llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = msgs
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.reply, FinishReason: "stop"}, nil
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1].Content
}

type testEnv struct {
	t       *testing.T
	handler http.Handler
	llm     *fakeLLM
	objects *objstore.MemoryStore
}

type envOption func(*envConfig)

type envConfig struct {
	papers bool
	scope  service.ReadScope
}

func withPapers() envOption { return func(c *envConfig) { c.papers = true } }

func withReadScope(s service.ReadScope) envOption { return func(c *envConfig) { c.scope = s } }

// newTestEnv wires the full router over in-memory sqlite.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{scope: service.ReadScopeAny}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), testIssuer, time.Minute)
	require.NoError(t, err)

	hasher := cryptox.NewHasherWithParams("pepper", cryptox.Params{
		Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8,
	})

	env := &testEnv{t: t, llm: &fakeLLM{reply: "Looks original."}}

	projects := &service.ProjectService{Store: st, ReadScope: cfg.scope}
	papers := &service.PaperService{Projects: projects, BasePath: "/api"}
	if cfg.papers {
		env.objects = objstore.NewMemoryStore("https://papers.test")
		papers.Objects = env.objects
		projects.Papers = papers
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(signer, httpapi.RouterConfig{
		Prefix:         "/api",
		BuildVersion:   "test",
		MaxUploadBytes: 1 << 20,
	}, st, logger)

	router.UserService = &service.UserService{
		Store:  st,
		Hasher: hasher,
		Tokens: &service.TokenService{Signer: signer, Issuer: testIssuer},
	}
	router.ProjectService = projects
	router.SearchService = &service.SearchService{Projects: projects}
	router.PaperService = papers
	router.AnalysisService = &service.AnalysisService{LLM: env.llm}
	router.DirectoryService = &service.DirectoryService{Projects: projects}
	router.ApplyRoutes()

	env.handler = router
	return env
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// do sends body as JSON. A string body is sent verbatim.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(req)
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func (e *testEnv) doMultipart(method, path, token string, fields map[string]string, file *filePart) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(e.t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(e.t, err)
		_, err = part.Write(file.data)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) researchsdk.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[researchsdk.ErrorResponse](t, rec)
	require.Equal(t, code, body.Code)
	if message != "" {
		require.Equal(t, message, body.Message)
	}
	return body
}

// register signs up a researcher and returns the auth response.
func (e *testEnv) register(email string) researchsdk.AuthResponse {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/auth/register", "", researchsdk.RegisterRequest{
		Name:               "User " + email,
		Email:              email,
		Password:           "secret123",
		Role:               "researcher",
		RegistrationNumber: "R-100",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[researchsdk.AuthResponse](e.t, rec)
}

func (e *testEnv) createProject(token string, req researchsdk.CreateProjectRequest) researchsdk.Project {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/projects", token, req)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[researchsdk.Project](e.t, rec)
}

func sampleProject(name string) researchsdk.CreateProjectRequest {
	return researchsdk.CreateProjectRequest{
		Name:       name,
		Track:      "AI",
		Format:     "IEEE",
		Conference: "NeurIPS",
		Collaborators: []researchsdk.Collaborator{
			{Name: "Dr. Guide", Email: "guide@example.com", Role: "guide", Organization: "Uni"},
		},
	}
}
