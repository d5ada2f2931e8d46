package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "researchdesk-test"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestHasher() *cryptox.Hasher {
	return cryptox.NewHasherWithParams("pepper", cryptox.Params{
		Memory:      64,
		Iterations:  1,
		Parallelism: 1,
		KeyLength:   16,
		SaltLength:  8,
	})
}

func newTestSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()
	s, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), testIssuer, time.Minute)
	require.NoError(t, err)
	return s
}

func newUserService(t *testing.T, s store.Store) (*UserService, *jwtx.HS256) {
	t.Helper()
	signer := newTestSigner(t)
	return &UserService{
		Store:  s,
		Hasher: newTestHasher(),
		Tokens: &TokenService{Signer: signer, Issuer: testIssuer},
	}, signer
}

// register creates a researcher and returns the identity its token carries.
func register(t *testing.T, users *UserService, email string) domain.Identity {
	t.Helper()
	res, err := users.Register(context.Background(), RegisterInput{
		Name:               "Test " + email,
		Email:              email,
		Password:           "secret123",
		Role:               "researcher",
		RegistrationNumber: "R-" + email,
	})
	require.NoError(t, err)
	return domain.Identity{UserID: res.User.ID, Email: res.User.Email, Name: res.User.Name, Role: res.User.Role}
}

// fakeIndexer records what the project service sends to the index.
type fakeIndexer struct {
	mu      sync.Mutex
	indexed map[string]domain.Project
	removed []string
	calls   chan struct{}
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{indexed: make(map[string]domain.Project), calls: make(chan struct{}, 64)}
}

func (f *fakeIndexer) IndexProjects(_ context.Context, ps ...domain.Project) error {
	f.mu.Lock()
	for _, p := range ps {
		f.indexed[p.ID] = p
	}
	f.mu.Unlock()
	f.calls <- struct{}{}
	return nil
}

func (f *fakeIndexer) RemoveProject(_ context.Context, id string) error {
	f.mu.Lock()
	f.removed = append(f.removed, id)
	delete(f.indexed, id)
	f.mu.Unlock()
	f.calls <- struct{}{}
	return nil
}

func (f *fakeIndexer) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("indexer was not called")
	}
}

func (f *fakeIndexer) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.indexed[id]
	return ok
}

func sampleProject() CreateProjectInput {
	return CreateProjectInput{
		Name:        "AI in Healthcare",
		Description: "Diagnosis from retinal images",
		Track:       "healthcare",
		Format:      "ieee",
		Conference:  "MICCAI",
		Deadline:    "2030-06-01",
		Collaborators: []CollaboratorInput{
			{Name: "Dr. Guide", Email: "guide@example.com", Role: "guide", Organization: "Uni"},
		},
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	out := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		out[i] = f.Field
	}
	return out
}
