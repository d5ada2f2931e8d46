package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, mongo) implement this. Sub-repositories hang off it so a
// transaction can hand out the same repositories bound to itself, and so
// nobody starts a transaction within a transaction.
type Store interface {
	Users() Users
	Projects() Projects

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	//
	// The mongo driver runs fn without a transaction; every repository call
	// it makes is a single-document write.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is the transaction-scoped view handed to WithTx callbacks.
type Tx interface {
	Users() Users
	Projects() Projects
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the email
	// is taken.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up the lowercase email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateUser writes the non-nil fields of patch and bumps updated_at.
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) error
}

type Projects interface {
	// CreateProject inserts the project and its collaborators in order.
	CreateProject(ctx context.Context, p domain.Project) error

	// GetProject returns the project with collaborators and the owner
	// resolved.
	GetProject(ctx context.Context, id string) (domain.Project, error)

	// ListVisible returns projects owned by userID or listing email as a
	// collaborator (case-insensitive), newest first with ties broken by id
	// descending.
	ListVisible(ctx context.Context, userID, email string) ([]domain.Project, error)

	// ListAll returns every project, for search re-indexing.
	ListAll(ctx context.Context) ([]domain.Project, error)

	// UpdateProject writes the set fields of patch, replaces collaborators
	// when supplied and bumps updated_at. Returns ErrNotFound when the
	// project is gone.
	UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) error

	// DeleteProject removes the project and its collaborators.
	DeleteProject(ctx context.Context, id string) error
}
