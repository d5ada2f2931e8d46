// Package sqldb holds the repository code shared by the database/sql drivers.
// The sqlite and postgres packages only differ in how they open the pool,
// how placeholders are written and which migrations they embed.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures the differences between SQL engines the repositories care
// about.
type Dialect struct {
	// Rebind rewrites '?' placeholders into the engine's native form.
	Rebind func(query string) string

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(err error) bool
}

// Question leaves '?' placeholders as they are.
func Question(query string) string { return query }

// Dollar rewrites '?' placeholders to $1, $2, ... in order. Queries in this
// package never contain a literal question mark.
func Dollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Store implements store.Store on a *sql.DB, except ApplyMigrations which
// the embedding driver supplies.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the pool for migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(&txStore{q: tx, d: s.dialect}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users       { return &usersRepo{q: s.db, d: s.dialect} }
func (s *Store) Projects() store.Projects { return &projectsRepo{q: s.db, d: s.dialect} }

type txStore struct {
	q DBTX
	d Dialect
}

func (t *txStore) Users() store.Users       { return &usersRepo{q: t.q, d: t.d} }
func (t *txStore) Projects() store.Projects { return &projectsRepo{q: t.q, d: t.d} }

// now matches the millisecond precision every driver can round-trip.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// placeholders returns "?, ?, ..." with n entries.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
