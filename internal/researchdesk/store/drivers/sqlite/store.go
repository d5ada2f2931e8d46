package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/sqldb"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store is the default driver. It embeds the shared SQL repositories and
// adds the sqlite migrations.
type Store struct {
	*sqldb.Store
	dsn string
}

var _ store.Store = (*Store)(nil)

// NewStore opens dsn (a file path or ":memory:") with foreign keys enforced.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}

	// sqlite serialises writers anyway. One connection also keeps an
	// in-memory database alive and shared across the pool.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		Store: sqldb.New(db, sqldb.Dialect{
			Rebind:            sqldb.Question,
			IsUniqueViolation: isUniqueViolation,
		}),
		dsn: dsn,
	}, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
