package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/sqldb"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation is the SQLSTATE postgres reports for unique_violation.
const uniqueViolation = "23505"

// Store runs the shared SQL repositories over pgx.
type Store struct {
	*sqldb.Store
}

var _ store.Store = (*Store)(nil)

// NewStore opens a pooled connection to databaseURL and pings it.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{
		Store: sqldb.New(db, sqldb.Dialect{
			Rebind:            sqldb.Dollar,
			IsUniqueViolation: isUniqueViolation,
		}),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
