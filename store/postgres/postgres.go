// Package postgres implements the user, product and audit storage
// interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jrsteele09/go-catalog-server/store/postgres/migrations"
)

// Store owns the connection pool shared by the repositories.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New ping: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() *UserRepo {
	return &UserRepo{pool: s.pool}
}

func (s *Store) Products() *ProductRepo {
	return &ProductRepo{pool: s.pool}
}

func (s *Store) Audit() *AuditSink {
	return &AuditSink{pool: s.pool}
}

// RunMigrations sets up goose with the embedded migrations and runs them.
// goose works over database/sql, so it opens its own short-lived
// connection via the pgx stdlib driver.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres.RunMigrations open: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("postgres.RunMigrations dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("postgres.RunMigrations up: %w", err)
	}

	return nil
}
