package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jrsteele09/go-catalog-server/users"
)

var _ users.Repo = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func (r *UserRepo) Insert(ctx context.Context, name, email, passwordHash string, role users.RoleType) (int64, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, name, email, passwordHash, string(role)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, users.DuplicateEmailErr
		}
		return 0, fmt.Errorf("UserRepo.Insert: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password, role FROM users WHERE email = $1`, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password, role FROM users WHERE id = $1`, id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*users.User, error) {
	var user users.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.NotFoundErr
		}
		return nil, fmt.Errorf("UserRepo.getOne: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*users.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, email, password, role FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("UserRepo.List: %w", err)
	}
	defer rows.Close()

	var list []*users.User
	for rows.Next() {
		var user users.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role); err != nil {
			return nil, fmt.Errorf("UserRepo.List scan: %w", err)
		}
		list = append(list, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UserRepo.List rows: %w", err)
	}

	return list, nil
}
