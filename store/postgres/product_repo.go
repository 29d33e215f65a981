package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jrsteele09/go-catalog-server/products"
)

var _ products.Repo = (*ProductRepo)(nil)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func (r *ProductRepo) Insert(ctx context.Context, product *products.Product) (int64, error) {
	query := `
		INSERT INTO products (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var description *string
	if product.Description != "" {
		description = &product.Description
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, product.Name, product.Price, description).Scan(&id); err != nil {
		return 0, fmt.Errorf("ProductRepo.Insert: %w", err)
	}
	return id, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *products.Product) error {
	query := `
		UPDATE products SET name = $1, price = $2, description = $3
		WHERE id = $4
	`

	if _, err := r.pool.Exec(ctx, query, product.Name, product.Price, product.Description, product.ID); err != nil {
		return fmt.Errorf("ProductRepo.Update: %w", err)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("ProductRepo.Delete: %w", err)
	}
	return nil
}

func (r *ProductRepo) All(ctx context.Context, limit int) ([]*products.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, price, COALESCE(description, '') FROM products ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("ProductRepo.All: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepo) Search(ctx context.Context, params products.SearchParams) (*products.Page, error) {
	params = params.Normalize()

	// The filter and the count must see the same rows.
	whereClause := ""
	args := []any{}
	if search := strings.TrimSpace(params.Search); search != "" {
		whereClause = "WHERE name ILIKE $1 OR description ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var totalCount int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("ProductRepo.Search count: %w", err)
	}

	// OrderBy has already been reduced to whitelisted column names by
	// Normalize, so interpolating it here cannot inject.
	orderClause := strings.Join(params.OrderBy, " ASC, ") + " ASC"
	dataQuery := fmt.Sprintf(
		"SELECT id, name, price, COALESCE(description, '') FROM products %s ORDER BY %s OFFSET $%d LIMIT $%d",
		whereClause, orderClause, len(args)+1, len(args)+2,
	)
	args = append(args, params.Offset(), params.PageSize)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("ProductRepo.Search: %w", err)
	}
	defer rows.Close()

	data, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	return products.NewPage(data, params, totalCount), nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProducts(rows pgxRows) ([]*products.Product, error) {
	var list []*products.Product
	for rows.Next() {
		var p products.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
			return nil, fmt.Errorf("scanProducts: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanProducts rows: %w", err)
	}
	return list, nil
}
