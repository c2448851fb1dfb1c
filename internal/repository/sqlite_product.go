package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteProductRepo implements ProductRepo using a SQLite database.
type SQLiteProductRepo struct {
	db db.DBTX
}

func NewSQLiteProductRepo(conn db.DBTX) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: conn}
}

func (r *SQLiteProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, timestamp(p.CreatedAt), timestamp(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *SQLiteProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (r *SQLiteProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

func (r *SQLiteProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, updated_at = ? WHERE id = ?`,
		p.Name, timestamp(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return checkAffected(res, "product")
}

func (r *SQLiteProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return checkAffected(res, "product")
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &createdAt, &updatedAt); err != nil {
		return nil, notFound(err, "product")
	}
	var err error
	if p.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
