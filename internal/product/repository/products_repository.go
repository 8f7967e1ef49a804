package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id, name, sale_price, cost_price, sku, upc, created_at
		FROM products
		WHERE name = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.SalePrice, &p.CostPrice, &p.SKU, &p.UPC, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by name: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, sale_price, cost_price, sku, upc, created_at
		FROM products
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.SalePrice, &p.CostPrice, &p.SKU, &p.UPC, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, sale_price, cost_price, sku, upc, created_at
		FROM products
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SalePrice, &p.CostPrice, &p.SKU, &p.UPC, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, sale_price, cost_price, sku, upc)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.SalePrice, p.CostPrice, p.SKU, p.UPC)
	if err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = ?, sale_price = ?, cost_price = ?, sku = ?, upc = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, p.Name, p.SalePrice, p.CostPrice, p.SKU, p.UPC, p.ID); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	return r.FindByID(ctx, p.ID)
}

func (r *MySQLProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}
