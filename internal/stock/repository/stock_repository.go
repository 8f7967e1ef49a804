package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type MySQLStockRepository struct {
	db *sql.DB
}

func NewMySQLStockRepository(db *sql.DB) *MySQLStockRepository {
	return &MySQLStockRepository{db: db}
}

func (r *MySQLStockRepository) Get(ctx context.Context) (*domain.Stock, error) {
	query := `
		SELECT id, current_quantity, max_quantity, updated_at
		FROM stock
		WHERE id = ?
	`

	var stock domain.Stock
	err := r.db.QueryRowContext(ctx, query, domain.StockRowID).Scan(
		&stock.ID, &stock.CurrentQuantity, &stock.MaxQuantity, &stock.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("stock register not provisioned")
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock: %w", err)
	}

	return &stock, nil
}

// SetQuantity is the sole mutator of the stock register. The range check is
// part of the UPDATE predicate so the read-modify-write is a single
// statement: concurrent callers serialize on the row lock and an
// out-of-range write matches zero rows instead of clobbering the counter.
func (r *MySQLStockRepository) SetQuantity(ctx context.Context, newQuantity int) (*domain.Stock, error) {
	query := `
		UPDATE stock
		SET current_quantity = ?, updated_at = NOW()
		WHERE id = ? AND ? >= 0 AND ? <= max_quantity
	`

	result, err := r.db.ExecContext(ctx, query, newQuantity, domain.StockRowID, newQuantity, newQuantity)
	if err != nil {
		return nil, fmt.Errorf("updating stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		stock, getErr := r.Get(ctx)
		if getErr != nil {
			return nil, getErr
		}
		// Row exists, so the predicate rejected the value.
		return nil, errors.NewValidationError(
			fmt.Sprintf("stock quantity %d outside valid range [0, %d]", newQuantity, stock.MaxQuantity),
			errors.ValidationDetail{Field: "quantity", Message: "quantity must be between 0 and max_quantity"},
		)
	}

	return r.Get(ctx)
}
