package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, email, phone, quantity,
		       status, is_flagged, total, created_at
		FROM orders
		WHERE order_number = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.Email,
		&order.Phone, &order.Quantity, &order.Status, &order.IsFlagged,
		&order.Total, &order.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by number: %w", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) FindDetailByOrderID(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	query := `
		SELECT id, order_id, product, sku, upc, qty, sale, cost
		FROM order_details
		WHERE order_id = ?
	`

	var detail domain.OrderDetail
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&detail.ID, &detail.OrderID, &detail.Product, &detail.SKU,
		&detail.UPC, &detail.Qty, &detail.Sale, &detail.Cost,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("details for order id %d not found", orderID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order details: %w", err)
	}

	return &detail, nil
}

func (r *MySQLOrderRepository) ListWithDetails(ctx context.Context) ([]domain.OrderWithDetail, error) {
	query := `
		SELECT o.id, o.order_number, o.customer_name, o.email, o.phone,
		       o.quantity, o.status, o.is_flagged, o.total, o.created_at,
		       d.id, d.order_id, d.product, d.sku, d.upc, d.qty, d.sale, d.cost
		FROM orders o
		LEFT JOIN order_details d ON d.order_id = o.id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var results []domain.OrderWithDetail
	for rows.Next() {
		var o domain.OrderWithDetail
		var detailID, detailOrderID sql.NullInt64
		var product, sku, upc sql.NullString
		var qty sql.NullInt64
		var sale, cost sql.NullString

		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerName, &o.Email, &o.Phone,
			&o.Quantity, &o.Status, &o.IsFlagged, &o.Total, &o.CreatedAt,
			&detailID, &detailOrderID, &product, &sku, &upc, &qty, &sale, &cost,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		if detailID.Valid {
			detail := domain.OrderDetail{
				ID:      detailID.Int64,
				OrderID: detailOrderID.Int64,
				Product: product.String,
				SKU:     sku.String,
				UPC:     upc.String,
				Qty:     int(qty.Int64),
			}
			if err := detail.Sale.Scan(sale.String); err != nil {
				return nil, fmt.Errorf("scanning sale price: %w", err)
			}
			if err := detail.Cost.Scan(cost.String); err != nil {
				return nil, fmt.Errorf("scanning cost price: %w", err)
			}
			o.Detail = &detail
		}

		results = append(results, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return results, nil
}

// CreateWithDetail inserts the order and its 1:1 detail in one transaction
// so an order can never exist without its priced line item.
func (r *MySQLOrderRepository) CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (order_number, customer_name, email, phone, quantity,
		                    status, is_flagged, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, orderQuery,
		order.OrderNumber, order.CustomerName, order.Email, order.Phone,
		order.Quantity, order.Status, order.IsFlagged, order.Total, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting order insert id: %w", err)
	}
	order.ID = orderID
	detail.OrderID = orderID

	detailQuery := `
		INSERT INTO order_details (order_id, product, sku, upc, qty, sale, cost)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	detailResult, err := tx.ExecContext(ctx, detailQuery,
		detail.OrderID, detail.Product, detail.SKU, detail.UPC,
		detail.Qty, detail.Sale, detail.Cost,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting order details: %w", err)
	}

	detailID, err := detailResult.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting detail insert id: %w", err)
	}
	detail.ID = detailID

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order creation: %w", err)
	}

	return order, nil
}

// UpdateWithDetail persists the mutable order fields and mirrors the
// quantity into order_details in the same transaction.
func (r *MySQLOrderRepository) UpdateWithDetail(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		UPDATE orders
		SET status = ?, quantity = ?, is_flagged = ?, total = ?
		WHERE order_number = ?
	`

	result, err := tx.ExecContext(ctx, orderQuery,
		order.Status, order.Quantity, order.IsFlagged, order.Total, order.OrderNumber,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Could also mean nothing changed; re-check existence.
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE order_number = ?`, order.OrderNumber).Scan(&id)
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(fmt.Sprintf("order %s not found", order.OrderNumber))
		}
		if err != nil {
			return fmt.Errorf("checking order existence: %w", err)
		}
	}

	detailQuery := `
		UPDATE order_details d
		JOIN orders o ON o.id = d.order_id
		SET d.qty = ?
		WHERE o.order_number = ?
	`

	if _, err := tx.ExecContext(ctx, detailQuery, order.Quantity, order.OrderNumber); err != nil {
		return fmt.Errorf("updating order details: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order update: %w", err)
	}

	return nil
}

// Delete removes the order and its exclusively-owned detail row.
func (r *MySQLOrderRepository) Delete(ctx context.Context, orderNumber string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	detailQuery := `
		DELETE d FROM order_details d
		JOIN orders o ON o.id = d.order_id
		WHERE o.order_number = ?
	`

	if _, err := tx.ExecContext(ctx, detailQuery, orderNumber); err != nil {
		return fmt.Errorf("deleting order details: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE order_number = ?`, orderNumber)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderNumber))
	}

	return tx.Commit()
}
