package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type MySQLExpenseRepository struct {
	db *sql.DB
}

func NewMySQLExpenseRepository(db *sql.DB) *MySQLExpenseRepository {
	return &MySQLExpenseRepository{db: db}
}

func (r *MySQLExpenseRepository) FindByID(ctx context.Context, id int64) (*domain.Expense, error) {
	query := `
		SELECT id, name, quantity, cost, date, total_cost, created_at
		FROM expenses
		WHERE id = ?
	`

	var e domain.Expense
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Quantity, &e.Cost, &e.Date, &e.TotalCost, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("expense with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying expense by id: %w", err)
	}

	return &e, nil
}

func (r *MySQLExpenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	query := `
		SELECT id, name, quantity, cost, date, total_cost, created_at
		FROM expenses
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Quantity, &e.Cost, &e.Date, &e.TotalCost, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense row: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (r *MySQLExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (name, quantity, cost, date, total_cost) VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Quantity, e.Cost, e.Date, e.TotalCost,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLExpenseRepository) Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET name = ?, quantity = ?, cost = ?, date = ?, total_cost = ? WHERE id = ?`,
		e.Name, e.Quantity, e.Cost, e.Date, e.TotalCost, e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating expense: %w", err)
	}

	return r.FindByID(ctx, e.ID)
}

func (r *MySQLExpenseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("expense with id %d not found", id))
	}

	return nil
}
