package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

type MySQLCoopRepository struct {
	db *sql.DB
}

func NewMySQLCoopRepository(db *sql.DB) *MySQLCoopRepository {
	return &MySQLCoopRepository{db: db}
}

func (r *MySQLCoopRepository) FindByID(ctx context.Context, id int64) (*domain.Coop, error) {
	query := `
		SELECT id, name, num_birds, has_rooster, created_at
		FROM coops
		WHERE id = ?
	`

	var c domain.Coop
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.NumBirds, &c.HasRooster, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("coop with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying coop by id: %w", err)
	}

	return &c, nil
}

func (r *MySQLCoopRepository) FindByName(ctx context.Context, name string) (*domain.Coop, error) {
	query := `
		SELECT id, name, num_birds, has_rooster, created_at
		FROM coops
		WHERE name = ?
	`

	var c domain.Coop
	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.NumBirds, &c.HasRooster, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("coop %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying coop by name: %w", err)
	}

	return &c, nil
}

func (r *MySQLCoopRepository) List(ctx context.Context) ([]domain.Coop, error) {
	query := `
		SELECT id, name, num_birds, has_rooster, created_at
		FROM coops
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying coops: %w", err)
	}
	defer rows.Close()

	var coops []domain.Coop
	for rows.Next() {
		var c domain.Coop
		if err := rows.Scan(&c.ID, &c.Name, &c.NumBirds, &c.HasRooster, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning coop row: %w", err)
		}
		coops = append(coops, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coop rows: %w", err)
	}

	return coops, nil
}

func (r *MySQLCoopRepository) Create(ctx context.Context, c *domain.Coop) (*domain.Coop, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO coops (name, num_birds, has_rooster) VALUES (?, ?, ?)`,
		c.Name, c.NumBirds, c.HasRooster,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting coop: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLCoopRepository) Update(ctx context.Context, c *domain.Coop) (*domain.Coop, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE coops SET name = ?, num_birds = ?, has_rooster = ? WHERE id = ?`,
		c.Name, c.NumBirds, c.HasRooster, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating coop: %w", err)
	}

	return r.FindByID(ctx, c.ID)
}

func (r *MySQLCoopRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting coop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("coop with id %d not found", id))
	}

	return nil
}
