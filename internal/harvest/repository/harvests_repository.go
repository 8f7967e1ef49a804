package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ruolez/EggsReserve/internal/domain"
	"github.com/ruolez/EggsReserve/internal/errors"
)

// HarvestFilter narrows List results. Nil fields are ignored.
type HarvestFilter struct {
	CoopID    *int64
	StartDate *time.Time
	EndDate   *time.Time
}

type MySQLHarvestRepository struct {
	db *sql.DB
}

func NewMySQLHarvestRepository(db *sql.DB) *MySQLHarvestRepository {
	return &MySQLHarvestRepository{db: db}
}

func (r *MySQLHarvestRepository) FindByID(ctx context.Context, id int64) (*domain.Harvest, error) {
	query := `
		SELECT h.id, h.coop_id, c.name, h.eggs_collected, h.collection_date, h.notes, h.created_at
		FROM harvests h
		JOIN coops c ON c.id = h.coop_id
		WHERE h.id = ?
	`

	var h domain.Harvest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.CoopID, &h.CoopName, &h.EggsCollected, &h.CollectionDate, &h.Notes, &h.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("harvest with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying harvest by id: %w", err)
	}

	return &h, nil
}

func (r *MySQLHarvestRepository) List(ctx context.Context, filter HarvestFilter) ([]domain.Harvest, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.CoopID != nil {
		conditions = append(conditions, "h.coop_id = ?")
		args = append(args, *filter.CoopID)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "h.collection_date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "h.collection_date <= ?")
		args = append(args, *filter.EndDate)
	}

	query := fmt.Sprintf(`
		SELECT h.id, h.coop_id, c.name, h.eggs_collected, h.collection_date, h.notes, h.created_at
		FROM harvests h
		JOIN coops c ON c.id = h.coop_id
		WHERE %s
		ORDER BY h.collection_date DESC`,
		strings.Join(conditions, " AND "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying harvests: %w", err)
	}
	defer rows.Close()

	var harvests []domain.Harvest
	for rows.Next() {
		var h domain.Harvest
		if err := rows.Scan(&h.ID, &h.CoopID, &h.CoopName, &h.EggsCollected, &h.CollectionDate, &h.Notes, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning harvest row: %w", err)
		}
		harvests = append(harvests, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating harvest rows: %w", err)
	}

	return harvests, nil
}

func (r *MySQLHarvestRepository) Create(ctx context.Context, h *domain.Harvest) (*domain.Harvest, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO harvests (coop_id, eggs_collected, collection_date, notes) VALUES (?, ?, ?, ?)`,
		h.CoopID, h.EggsCollected, h.CollectionDate, h.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting harvest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLHarvestRepository) Update(ctx context.Context, h *domain.Harvest) (*domain.Harvest, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE harvests SET coop_id = ?, eggs_collected = ?, collection_date = ?, notes = ? WHERE id = ?`,
		h.CoopID, h.EggsCollected, h.CollectionDate, h.Notes, h.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating harvest: %w", err)
	}

	return r.FindByID(ctx, h.ID)
}

func (r *MySQLHarvestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM harvests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting harvest: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("harvest with id %d not found", id))
	}

	return nil
}
