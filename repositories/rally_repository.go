package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rallyops/rally-planner/models"
)

var (
	ErrRallyNotFound     = errors.New("rally not found")
	ErrRallyInvalidOwner = errors.New("invalid rally owner reference")
)

// RallyRepository is the owner-scoped DAL for rally_events. Every read
// takes the owning user's id and injects it as an equality predicate, so
// an unscoped read of this collection cannot be expressed.
type RallyRepository interface {
	Create(ctx context.Context, rally *models.RallyEvent) error
	GetByID(ctx context.Context, ownerID, id int) (*models.RallyEvent, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.RallyEvent, error)
	Update(ctx context.Context, rally *models.RallyEvent) error
	Delete(ctx context.Context, exec SQLExecutor, ownerID, id int) error
}

type postgresRallyRepository struct {
	db *sql.DB
}

func NewPostgresRallyRepository(db *sql.DB) RallyRepository {
	return &postgresRallyRepository{db: db}
}

func (r *postgresRallyRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const rallyColumns = `id, owner_id, name, start_date, end_date, location, description, status, created_at`

func (r *postgresRallyRepository) Create(ctx context.Context, rally *models.RallyEvent) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO rally_events (owner_id, name, start_date, end_date, location, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		rally.OwnerID, rally.Name, rally.StartDate, rally.EndDate,
		rally.Location, rally.Description, rally.Status,
	).Scan(&rally.ID, &rally.CreatedAt)

	return r.handleRallyError(err)
}

func (r *postgresRallyRepository) GetByID(ctx context.Context, ownerID, id int) (*models.RallyEvent, error) {
	executor := r.getExecutor(nil)
	query := `SELECT ` + rallyColumns + ` FROM rally_events WHERE id = $1 AND owner_id = $2`

	rally := &models.RallyEvent{}
	err := executor.QueryRowContext(ctx, query, id, ownerID).Scan(
		&rally.ID, &rally.OwnerID, &rally.Name, &rally.StartDate, &rally.EndDate,
		&rally.Location, &rally.Description, &rally.Status, &rally.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRallyNotFound
		}
		return nil, err
	}
	return rally, nil
}

func (r *postgresRallyRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.RallyEvent, error) {
	executor := r.getExecutor(nil)
	query := `SELECT ` + rallyColumns + ` FROM rally_events WHERE owner_id = $1 ORDER BY start_date, created_at`

	rows, err := executor.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rallies := make([]models.RallyEvent, 0)
	for rows.Next() {
		var rally models.RallyEvent
		if scanErr := rows.Scan(
			&rally.ID, &rally.OwnerID, &rally.Name, &rally.StartDate, &rally.EndDate,
			&rally.Location, &rally.Description, &rally.Status, &rally.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		rallies = append(rallies, rally)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rallies, nil
}

func (r *postgresRallyRepository) Update(ctx context.Context, rally *models.RallyEvent) error {
	executor := r.getExecutor(nil)
	query := `
		UPDATE rally_events SET
			name = $1,
			start_date = $2,
			end_date = $3,
			location = $4,
			description = $5,
			status = $6
		WHERE id = $7 AND owner_id = $8`

	result, err := executor.ExecContext(ctx, query,
		rally.Name, rally.StartDate, rally.EndDate, rally.Location,
		rally.Description, rally.Status, rally.ID, rally.OwnerID,
	)
	if err != nil {
		return r.handleRallyError(err)
	}
	return checkAffectedRows(result, ErrRallyNotFound)
}

func (r *postgresRallyRepository) Delete(ctx context.Context, exec SQLExecutor, ownerID, id int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM rally_events WHERE id = $1 AND owner_id = $2`

	result, err := executor.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return r.handleRallyError(err)
	}
	return checkAffectedRows(result, ErrRallyNotFound)
}

func (r *postgresRallyRepository) handleRallyError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "rally_events_owner_id_fkey" {
			return ErrRallyInvalidOwner
		}
	}
	return fmt.Errorf("rally repository: %w", err)
}
