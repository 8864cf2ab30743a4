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
	ErrScheduleItemNotFound     = errors.New("schedule item not found")
	ErrScheduleItemInvalidRally = errors.New("invalid rally reference")
)

type ScheduleItemRepository interface {
	Create(ctx context.Context, item *models.ScheduleItem) error
	GetByID(ctx context.Context, ownerID, id int) (*models.ScheduleItem, error)
	ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.ScheduleItem, error)
	Delete(ctx context.Context, ownerID, id int) error
	DeleteByRally(ctx context.Context, exec SQLExecutor, rallyID int) error
}

type postgresScheduleItemRepository struct {
	db *sql.DB
}

func NewPostgresScheduleItemRepository(db *sql.DB) ScheduleItemRepository {
	return &postgresScheduleItemRepository{db: db}
}

func (r *postgresScheduleItemRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const scheduleItemColumns = `id, rally_id, owner_id, title, event_date, event_time, type, location, description, created_at`

func (r *postgresScheduleItemRepository) Create(ctx context.Context, item *models.ScheduleItem) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO schedule_items (rally_id, owner_id, title, event_date, event_time, type, location, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		item.RallyID, item.OwnerID, item.Title, item.EventDate,
		item.EventTime, item.Type, item.Location, item.Description,
	).Scan(&item.ID, &item.CreatedAt)
	return r.handleScheduleError(err)
}

func (r *postgresScheduleItemRepository) GetByID(ctx context.Context, ownerID, id int) (*models.ScheduleItem, error) {
	executor := r.getExecutor(nil)
	query := `SELECT ` + scheduleItemColumns + ` FROM schedule_items WHERE id = $1 AND owner_id = $2`

	item := &models.ScheduleItem{}
	err := executor.QueryRowContext(ctx, query, id, ownerID).Scan(
		&item.ID, &item.RallyID, &item.OwnerID, &item.Title, &item.EventDate,
		&item.EventTime, &item.Type, &item.Location, &item.Description, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresScheduleItemRepository) ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.ScheduleItem, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT ` + scheduleItemColumns + `
		FROM schedule_items
		WHERE rally_id = $1 AND owner_id = $2
		ORDER BY event_date, event_time NULLS LAST, id`

	rows, err := executor.QueryContext(ctx, query, rallyID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.ScheduleItem, 0)
	for rows.Next() {
		var item models.ScheduleItem
		if scanErr := rows.Scan(
			&item.ID, &item.RallyID, &item.OwnerID, &item.Title, &item.EventDate,
			&item.EventTime, &item.Type, &item.Location, &item.Description, &item.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresScheduleItemRepository) Delete(ctx context.Context, ownerID, id int) error {
	executor := r.getExecutor(nil)
	query := `DELETE FROM schedule_items WHERE id = $1 AND owner_id = $2`

	result, err := executor.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return r.handleScheduleError(err)
	}
	return checkAffectedRows(result, ErrScheduleItemNotFound)
}

func (r *postgresScheduleItemRepository) DeleteByRally(ctx context.Context, exec SQLExecutor, rallyID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM schedule_items WHERE rally_id = $1`

	if _, err := executor.ExecContext(ctx, query, rallyID); err != nil {
		return r.handleScheduleError(err)
	}
	return nil
}

func (r *postgresScheduleItemRepository) handleScheduleError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "schedule_items_rally_id_fkey" {
			return ErrScheduleItemInvalidRally
		}
	}
	return fmt.Errorf("schedule item repository: %w", err)
}
