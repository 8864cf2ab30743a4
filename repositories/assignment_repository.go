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
	ErrAssignmentNotFound      = errors.New("team assignment not found")
	ErrAssignmentConflict      = errors.New("team member is already assigned to this rally")
	ErrAssignmentInvalidRally  = errors.New("invalid rally reference")
	ErrAssignmentInvalidMember = errors.New("invalid team member reference")
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.TeamAssignment) error
	ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.TeamAssignment, error)
	Delete(ctx context.Context, ownerID, id int) error
	DeleteByRally(ctx context.Context, exec SQLExecutor, rallyID int) error
}

type postgresAssignmentRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &postgresAssignmentRepository{db: db}
}

func (r *postgresAssignmentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresAssignmentRepository) Create(ctx context.Context, a *models.TeamAssignment) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO rally_team_assignments (rally_id, team_member_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, a.RallyID, a.TeamMemberID, a.OwnerID).
		Scan(&a.ID, &a.CreatedAt)
	return r.handleAssignmentError(err)
}

func (r *postgresAssignmentRepository) ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.TeamAssignment, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, rally_id, team_member_id, owner_id, created_at
		FROM rally_team_assignments
		WHERE rally_id = $1 AND owner_id = $2
		ORDER BY created_at, id`

	rows, err := executor.QueryContext(ctx, query, rallyID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.TeamAssignment, 0)
	for rows.Next() {
		var a models.TeamAssignment
		if scanErr := rows.Scan(&a.ID, &a.RallyID, &a.TeamMemberID, &a.OwnerID, &a.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) Delete(ctx context.Context, ownerID, id int) error {
	executor := r.getExecutor(nil)
	query := `DELETE FROM rally_team_assignments WHERE id = $1 AND owner_id = $2`

	result, err := executor.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return r.handleAssignmentError(err)
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}

// DeleteByRally removes every assignment of a rally. Used inside the
// rally-delete transaction; deleting zero rows is fine here.
func (r *postgresAssignmentRepository) DeleteByRally(ctx context.Context, exec SQLExecutor, rallyID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM rally_team_assignments WHERE rally_id = $1`

	if _, err := executor.ExecContext(ctx, query, rallyID); err != nil {
		return r.handleAssignmentError(err)
	}
	return nil
}

func (r *postgresAssignmentRepository) handleAssignmentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "rally_team_assignments_rally_id_team_member_id_key" {
				return ErrAssignmentConflict
			}
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "rally_team_assignments_rally_id_fkey":
				return ErrAssignmentInvalidRally
			case "rally_team_assignments_team_member_id_fkey":
				return ErrAssignmentInvalidMember
			}
		}
	}
	return fmt.Errorf("assignment repository: %w", err)
}
