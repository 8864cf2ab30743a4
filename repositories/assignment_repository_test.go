package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyops/rally-planner/models"
)

func TestAssignmentCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAssignmentRepository(db)

	mock.ExpectQuery(`INSERT INTO rally_team_assignments`).
		WithArgs(42, 5, 7).
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "rally_team_assignments_rally_id_team_member_id_key",
		})

	err := repo.Create(context.Background(), &models.TeamAssignment{RallyID: 42, TeamMemberID: 5, OwnerID: 7})

	assert.ErrorIs(t, err, ErrAssignmentConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentCreateDanglingRally(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAssignmentRepository(db)

	mock.ExpectQuery(`INSERT INTO rally_team_assignments`).
		WillReturnError(&pq.Error{
			Code:       "23503",
			Constraint: "rally_team_assignments_rally_id_fkey",
		})

	err := repo.Create(context.Background(), &models.TeamAssignment{RallyID: 404, TeamMemberID: 5, OwnerID: 7})

	assert.ErrorIs(t, err, ErrAssignmentInvalidRally)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentListByRallyScopes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "rally_id", "team_member_id", "owner_id", "created_at"}).
		AddRow(1, 42, 5, 7, time.Now())

	mock.ExpectQuery(`SELECT id, rally_id, team_member_id, owner_id, created_at\s+FROM rally_team_assignments\s+WHERE rally_id = \$1 AND owner_id = \$2`).
		WithArgs(42, 7).
		WillReturnRows(rows)

	assignments, err := repo.ListByRally(context.Background(), 7, 42)

	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, 5, assignments[0].TeamMemberID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAssignmentRepository(db)

	mock.ExpectExec(`DELETE FROM rally_team_assignments WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(99, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 7, 99)

	assert.ErrorIs(t, err, ErrAssignmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentDeleteByRallyZeroRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAssignmentRepository(db)

	mock.ExpectExec(`DELETE FROM rally_team_assignments WHERE rally_id = \$1`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteByRally(context.Background(), nil, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
