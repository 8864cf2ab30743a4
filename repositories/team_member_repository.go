package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rallyops/rally-planner/models"
)

var ErrTeamMemberNotFound = errors.New("team member not found")

type TeamMemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, ownerID, id int) (*models.TeamMember, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, ownerID, id int) error
}

type postgresTeamMemberRepository struct {
	db *sql.DB
}

func NewPostgresTeamMemberRepository(db *sql.DB) TeamMemberRepository {
	return &postgresTeamMemberRepository{db: db}
}

const teamMemberColumns = `id, owner_id, name, role, email, phone, emergency_contact_name, emergency_contact_phone, notes, created_at`

func (r *postgresTeamMemberRepository) Create(ctx context.Context, m *models.TeamMember) error {
	query := `
		INSERT INTO team_members (owner_id, name, role, email, phone, emergency_contact_name, emergency_contact_phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.OwnerID, m.Name, m.Role, m.Email, m.Phone,
		m.EmergencyContactName, m.EmergencyContactPhone, m.Notes,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("team member repository: %w", err)
	}
	return nil
}

func (r *postgresTeamMemberRepository) GetByID(ctx context.Context, ownerID, id int) (*models.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE id = $1 AND owner_id = $2`

	m := &models.TeamMember{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&m.ID, &m.OwnerID, &m.Name, &m.Role, &m.Email, &m.Phone,
		&m.EmergencyContactName, &m.EmergencyContactPhone, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresTeamMemberRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE owner_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		if scanErr := rows.Scan(
			&m.ID, &m.OwnerID, &m.Name, &m.Role, &m.Email, &m.Phone,
			&m.EmergencyContactName, &m.EmergencyContactPhone, &m.Notes, &m.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresTeamMemberRepository) Update(ctx context.Context, m *models.TeamMember) error {
	query := `
		UPDATE team_members SET
			name = $1,
			role = $2,
			email = $3,
			phone = $4,
			emergency_contact_name = $5,
			emergency_contact_phone = $6,
			notes = $7
		WHERE id = $8 AND owner_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		m.Name, m.Role, m.Email, m.Phone,
		m.EmergencyContactName, m.EmergencyContactPhone, m.Notes,
		m.ID, m.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("team member repository: %w", err)
	}
	return checkAffectedRows(result, ErrTeamMemberNotFound)
}

func (r *postgresTeamMemberRepository) Delete(ctx context.Context, ownerID, id int) error {
	query := `DELETE FROM team_members WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("team member repository: %w", err)
	}
	return checkAffectedRows(result, ErrTeamMemberNotFound)
}
