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
	ErrProfileNotFound = errors.New("user profile not found")
	ErrProfileExists   = errors.New("user profile already exists")
)

type ProfileRepository interface {
	Create(ctx context.Context, exec SQLExecutor, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error)
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresProfileRepository) Create(ctx context.Context, exec SQLExecutor, p *models.UserProfile) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO user_profiles (user_id, name, email, trial_end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := executor.QueryRowContext(ctx, query, p.UserID, p.Name, p.Email, p.TrialEndDate).
		Scan(&p.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrProfileExists
		}
		return fmt.Errorf("profile repository: %w", err)
	}
	return nil
}

func (r *postgresProfileRepository) GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `SELECT user_id, name, email, trial_end_date, created_at FROM user_profiles WHERE user_id = $1`

	p := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&p.UserID, &p.Name, &p.Email, &p.TrialEndDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}
