package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

// Signup grants a 14-day trial, stamped on the profile row.
const trialPeriod = 14 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, *models.UserProfile, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	db          *sql.DB
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	now         func() time.Time
}

func NewAuthService(db *sql.DB, userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// Register creates the auth identity and its profile row in one
// transaction so a failed profile insert never leaves a user without a
// profile.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, *models.UserProfile, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Name == "" {
		return nil, nil, ErrNameRequired
	}
	if input.Email == "" {
		return nil, nil, ErrEmailRequired
	}
	if len(input.Password) < 6 {
		return nil, nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, nil, ErrUserEmailConflict
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &models.UserProfile{
		UserID:       user.ID,
		Name:         input.Name,
		Email:        input.Email,
		TrialEndDate: s.now().Add(trialPeriod),
	}
	if err := s.profileRepo.Create(ctx, tx, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	user.PasswordHash = ""
	return user, profile, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}
