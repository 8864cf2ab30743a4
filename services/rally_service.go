package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

const dateLayout = "2006-01-02"

type RallyService interface {
	CreateRally(ctx context.Context, ownerID int, input CreateRallyInput) (*models.RallyEvent, error)
	GetRally(ctx context.Context, ownerID, rallyID int) (*models.RallyEvent, error)
	ListRallies(ctx context.Context, ownerID int) ([]models.RallyEvent, error)
	UpdateRally(ctx context.Context, ownerID, rallyID int, input CreateRallyInput) (*models.RallyEvent, error)
	DeleteRally(ctx context.Context, ownerID, rallyID int) error
}

type CreateRallyInput struct {
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type rallyService struct {
	db             *sql.DB
	rallyRepo      repositories.RallyRepository
	scheduleRepo   repositories.ScheduleItemRepository
	assignmentRepo repositories.AssignmentRepository
}

func NewRallyService(
	db *sql.DB,
	rallyRepo repositories.RallyRepository,
	scheduleRepo repositories.ScheduleItemRepository,
	assignmentRepo repositories.AssignmentRepository,
) RallyService {
	return &rallyService{
		db:             db,
		rallyRepo:      rallyRepo,
		scheduleRepo:   scheduleRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *rallyService) CreateRally(ctx context.Context, ownerID int, input CreateRallyInput) (*models.RallyEvent, error) {
	rally, err := buildRally(ownerID, input)
	if err != nil {
		return nil, err
	}

	if err := s.rallyRepo.Create(ctx, rally); err != nil {
		return nil, fmt.Errorf("failed to create rally: %w", err)
	}
	return rally, nil
}

func (s *rallyService) GetRally(ctx context.Context, ownerID, rallyID int) (*models.RallyEvent, error) {
	rally, err := s.rallyRepo.GetByID(ctx, ownerID, rallyID)
	if err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return nil, ErrRallyNotFound
		}
		return nil, err
	}
	return rally, nil
}

func (s *rallyService) ListRallies(ctx context.Context, ownerID int) ([]models.RallyEvent, error) {
	return s.rallyRepo.ListByOwner(ctx, ownerID)
}

func (s *rallyService) UpdateRally(ctx context.Context, ownerID, rallyID int, input CreateRallyInput) (*models.RallyEvent, error) {
	rally, err := buildRally(ownerID, input)
	if err != nil {
		return nil, err
	}
	rally.ID = rallyID

	if err := s.rallyRepo.Update(ctx, rally); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return nil, ErrRallyNotFound
		}
		return nil, fmt.Errorf("failed to update rally: %w", err)
	}

	return s.GetRally(ctx, ownerID, rallyID)
}

// DeleteRally removes the rally together with its schedule items and team
// assignments in one transaction, so a deleted rally never leaves orphaned
// child rows behind. Deleting an already-deleted rally is not an error.
func (s *rallyService) DeleteRally(ctx context.Context, ownerID, rallyID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.assignmentRepo.DeleteByRally(ctx, tx, rallyID); err != nil {
		return fmt.Errorf("failed to delete rally assignments: %w", err)
	}
	if err := s.scheduleRepo.DeleteByRally(ctx, tx, rallyID); err != nil {
		return fmt.Errorf("failed to delete rally schedule: %w", err)
	}
	if err := s.rallyRepo.Delete(ctx, tx, ownerID, rallyID); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			// Idempotent: the end state (rally absent) is what was asked for.
			return nil
		}
		return fmt.Errorf("failed to delete rally: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rally delete: %w", err)
	}
	return nil
}

func buildRally(ownerID int, input CreateRallyInput) (*models.RallyEvent, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrRallyNameRequired
	}

	start, end, err := parseRallyDates(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	status := models.RallyStatus(input.Status)
	if input.Status == "" {
		status = models.RallyStatusUpcoming
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrRallyInvalidStatus, input.Status)
	}

	return &models.RallyEvent{
		OwnerID:     ownerID,
		Name:        input.Name,
		StartDate:   start,
		EndDate:     end,
		Location:    strings.TrimSpace(input.Location),
		Description: input.Description,
		Status:      status,
	}, nil
}

func parseRallyDates(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, ErrRallyDatesRequired
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", ErrValidationFailed, startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", ErrValidationFailed, endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrRallyInvalidDateRange
	}
	return start, end, nil
}
