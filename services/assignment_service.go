package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

type AssignmentService interface {
	Assign(ctx context.Context, ownerID, rallyID, memberID int) (*models.TeamAssignment, error)
	ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.TeamAssignment, error)
	Unassign(ctx context.Context, ownerID, assignmentID int) error
}

type assignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	rallyRepo      repositories.RallyRepository
	memberRepo     repositories.TeamMemberRepository
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	rallyRepo repositories.RallyRepository,
	memberRepo repositories.TeamMemberRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		rallyRepo:      rallyRepo,
		memberRepo:     memberRepo,
	}
}

// Assign links a member to a rally after checking both rows belong to the
// caller. Double-assignment is rejected by the unique constraint, so a
// second browser tab racing this call still cannot create a duplicate.
func (s *assignmentService) Assign(ctx context.Context, ownerID, rallyID, memberID int) (*models.TeamAssignment, error) {
	if _, err := s.rallyRepo.GetByID(ctx, ownerID, rallyID); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return nil, ErrRallyNotFound
		}
		return nil, err
	}
	if _, err := s.memberRepo.GetByID(ctx, ownerID, memberID); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}

	assignment := &models.TeamAssignment{
		RallyID:      rallyID,
		TeamMemberID: memberID,
		OwnerID:      ownerID,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		if errors.Is(err, repositories.ErrAssignmentConflict) {
			return nil, ErrAssignmentConflict
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.TeamAssignment, error) {
	return s.assignmentRepo.ListByRally(ctx, ownerID, rallyID)
}

// Unassign is idempotent from the caller's perspective.
func (s *assignmentService) Unassign(ctx context.Context, ownerID, assignmentID int) error {
	err := s.assignmentRepo.Delete(ctx, ownerID, assignmentID)
	if err != nil && !errors.Is(err, repositories.ErrAssignmentNotFound) {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
