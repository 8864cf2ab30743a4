package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

type TeamService interface {
	AddMember(ctx context.Context, ownerID int, input TeamMemberInput) (*models.TeamMember, error)
	GetMember(ctx context.Context, ownerID, memberID int) (*models.TeamMember, error)
	ListMembers(ctx context.Context, ownerID int) ([]models.TeamMember, error)
	UpdateMember(ctx context.Context, ownerID, memberID int, input TeamMemberInput) (*models.TeamMember, error)
	RemoveMember(ctx context.Context, ownerID, memberID int) error
}

type TeamMemberInput struct {
	Name                  string `json:"name"`
	Role                  string `json:"role"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	Notes                 string `json:"notes"`
}

type teamService struct {
	memberRepo repositories.TeamMemberRepository
}

func NewTeamService(memberRepo repositories.TeamMemberRepository) TeamService {
	return &teamService{memberRepo: memberRepo}
}

func (s *teamService) AddMember(ctx context.Context, ownerID int, input TeamMemberInput) (*models.TeamMember, error) {
	member, err := buildMember(ownerID, input)
	if err != nil {
		return nil, err
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return member, nil
}

func (s *teamService) GetMember(ctx context.Context, ownerID, memberID int) (*models.TeamMember, error) {
	member, err := s.memberRepo.GetByID(ctx, ownerID, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *teamService) ListMembers(ctx context.Context, ownerID int) ([]models.TeamMember, error) {
	return s.memberRepo.ListByOwner(ctx, ownerID)
}

func (s *teamService) UpdateMember(ctx context.Context, ownerID, memberID int, input TeamMemberInput) (*models.TeamMember, error) {
	member, err := buildMember(ownerID, input)
	if err != nil {
		return nil, err
	}
	member.ID = memberID

	if err := s.memberRepo.Update(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}
	return s.GetMember(ctx, ownerID, memberID)
}

// RemoveMember is idempotent: removing an already-removed member succeeds.
func (s *teamService) RemoveMember(ctx context.Context, ownerID, memberID int) error {
	err := s.memberRepo.Delete(ctx, ownerID, memberID)
	if err != nil && !errors.Is(err, repositories.ErrTeamMemberNotFound) {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}

func buildMember(ownerID int, input TeamMemberInput) (*models.TeamMember, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMemberNameRequired
	}
	return &models.TeamMember{
		OwnerID:               ownerID,
		Name:                  name,
		Role:                  strings.TrimSpace(input.Role),
		Email:                 strings.TrimSpace(input.Email),
		Phone:                 strings.TrimSpace(input.Phone),
		EmergencyContactName:  strings.TrimSpace(input.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(input.EmergencyContactPhone),
		Notes:                 input.Notes,
	}, nil
}
