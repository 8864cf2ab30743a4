package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

type ScheduleService interface {
	AddItem(ctx context.Context, ownerID, rallyID int, input ScheduleItemInput) (*models.ScheduleItem, error)
	ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.ScheduleItem, error)
	RemoveItem(ctx context.Context, ownerID, itemID int) error
}

type ScheduleItemInput struct {
	Title       string `json:"title"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type scheduleService struct {
	scheduleRepo repositories.ScheduleItemRepository
	rallyRepo    repositories.RallyRepository
}

func NewScheduleService(scheduleRepo repositories.ScheduleItemRepository, rallyRepo repositories.RallyRepository) ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo, rallyRepo: rallyRepo}
}

func (s *scheduleService) AddItem(ctx context.Context, ownerID, rallyID int, input ScheduleItemInput) (*models.ScheduleItem, error) {
	if _, err := s.rallyRepo.GetByID(ctx, ownerID, rallyID); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return nil, ErrRallyNotFound
		}
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrScheduleTitleRequired
	}
	if input.EventDate == "" {
		return nil, ErrScheduleDateRequired
	}
	eventDate, err := time.Parse(dateLayout, input.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event date %q", ErrValidationFailed, input.EventDate)
	}

	// Untyped entries land in the catch-all bucket.
	itemType := models.ScheduleItemType(input.Type)
	if input.Type == "" {
		itemType = models.ScheduleTypeOther
	}
	if !itemType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrScheduleInvalidType, input.Type)
	}

	var eventTime *string
	if t := strings.TrimSpace(input.EventTime); t != "" {
		eventTime = &t
	}

	item := &models.ScheduleItem{
		RallyID:     rallyID,
		OwnerID:     ownerID,
		Title:       input.Title,
		EventDate:   eventDate,
		EventTime:   eventTime,
		Type:        itemType,
		Location:    strings.TrimSpace(input.Location),
		Description: input.Description,
	}
	if err := s.scheduleRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create schedule item: %w", err)
	}
	return item, nil
}

func (s *scheduleService) ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.ScheduleItem, error) {
	return s.scheduleRepo.ListByRally(ctx, ownerID, rallyID)
}

// RemoveItem is idempotent from the caller's perspective.
func (s *scheduleService) RemoveItem(ctx context.Context, ownerID, itemID int) error {
	err := s.scheduleRepo.Delete(ctx, ownerID, itemID)
	if err != nil && !errors.Is(err, repositories.ErrScheduleItemNotFound) {
		return fmt.Errorf("failed to delete schedule item: %w", err)
	}
	return nil
}
