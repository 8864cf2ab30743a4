package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

const (
	dashboardUpcomingLimit = 3
	dashboardTeamPreview   = 5
)

// OverviewService assembles the combined record sets the pages render.
// Related collections are fetched independently and the result is built
// only after all of them have returned; one failure fails the whole view.
type OverviewService interface {
	Dashboard(ctx context.Context, ownerID int) (*models.DashboardView, error)
	RallyOverview(ctx context.Context, ownerID, rallyID int) (*models.RallyOverview, error)
}

type overviewService struct {
	rallyRepo      repositories.RallyRepository
	memberRepo     repositories.TeamMemberRepository
	assignmentRepo repositories.AssignmentRepository
	scheduleRepo   repositories.ScheduleItemRepository
	now            func() time.Time
}

func NewOverviewService(
	rallyRepo repositories.RallyRepository,
	memberRepo repositories.TeamMemberRepository,
	assignmentRepo repositories.AssignmentRepository,
	scheduleRepo repositories.ScheduleItemRepository,
) OverviewService {
	return &overviewService{
		rallyRepo:      rallyRepo,
		memberRepo:     memberRepo,
		assignmentRepo: assignmentRepo,
		scheduleRepo:   scheduleRepo,
		now:            time.Now,
	}
}

func (s *overviewService) Dashboard(ctx context.Context, ownerID int) (*models.DashboardView, error) {
	var (
		rallies []models.RallyEvent
		members []models.TeamMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rallies, err = s.rallyRepo.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.memberRepo.ListByOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	preview := members
	if len(preview) > dashboardTeamPreview {
		preview = preview[:dashboardTeamPreview]
	}

	return &models.DashboardView{
		Rallies:     rallies,
		Upcoming:    models.UpcomingRallies(rallies, s.now(), dashboardUpcomingLimit),
		TeamPreview: preview,
	}, nil
}

func (s *overviewService) RallyOverview(ctx context.Context, ownerID, rallyID int) (*models.RallyOverview, error) {
	var (
		rally       *models.RallyEvent
		schedule    []models.ScheduleItem
		assignments []models.TeamAssignment
		members     []models.TeamMember
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rally, err = s.rallyRepo.GetByID(gctx, ownerID, rallyID)
		return err
	})
	g.Go(func() error {
		var err error
		schedule, err = s.scheduleRepo.ListByRally(gctx, ownerID, rallyID)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.ListByRally(gctx, ownerID, rallyID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.memberRepo.ListByOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrRallyNotFound) {
			return nil, ErrRallyNotFound
		}
		return nil, err
	}

	return &models.RallyOverview{
		Rally:      *rally,
		Schedule:   schedule,
		Assigned:   models.AssignedMembers(members, assignments),
		Unassigned: models.UnassignedMembers(members, assignments),
		Links:      assignments,
	}, nil
}
