package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDashboard(t *testing.T) {
	now := date(2026, 6, 1)
	rallies := []models.RallyEvent{
		{ID: 1, Name: "Past", StartDate: date(2026, 5, 1)},
		{ID: 2, Name: "Autumn", StartDate: date(2026, 9, 10)},
		{ID: 3, Name: "Summer", StartDate: date(2026, 7, 4)},
		{ID: 4, Name: "Winter", StartDate: date(2026, 12, 1)},
		{ID: 5, Name: "June", StartDate: date(2026, 6, 15)},
	}
	members := make([]models.TeamMember, 7)
	for i := range members {
		members[i] = models.TeamMember{ID: i + 1}
	}

	svc := &overviewService{
		rallyRepo:      &fakeRallyRepo{list: func(int) ([]models.RallyEvent, error) { return rallies, nil }},
		memberRepo:     &fakeTeamMemberRepo{list: func(int) ([]models.TeamMember, error) { return members, nil }},
		assignmentRepo: &fakeAssignmentRepo{},
		scheduleRepo:   &fakeScheduleRepo{},
		now:            func() time.Time { return now },
	}

	view, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)

	assert.Len(t, view.Rallies, 5)
	require.Len(t, view.Upcoming, 3, "upcoming is capped")
	assert.Equal(t, []string{"June", "Summer", "Autumn"}, []string{
		view.Upcoming[0].Name, view.Upcoming[1].Name, view.Upcoming[2].Name,
	})
	assert.Len(t, view.TeamPreview, 5, "team preview is capped")
}

func TestDashboardFailsWhole(t *testing.T) {
	svc := NewOverviewService(
		&fakeRallyRepo{list: func(int) ([]models.RallyEvent, error) { return nil, context.DeadlineExceeded }},
		&fakeTeamMemberRepo{},
		&fakeAssignmentRepo{},
		&fakeScheduleRepo{},
	)

	view, err := svc.Dashboard(context.Background(), 7)

	assert.Error(t, err)
	assert.Nil(t, view, "no partial dashboard on failure")
}

func TestRallyOverview(t *testing.T) {
	members := []models.TeamMember{{ID: 1, Name: "m1"}, {ID: 2, Name: "m2"}, {ID: 3, Name: "m3"}}
	assignments := []models.TeamAssignment{{ID: 10, RallyID: 42, TeamMemberID: 2}}

	svc := NewOverviewService(
		&fakeRallyRepo{},
		&fakeTeamMemberRepo{list: func(int) ([]models.TeamMember, error) { return members, nil }},
		&fakeAssignmentRepo{listByRally: func(int, int) ([]models.TeamAssignment, error) { return assignments, nil }},
		&fakeScheduleRepo{},
	)

	view, err := svc.RallyOverview(context.Background(), 7, 42)
	require.NoError(t, err)

	assert.Equal(t, 42, view.Rally.ID)
	require.Len(t, view.Assigned, 1)
	assert.Equal(t, "m2", view.Assigned[0].Name)
	require.Len(t, view.Unassigned, 2)
	assert.Equal(t, "m1", view.Unassigned[0].Name)
	assert.Equal(t, "m3", view.Unassigned[1].Name)
}

func TestRallyOverviewMissingRally(t *testing.T) {
	rallyRepo := &fakeRallyRepo{
		getByID: func(ownerID, id int) (*models.RallyEvent, error) {
			return nil, repositories.ErrRallyNotFound
		},
	}
	svc := NewOverviewService(rallyRepo, &fakeTeamMemberRepo{}, &fakeAssignmentRepo{}, &fakeScheduleRepo{})

	_, err := svc.RallyOverview(context.Background(), 7, 42)

	assert.ErrorIs(t, err, ErrRallyNotFound)
}
