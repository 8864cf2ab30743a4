package services

import (
	"context"

	"github.com/rallyops/rally-planner/models"
	"github.com/rallyops/rally-planner/repositories"
)

// callLog records repository calls in order, shared across fakes so
// cross-repository sequencing can be asserted.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) {
	l.calls = append(l.calls, name)
}

type fakeRallyRepo struct {
	log *callLog

	createErr error
	getByID   func(ownerID, id int) (*models.RallyEvent, error)
	list      func(ownerID int) ([]models.RallyEvent, error)
	updateErr error
	deleteErr error

	created []*models.RallyEvent
}

func (f *fakeRallyRepo) Create(ctx context.Context, rally *models.RallyEvent) error {
	if f.log != nil {
		f.log.add("rally.create")
	}
	if f.createErr != nil {
		return f.createErr
	}
	rally.ID = len(f.created) + 1
	f.created = append(f.created, rally)
	return nil
}

func (f *fakeRallyRepo) GetByID(ctx context.Context, ownerID, id int) (*models.RallyEvent, error) {
	if f.log != nil {
		f.log.add("rally.get")
	}
	if f.getByID != nil {
		return f.getByID(ownerID, id)
	}
	return &models.RallyEvent{ID: id, OwnerID: ownerID}, nil
}

func (f *fakeRallyRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.RallyEvent, error) {
	if f.list != nil {
		return f.list(ownerID)
	}
	return nil, nil
}

func (f *fakeRallyRepo) Update(ctx context.Context, rally *models.RallyEvent) error {
	return f.updateErr
}

func (f *fakeRallyRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, ownerID, id int) error {
	if f.log != nil {
		f.log.add("rally.delete")
	}
	return f.deleteErr
}

type fakeTeamMemberRepo struct {
	getByID func(ownerID, id int) (*models.TeamMember, error)
	list    func(ownerID int) ([]models.TeamMember, error)

	createErr error
	updateErr error
	deleteErr error
	deleted   []int
}

func (f *fakeTeamMemberRepo) Create(ctx context.Context, member *models.TeamMember) error {
	if f.createErr != nil {
		return f.createErr
	}
	member.ID = 1
	return nil
}

func (f *fakeTeamMemberRepo) GetByID(ctx context.Context, ownerID, id int) (*models.TeamMember, error) {
	if f.getByID != nil {
		return f.getByID(ownerID, id)
	}
	return &models.TeamMember{ID: id, OwnerID: ownerID}, nil
}

func (f *fakeTeamMemberRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.TeamMember, error) {
	if f.list != nil {
		return f.list(ownerID)
	}
	return nil, nil
}

func (f *fakeTeamMemberRepo) Update(ctx context.Context, member *models.TeamMember) error {
	return f.updateErr
}

func (f *fakeTeamMemberRepo) Delete(ctx context.Context, ownerID, id int) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeAssignmentRepo struct {
	log *callLog

	createErr   error
	listByRally func(ownerID, rallyID int) ([]models.TeamAssignment, error)
	deleteErr   error

	created []*models.TeamAssignment
	deleted []int
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.TeamAssignment) error {
	if f.createErr != nil {
		return f.createErr
	}
	assignment.ID = len(f.created) + 1
	f.created = append(f.created, assignment)
	return nil
}

func (f *fakeAssignmentRepo) ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.TeamAssignment, error) {
	if f.listByRally != nil {
		return f.listByRally(ownerID, rallyID)
	}
	return nil, nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, ownerID, id int) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeAssignmentRepo) DeleteByRally(ctx context.Context, exec repositories.SQLExecutor, rallyID int) error {
	if f.log != nil {
		f.log.add("assignments.deleteByRally")
	}
	return nil
}

type fakeScheduleRepo struct {
	log *callLog

	createErr   error
	getByID     func(ownerID, id int) (*models.ScheduleItem, error)
	listByRally func(ownerID, rallyID int) ([]models.ScheduleItem, error)
	deleteErr   error

	created []*models.ScheduleItem
	deleted []int
}

func (f *fakeScheduleRepo) Create(ctx context.Context, item *models.ScheduleItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = len(f.created) + 1
	f.created = append(f.created, item)
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, ownerID, id int) (*models.ScheduleItem, error) {
	if f.getByID != nil {
		return f.getByID(ownerID, id)
	}
	return &models.ScheduleItem{ID: id, OwnerID: ownerID}, nil
}

func (f *fakeScheduleRepo) ListByRally(ctx context.Context, ownerID, rallyID int) ([]models.ScheduleItem, error) {
	if f.listByRally != nil {
		return f.listByRally(ownerID, rallyID)
	}
	return nil, nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, ownerID, id int) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeScheduleRepo) DeleteByRally(ctx context.Context, exec repositories.SQLExecutor, rallyID int) error {
	if f.log != nil {
		f.log.add("schedule.deleteByRally")
	}
	return nil
}

type fakeUserRepo struct {
	createErr  error
	getByEmail func(email string) (*models.User, error)
	getByID    func(id int) (*models.User, error)

	created []*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, exec repositories.SQLExecutor, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = len(f.created) + 1
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if f.getByID != nil {
		return f.getByID(id)
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmail != nil {
		return f.getByEmail(email)
	}
	return nil, repositories.ErrUserNotFound
}

type fakeProfileRepo struct {
	createErr   error
	getByUserID func(userID int) (*models.UserProfile, error)

	created []*models.UserProfile
}

func (f *fakeProfileRepo) Create(ctx context.Context, exec repositories.SQLExecutor, profile *models.UserProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, profile)
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error) {
	if f.getByUserID != nil {
		return f.getByUserID(userID)
	}
	return nil, repositories.ErrProfileNotFound
}
