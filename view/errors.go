// Package view implements the page-side lifecycle shared by every screen
// of the rally planner: a fetch/derive/refresh state machine
// (Synchronizer) and a draft/submit state machine (Form). Both are UI
// toolkit agnostic; a renderer polls their state after each event.
package view

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/rallyops/rally-planner/repositories"
	"github.com/rallyops/rally-planner/services"
)

// ErrorKind is the presentation-level error taxonomy. Store-specific
// error shapes never leak past Classify.
type ErrorKind int

const (
	// KindNone means no error.
	KindNone ErrorKind = iota
	// KindUnauthenticated means redirect to login, not an error panel.
	KindUnauthenticated
	// KindNotFound renders an explicit "not found" state.
	KindNotFound
	// KindValidation re-opens the form with the message.
	KindValidation
	// KindStore renders the error panel with a retry action.
	KindStore
	// KindUnexpected is the catch-all; logged and rendered generically.
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	default:
		return "unexpected"
	}
}

// ErrUnauthenticated is returned by identity resolvers when there is no
// usable session. Any resolution failure is treated the same way (fail
// closed).
var ErrUnauthenticated = errors.New("not authenticated")

// Classify maps an error from the data layer onto the presentation
// taxonomy. An empty result set is not an error and never reaches here.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrRallyNotFound),
		errors.Is(err, services.ErrTeamMemberNotFound),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, services.ErrScheduleItemNotFound),
		errors.Is(err, repositories.ErrRallyNotFound),
		errors.Is(err, repositories.ErrTeamMemberNotFound),
		errors.Is(err, repositories.ErrAssignmentNotFound),
		errors.Is(err, repositories.ErrScheduleItemNotFound),
		errors.Is(err, repositories.ErrProfileNotFound):
		return KindNotFound
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrRallyNameRequired),
		errors.Is(err, services.ErrRallyDatesRequired),
		errors.Is(err, services.ErrRallyInvalidDateRange),
		errors.Is(err, services.ErrRallyInvalidStatus),
		errors.Is(err, services.ErrMemberNameRequired),
		errors.Is(err, services.ErrScheduleTitleRequired),
		errors.Is(err, services.ErrScheduleDateRequired),
		errors.Is(err, services.ErrScheduleInvalidType),
		errors.Is(err, services.ErrAssignmentConflict):
		return KindValidation
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// Timeouts and cancellations surface like any other store failure.
		return KindStore
	case isTransport(err):
		return KindStore
	default:
		return KindUnexpected
	}
}

func isTransport(err error) bool {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
