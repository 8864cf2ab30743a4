package models

import "time"

type RallyStatus string

const (
	RallyStatusUpcoming     RallyStatus = "upcoming"
	RallyStatusRegistration RallyStatus = "registration"
	RallyStatusActive       RallyStatus = "active"
	RallyStatusCompleted    RallyStatus = "completed"
)

func (s RallyStatus) Valid() bool {
	switch s {
	case RallyStatusUpcoming, RallyStatusRegistration, RallyStatusActive, RallyStatusCompleted:
		return true
	}
	return false
}

type RallyEvent struct {
	ID          int         `json:"id"`
	OwnerID     int         `json:"owner_id"`
	Name        string      `json:"name"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Description string      `json:"description,omitempty"`
	Status      RallyStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
