package models

import "time"

type ScheduleItemType string

const (
	ScheduleTypeScrutineering ScheduleItemType = "scrutineering"
	ScheduleTypeRecce         ScheduleItemType = "recce"
	ScheduleTypeStage         ScheduleItemType = "stage"
	ScheduleTypeService       ScheduleItemType = "service"
	ScheduleTypeOther         ScheduleItemType = "other"
)

func (t ScheduleItemType) Valid() bool {
	switch t {
	case ScheduleTypeScrutineering, ScheduleTypeRecce, ScheduleTypeStage, ScheduleTypeService, ScheduleTypeOther:
		return true
	}
	return false
}

type ScheduleItem struct {
	ID          int              `json:"id"`
	RallyID     int              `json:"rally_id"`
	OwnerID     int              `json:"owner_id"`
	Title       string           `json:"title"`
	EventDate   time.Time        `json:"event_date"`
	EventTime   *string          `json:"event_time,omitempty"`
	Type        ScheduleItemType `json:"type"`
	Location    string           `json:"location,omitempty"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
