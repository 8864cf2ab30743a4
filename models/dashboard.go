package models

// DashboardView is everything the landing dashboard renders in one shot.
type DashboardView struct {
	Rallies     []RallyEvent `json:"rallies"`
	Upcoming    []RallyEvent `json:"upcoming"`
	TeamPreview []TeamMember `json:"team_preview"`
}

// RallyOverview is the combined record set for a single rally page:
// the rally itself plus its schedule and crew, with the derived
// assigned/unassigned split already computed.
type RallyOverview struct {
	Rally      RallyEvent       `json:"rally"`
	Schedule   []ScheduleItem   `json:"schedule"`
	Assigned   []TeamMember     `json:"assigned"`
	Unassigned []TeamMember     `json:"unassigned"`
	Links      []TeamAssignment `json:"assignments"`
}
