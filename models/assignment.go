package models

import "time"

// TeamAssignment links one team member to one rally. A member can be
// assigned to a rally at most once (unique on rally_id, team_member_id).
type TeamAssignment struct {
	ID           int       `json:"id"`
	RallyID      int       `json:"rally_id"`
	TeamMemberID int       `json:"team_member_id"`
	OwnerID      int       `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}
