package models

import "time"

type TeamMember struct {
	ID                    int       `json:"id"`
	OwnerID               int       `json:"owner_id"`
	Name                  string    `json:"name"`
	Role                  string    `json:"role"`
	Email                 string    `json:"email,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}
