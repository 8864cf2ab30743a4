package models

import "time"

// UserProfile is created once at signup, one-to-one with the auth identity.
type UserProfile struct {
	UserID       int       `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	TrialEndDate time.Time `json:"trial_end_date"`
	CreatedAt    time.Time `json:"created_at"`
}
