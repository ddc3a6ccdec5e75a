package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// LastSelection is the activity most recently shown to a user, with the
// mode and duration it was requested for. Duration 0 means none was given.
type LastSelection struct {
	ActivityID string
	Mode       string
	Duration   int
}
