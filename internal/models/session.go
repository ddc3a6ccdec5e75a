package models

import "time"

// Session is one completed activity run by a user.
type Session struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	Mode          string     `json:"mode"`
	Duration      int        `json:"duration"` // minutes
	ActivityID    string     `json:"activity_id"`
	ActivityTitle string     `json:"activity_title"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   time.Time  `json:"completed_at"`
	Photo         string     `json:"photo,omitempty"` // data URL
	HasPhoto      bool       `json:"has_photo"`
	SensorResult  string     `json:"sensor_result,omitempty"`
}
