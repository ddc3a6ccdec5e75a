package service

import "time"

// NextParams asks for the next activity. Duration 0 means none was chosen.
type NextParams struct {
	Mode      string
	Duration  int    // minutes
	ExcludeID string // "show me another": never repeat this one if possible
}

// SessionParams describes a completed session as reported by the client.
type SessionParams struct {
	Mode          string
	Duration      int // minutes; one of AllowedDurations
	ActivityID    string
	ActivityTitle string
	StartedAt     *time.Time
	CompletedAt   time.Time
	Photo         string // optional data:image/... URL
	SensorResult  string
}

// SessionFilter supports history filtering by time range and mode.
type SessionFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Mode string    // "" means every mode
}
