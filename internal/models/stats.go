package models

// DayCount is the number of sessions completed on one calendar day.
type DayCount struct {
	Key   string `json:"key"` // YYYY-MM-DD
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

type Stats struct {
	Days       []DayCount     `json:"days"`
	ModeCounts map[string]int `json:"modeCounts"`
	Total      int            `json:"total"`
}
