package models

// Activity is a single catalog entry a user can be offered.
type Activity struct {
	ID            string `json:"id"`
	Mode          string `json:"mode"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	DurationHints []int  `json:"duration_hints"` // minutes; empty means any duration
	Type          string `json:"activity_type"`
	Payload       any    `json:"payload,omitempty"`

	// RawPayload is the stored JSON text of Payload.
	RawPayload string `json:"-"`
}

// FitsDuration reports whether the activity declares d among its hints,
// or declares no hints at all.
func (a Activity) FitsDuration(d int) bool {
	if len(a.DurationHints) == 0 {
		return true
	}
	for _, h := range a.DurationHints {
		if h == d {
			return true
		}
	}
	return false
}
