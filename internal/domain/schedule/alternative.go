package schedule

import "time"

// AlternativeSlot is a proposed replacement window for a conflicting or
// rejected appointment. Ephemeral: produced per call, never stored.
type AlternativeSlot struct {
	ID              string           `json:"id"`
	Start           time.Time        `json:"start"`
	End             time.Time        `json:"end"`
	Confidence      int              `json:"confidence"` // 0-100
	Reason          string           `json:"reason"`
	ResourceChanges *ResourceChanges `json:"resource_changes,omitempty"`
}

// ResourceChanges describes resource swaps an alternative would require.
type ResourceChanges struct {
	Staff     []string `json:"staff,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
	Room      string   `json:"room,omitempty"`
}
