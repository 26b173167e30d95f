package models

// BookableWindow is a fixed-duration slice of open time offered to a
// caller. Derived per query, never persisted. ResourceIDs carries every
// resource able to fulfil the window when aggregating across a roster.
type BookableWindow struct {
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	ResourceIDs []string `json:"resourceIds,omitempty"`
}
