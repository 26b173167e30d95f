package models

import "time"

// Occupancy source tags.
const (
	OccupancyAppointment = "APPOINTMENT"
	OccupancyBlocked     = "BLOCKED"
	OccupancySurgery     = "SURGERY"
)

// Occupancy is a committed busy interval on one resource's timeline.
// Intervals are half-open: [StartTime, EndTime).
type Occupancy struct {
	ID             string    `bson:"id" json:"id"`
	OrganisationID string    `bson:"organisation_id" json:"organisationId"`
	ResourceID     string    `bson:"resource_id" json:"resourceId"`
	StartTime      time.Time `bson:"start_time" json:"startTime"`
	EndTime        time.Time `bson:"end_time" json:"endTime"`
	SourceType     string    `bson:"source_type" json:"sourceType"`
	ReferenceID    string    `bson:"reference_id,omitempty" json:"referenceId,omitempty"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// Overlaps reports whether the occupancy intersects the half-open
// interval [start, end).
func (o Occupancy) Overlaps(start, end time.Time) bool {
	return o.StartTime.Before(end) && o.EndTime.After(start)
}

// Covers reports whether the occupancy contains the instant at.
func (o Occupancy) Covers(at time.Time) bool {
	return !at.Before(o.StartTime) && at.Before(o.EndTime)
}
