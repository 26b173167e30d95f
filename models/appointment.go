package models

import "time"

// Appointment statuses.
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

// Appointment is the business record committed alongside its occupancy
// interval in the booking transaction.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	OrganisationID string    `bson:"organisation_id" json:"organisationId"`
	ResourceID     string    `bson:"resource_id" json:"resourceId"`
	ServiceID      string    `bson:"service_id,omitempty" json:"serviceId,omitempty"`
	PatientID      string    `bson:"patient_id,omitempty" json:"patientId,omitempty"`
	StartTime      time.Time `bson:"start_time" json:"startTime"`
	EndTime        time.Time `bson:"end_time" json:"endTime"`
	Status         string    `bson:"status" json:"status"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
