package scheduling

import (
	"context"
	"time"

	"clinicbook/models"
)

// Status is a resource's state at a single instant.
type Status string

const (
	// StatusConsulting: an occupancy interval covers the instant.
	StatusConsulting Status = "CONSULTING"
	// StatusAvailable: an open slot covers the instant.
	StatusAvailable Status = "AVAILABLE"
	// StatusOffDuty: the resolved day has no slots at all.
	StatusOffDuty Status = "OFF_DUTY"
	// StatusRequested: scheduled today but not currently in session.
	StatusRequested Status = "REQUESTED"
)

// BookingRequest describes a candidate appointment booking.
type BookingRequest struct {
	OrganisationID string    `json:"organisationId"`
	ResourceID     string    `json:"resourceId"`
	ServiceID      string    `json:"serviceId"`
	PatientID      string    `json:"patientId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Notes          string    `json:"notes"`
}

// ReassignRequest moves an existing appointment to another resource
// and/or another interval.
type ReassignRequest struct {
	OrganisationID string    `json:"organisationId"`
	AppointmentID  string    `json:"appointmentId"`
	NewResourceID  string    `json:"newResourceId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
}

// Service is the availability and booking surface exposed to transport.
type Service interface {
	// Read path.
	GetDayAvailability(ctx context.Context, orgID, resourceID string, date time.Time) (models.DayAvailability, error)
	GetWeekAvailability(ctx context.Context, orgID, resourceID string, ref time.Time) ([]models.DaySchedule, error)
	GetBookableWindows(ctx context.Context, orgID, resourceID string, durationMinutes int, date time.Time) ([]models.BookableWindow, error)
	GetAggregatedBookableWindows(ctx context.Context, orgID, serviceID string, durationMinutes int, date time.Time) ([]models.BookableWindow, error)
	GetCurrentStatus(ctx context.Context, orgID, resourceID string) (Status, error)

	// Write path.
	BookSlot(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	ReassignSlot(ctx context.Context, req ReassignRequest) error
	RescheduleSlot(ctx context.Context, orgID, appointmentID string, start, end time.Time) error
	ReleaseSlot(ctx context.Context, orgID, resourceID, referenceID string) error
	BlockInterval(ctx context.Context, orgID, resourceID string, start, end time.Time, sourceType, reason string) (*models.Occupancy, error)

	// Schedule administration.
	SetBaseAvailability(ctx context.Context, orgID, resourceID string, days []models.DaySchedule) error
	SetWeekOverride(ctx context.Context, orgID, resourceID string, weekRef time.Time, day models.DaySchedule) error
}
