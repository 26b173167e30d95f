package scheduling

import (
	"context"
	"errors"
	"time"

	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookSlot atomically verifies the candidate interval is clear of
// occupancy and commits the new occupancy together with its appointment
// in one transaction. An overlap fails with ConflictError; the caller
// must pick another slot, not retry.
func (s *DefaultService) BookSlot(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if req.ResourceID == "" {
		return nil, NewValidationError("resource id is required")
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		OrganisationID: req.OrganisationID,
		ResourceID:     req.ResourceID,
		ServiceID:      req.ServiceID,
		PatientID:      req.PatientID,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime.UTC(),
		Status:         models.AppointmentScheduled,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	occ := &models.Occupancy{
		ID:             uuid.New().String(),
		OrganisationID: req.OrganisationID,
		ResourceID:     req.ResourceID,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime.UTC(),
		SourceType:     models.OccupancyAppointment,
		ReferenceID:    appt.ID,
		CreatedAt:      now,
	}

	err := s.commitWithRetry(req.ResourceID, occ.StartTime, occ.EndTime, func() error {
		return s.Repo.CommitBooking(ctx, occ, appt)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.OrganisationID, req.ResourceID)
	return appt, nil
}

// ReassignSlot moves an existing appointment onto a different resource
// and/or interval. The old occupancy is deleted and the overlap check
// re-run against the new target inside the same transaction.
func (s *DefaultService) ReassignSlot(ctx context.Context, req ReassignRequest) error {
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return err
	}
	if req.AppointmentID == "" || req.NewResourceID == "" {
		return NewValidationError("appointment id and resource id are required")
	}

	occ := &models.Occupancy{
		ID:             uuid.New().String(),
		OrganisationID: req.OrganisationID,
		ResourceID:     req.NewResourceID,
		StartTime:      req.StartTime.UTC(),
		EndTime:        req.EndTime.UTC(),
		SourceType:     models.OccupancyAppointment,
		ReferenceID:    req.AppointmentID,
		CreatedAt:      time.Now().UTC(),
	}

	err := s.commitWithRetry(req.NewResourceID, occ.StartTime, occ.EndTime, func() error {
		return s.Repo.ReassignBooking(ctx, req.AppointmentID, occ)
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return &NotFoundError{Kind: "appointment", ID: req.AppointmentID}
		}
		return err
	}
	s.invalidate(ctx, req.OrganisationID, req.NewResourceID)
	return nil
}

// RescheduleSlot moves an appointment to a new interval on its current
// resource.
func (s *DefaultService) RescheduleSlot(ctx context.Context, orgID, appointmentID string, start, end time.Time) error {
	appt, err := s.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt == nil {
		return &NotFoundError{Kind: "appointment", ID: appointmentID}
	}
	return s.ReassignSlot(ctx, ReassignRequest{
		OrganisationID: orgID,
		AppointmentID:  appointmentID,
		NewResourceID:  appt.ResourceID,
		StartTime:      start,
		EndTime:        end,
	})
}

// ReleaseSlot deletes the occupancy held under referenceID and cancels
// the owning appointment. Idempotent: releasing an unknown or
// already-cancelled reference succeeds without side effects.
func (s *DefaultService) ReleaseSlot(ctx context.Context, orgID, resourceID, referenceID string) error {
	if referenceID == "" {
		return NewValidationError("reference id is required")
	}
	err := s.commitWithRetry(resourceID, time.Time{}, time.Time{}, func() error {
		_, err := s.Repo.ReleaseBooking(ctx, orgID, resourceID, referenceID)
		return err
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, orgID, resourceID)
	return nil
}

// BlockInterval commits an administrative busy interval (block or
// surgery) through the same conflict-checked write path as bookings.
func (s *DefaultService) BlockInterval(ctx context.Context, orgID, resourceID string, start, end time.Time, sourceType, reason string) (*models.Occupancy, error) {
	if err := validateInterval(start, end); err != nil {
		return nil, err
	}
	switch sourceType {
	case models.OccupancyBlocked, models.OccupancySurgery:
	case "":
		sourceType = models.OccupancyBlocked
	default:
		return nil, NewValidationError("unknown occupancy source %q", sourceType)
	}

	occ := &models.Occupancy{
		ID:             uuid.New().String(),
		OrganisationID: orgID,
		ResourceID:     resourceID,
		StartTime:      start.UTC(),
		EndTime:        end.UTC(),
		SourceType:     sourceType,
		ReferenceID:    "",
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
	err := s.commitWithRetry(resourceID, occ.StartTime, occ.EndTime, func() error {
		return s.Repo.CommitBooking(ctx, occ, nil)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, orgID, resourceID)
	return occ, nil
}

// commitWithRetry runs one transactional write. An overlap maps to
// ConflictError immediately. Any other failure is retried exactly once
// with the full check-then-write sequence re-executed from scratch; a
// second failure surfaces as TransientError so callers can tell "try
// again" apart from "pick another time".
func (s *DefaultService) commitWithRetry(resourceID string, start, end time.Time, op func() error) error {
	err := op()
	if err == nil {
		return nil
	}
	if errors.Is(err, scheduleRepo.ErrSlotTaken) {
		return &ConflictError{ResourceID: resourceID, StartTime: start, EndTime: end}
	}
	if errors.Is(err, scheduleRepo.ErrNotFound) {
		return err
	}

	utils.GetLogger().Warn("booking transaction failed, retrying once",
		zap.String("resourceID", resourceID), zap.Error(err))

	err = op()
	if err == nil {
		return nil
	}
	if errors.Is(err, scheduleRepo.ErrSlotTaken) {
		return &ConflictError{ResourceID: resourceID, StartTime: start, EndTime: end}
	}
	if errors.Is(err, scheduleRepo.ErrNotFound) {
		return err
	}
	return &TransientError{Err: err}
}
