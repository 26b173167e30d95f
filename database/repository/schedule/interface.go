package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"clinicbook/models"
)

// ErrSlotTaken is returned by the transactional write path when the
// candidate interval overlaps committed occupancy. Definitive: callers
// must not retry the same interval.
var ErrSlotTaken = errors.New("schedule: occupancy overlap")

// ErrNotFound is returned by writes that require an existing record.
var ErrNotFound = errors.New("schedule: record not found")

// Repository is the interval store. It persists recurring base
// availability, per-week overrides, and committed occupancy, and owns
// the transactional booking write path: every Commit/Reassign/Release
// method runs its overlap check and all of its writes atomically, so
// concurrent writers for one resource observe either all of a booking
// or none of it.
type Repository interface {
	// ReplaceBaseAvailability deletes every existing day entry for the
	// resource and inserts the new set, atomically from the caller's
	// perspective.
	ReplaceBaseAvailability(ctx context.Context, orgID, resourceID string, days []models.DaySchedule) error
	GetBaseAvailability(ctx context.Context, orgID, resourceID string) ([]models.BaseAvailability, error)

	// UpsertWeekOverride creates the week's override document if absent,
	// replaces the matching day entry if present, and appends otherwise.
	UpsertWeekOverride(ctx context.Context, orgID, resourceID string, weekStart time.Time, day models.DaySchedule) error
	GetWeekOverride(ctx context.Context, orgID, resourceID string, weekStart time.Time) (*models.WeeklyOverride, error)

	// GetOccupancyInRange returns occupancy intersecting [from, to).
	GetOccupancyInRange(ctx context.Context, orgID, resourceID string, from, to time.Time) ([]models.Occupancy, error)
	// FindOccupancyAt returns the occupancy covering the instant, or nil.
	FindOccupancyAt(ctx context.Context, orgID, resourceID string, at time.Time) (*models.Occupancy, error)

	// CommitBooking checks the occupancy's interval for overlap and, if
	// clear, inserts the occupancy together with the appointment (which
	// may be nil for admin blocks). Returns ErrSlotTaken on overlap.
	CommitBooking(ctx context.Context, occ *models.Occupancy, appt *models.Appointment) error
	// ReassignBooking deletes the occupancy held under referenceID,
	// re-runs the overlap check against occ's resource and interval,
	// inserts occ, and updates the appointment's assignment. Returns
	// ErrNotFound when no live appointment matches referenceID.
	ReassignBooking(ctx context.Context, referenceID string, occ *models.Occupancy) error
	// ReleaseBooking deletes the occupancy held under referenceID and
	// cancels the owning appointment if one exists. Idempotent: an
	// unknown or already-cancelled reference is a no-op. Returns the
	// released occupancy, or nil when nothing was deleted.
	ReleaseBooking(ctx context.Context, orgID, resourceID, referenceID string) (*models.Occupancy, error)

	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
}
