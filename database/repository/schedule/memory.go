package scheduleRepo

import (
	"context"
	"sync"
	"time"

	"clinicbook/models"

	"github.com/google/uuid"
)

// InMemoryRepository is a Repository for tests and single-process use.
// Mongo's transaction isolation is replaced by a per-resource mutex:
// the overlap check and the writes for one resource's timeline run
// under one lock, so concurrent bookings for the same resource still
// resolve to exactly one winner.
type InMemoryRepository struct {
	mu            sync.RWMutex
	resourceLocks map[string]*sync.Mutex
	base          map[string][]models.BaseAvailability // org|resource
	overrides     map[string]models.WeeklyOverride     // org|resource|weekStart
	occupancy     map[string][]models.Occupancy        // org|resource
	appointments  map[string]models.Appointment
}

// NewInMemoryRepository returns an empty in-memory interval store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		resourceLocks: make(map[string]*sync.Mutex),
		base:          make(map[string][]models.BaseAvailability),
		overrides:     make(map[string]models.WeeklyOverride),
		occupancy:     make(map[string][]models.Occupancy),
		appointments:  make(map[string]models.Appointment),
	}
}

func resourceKey(orgID, resourceID string) string {
	return orgID + "|" + resourceID
}

func overrideKey(orgID, resourceID string, weekStart time.Time) string {
	return orgID + "|" + resourceID + "|" + weekStart.UTC().Format("2006-01-02")
}

// resourceLock returns the write-serialization lock for one resource.
func (r *InMemoryRepository) resourceLock(resourceID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lk, ok := r.resourceLocks[resourceID]
	if !ok {
		lk = &sync.Mutex{}
		r.resourceLocks[resourceID] = lk
	}
	return lk
}

func (r *InMemoryRepository) ReplaceBaseAvailability(_ context.Context, orgID, resourceID string, days []models.DaySchedule) error {
	entries := make([]models.BaseAvailability, 0, len(days))
	for _, day := range days {
		entries = append(entries, models.BaseAvailability{
			ID:             uuid.New().String(),
			OrganisationID: orgID,
			ResourceID:     resourceID,
			DayOfWeek:      day.DayOfWeek,
			Slots:          append([]models.SlotTime(nil), day.Slots...),
		})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base[resourceKey(orgID, resourceID)] = entries
	return nil
}

func (r *InMemoryRepository) GetBaseAvailability(_ context.Context, orgID, resourceID string) ([]models.BaseAvailability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.BaseAvailability(nil), r.base[resourceKey(orgID, resourceID)]...), nil
}

func (r *InMemoryRepository) UpsertWeekOverride(_ context.Context, orgID, resourceID string, weekStart time.Time, day models.DaySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(orgID, resourceID, weekStart)
	override, ok := r.overrides[key]
	if !ok {
		override = models.WeeklyOverride{
			ID:             key,
			OrganisationID: orgID,
			ResourceID:     resourceID,
			WeekStart:      weekStart.UTC(),
		}
	}

	replaced := false
	for i, d := range override.Days {
		if d.DayOfWeek == day.DayOfWeek {
			override.Days[i] = day
			replaced = true
			break
		}
	}
	if !replaced {
		override.Days = append(override.Days, day)
	}
	r.overrides[key] = override
	return nil
}

func (r *InMemoryRepository) GetWeekOverride(_ context.Context, orgID, resourceID string, weekStart time.Time) (*models.WeeklyOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	override, ok := r.overrides[overrideKey(orgID, resourceID, weekStart)]
	if !ok {
		return nil, nil
	}
	copied := override
	copied.Days = append([]models.DaySchedule(nil), override.Days...)
	return &copied, nil
}

func (r *InMemoryRepository) GetOccupancyInRange(_ context.Context, orgID, resourceID string, from, to time.Time) ([]models.Occupancy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Occupancy
	for _, occ := range r.occupancy[resourceKey(orgID, resourceID)] {
		if occ.Overlaps(from, to) {
			out = append(out, occ)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) FindOccupancyAt(_ context.Context, orgID, resourceID string, at time.Time) (*models.Occupancy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, occ := range r.occupancy[resourceKey(orgID, resourceID)] {
		if occ.Covers(at) {
			found := occ
			return &found, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) CommitBooking(_ context.Context, occ *models.Occupancy, appt *models.Appointment) error {
	lk := r.resourceLock(occ.ResourceID)
	lk.Lock()
	defer lk.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	key := resourceKey(occ.OrganisationID, occ.ResourceID)
	for _, existing := range r.occupancy[key] {
		if existing.Overlaps(occ.StartTime, occ.EndTime) {
			return ErrSlotTaken
		}
	}
	r.occupancy[key] = append(r.occupancy[key], *occ)
	if appt != nil {
		r.appointments[appt.ID] = *appt
	}
	return nil
}

func (r *InMemoryRepository) ReassignBooking(_ context.Context, referenceID string, occ *models.Occupancy) error {
	lk := r.resourceLock(occ.ResourceID)
	lk.Lock()
	defer lk.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appointments[referenceID]
	if !ok || appt.Status == models.AppointmentCancelled {
		return ErrNotFound
	}

	// The overlap check ignores the appointment's own occupancy so a
	// failed check leaves the old booking fully intact, mirroring a
	// transaction abort.
	key := resourceKey(occ.OrganisationID, occ.ResourceID)
	for _, existing := range r.occupancy[key] {
		if existing.ReferenceID != referenceID && existing.Overlaps(occ.StartTime, occ.EndTime) {
			return ErrSlotTaken
		}
	}
	r.deleteOccupancyLocked(referenceID)
	r.occupancy[key] = append(r.occupancy[key], *occ)

	appt.ResourceID = occ.ResourceID
	appt.StartTime = occ.StartTime
	appt.EndTime = occ.EndTime
	appt.UpdatedAt = time.Now().UTC()
	r.appointments[referenceID] = appt
	return nil
}

func (r *InMemoryRepository) ReleaseBooking(_ context.Context, orgID, resourceID, referenceID string) (*models.Occupancy, error) {
	lk := r.resourceLock(resourceID)
	lk.Lock()
	defer lk.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if appt, ok := r.appointments[referenceID]; ok {
		if appt.Status == models.AppointmentCancelled {
			return nil, nil
		}
		appt.Status = models.AppointmentCancelled
		appt.UpdatedAt = time.Now().UTC()
		r.appointments[referenceID] = appt
	}

	key := resourceKey(orgID, resourceID)
	var released *models.Occupancy
	kept := r.occupancy[key][:0]
	for _, occ := range r.occupancy[key] {
		if occ.ReferenceID == referenceID && released == nil {
			removed := occ
			released = &removed
			continue
		}
		kept = append(kept, occ)
	}
	r.occupancy[key] = kept
	return released, nil
}

func (r *InMemoryRepository) GetAppointment(_ context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appt, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return &appt, nil
}

// deleteOccupancyLocked removes every occupancy carrying referenceID
// across all resources. Callers hold r.mu.
func (r *InMemoryRepository) deleteOccupancyLocked(referenceID string) {
	for key, list := range r.occupancy {
		kept := list[:0]
		for _, occ := range list {
			if occ.ReferenceID != referenceID {
				kept = append(kept, occ)
			}
		}
		r.occupancy[key] = kept
	}
}
