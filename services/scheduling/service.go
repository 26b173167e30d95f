package scheduling

import (
	"context"
	"sort"
	"time"

	rosterRepo "clinicbook/database/repository/roster"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
)

// DefaultService implements Service over the interval store and roster.
type DefaultService struct {
	Repo   scheduleRepo.Repository
	Roster rosterRepo.Repository
	Clock  Clock
	Cache  *AvailabilityCache
}

func (s *DefaultService) clock() Clock {
	if s.Clock == nil {
		return SystemClock()
	}
	return s.Clock
}

func (s *DefaultService) SetBaseAvailability(ctx context.Context, orgID, resourceID string, days []models.DaySchedule) error {
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		if err := validateDaySchedule(day, false); err != nil {
			return err
		}
		if seen[day.DayOfWeek] {
			return NewValidationError("duplicate day entry %s", day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true
	}
	if err := s.Repo.ReplaceBaseAvailability(ctx, orgID, resourceID, days); err != nil {
		return err
	}
	s.invalidate(ctx, orgID, resourceID)
	return nil
}

func (s *DefaultService) SetWeekOverride(ctx context.Context, orgID, resourceID string, weekRef time.Time, day models.DaySchedule) error {
	// An empty slot list is allowed here: it closes the day for that
	// week only.
	if err := validateDaySchedule(day, true); err != nil {
		return err
	}
	weekStart := WeekStartUTC(weekRef)
	if err := s.Repo.UpsertWeekOverride(ctx, orgID, resourceID, weekStart, day); err != nil {
		return err
	}
	s.invalidate(ctx, orgID, resourceID)
	return nil
}

// validateDaySchedule checks the weekday name and the slot list:
// parsable clock strings, start strictly before end, no overlap between
// slots of the same day.
func validateDaySchedule(day models.DaySchedule, allowEmpty bool) error {
	if !models.IsDayOfWeek(day.DayOfWeek) {
		return NewValidationError("unknown day of week %q", day.DayOfWeek)
	}
	if len(day.Slots) == 0 && !allowEmpty {
		return NewValidationError("day %s has no slots", day.DayOfWeek)
	}
	return validateSlots(day.Slots)
}

func validateSlots(slots []models.SlotTime) error {
	type span struct{ start, end int }
	spans := make([]span, 0, len(slots))
	for _, slot := range slots {
		start, err := parseClock(slot.StartTime)
		if err != nil {
			return err
		}
		end, err := parseClock(slot.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return NewValidationError("slot %s-%s: start must be before end", slot.StartTime, slot.EndTime)
		}
		spans = append(spans, span{start, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return NewValidationError("slots overlap at %s", formatClock(spans[i].start))
		}
	}
	return nil
}

func validateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return NewValidationError("interval start and end are required")
	}
	if !start.Before(end) {
		return NewValidationError("interval start %s must be before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
