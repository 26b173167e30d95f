package scheduling

import (
	"context"
)

// GetCurrentStatus classifies a resource's state at this instant,
// evaluated in strict priority order: an active occupancy always wins,
// then an open slot covering now, then a day with no slots at all;
// anything left is scheduled today but not currently in session.
func (s *DefaultService) GetCurrentStatus(ctx context.Context, orgID, resourceID string) (Status, error) {
	now := s.clock().Now().UTC()

	occ, err := s.Repo.FindOccupancyAt(ctx, orgID, resourceID, now)
	if err != nil {
		return "", err
	}
	if occ != nil {
		return StatusConsulting, nil
	}

	day, err := s.GetDayAvailability(ctx, orgID, resourceID, now)
	if err != nil {
		return "", err
	}
	if len(day.Slots) == 0 {
		return StatusOffDuty, nil
	}

	nowMinutes := minuteOfDay(now)
	for _, slot := range day.Slots {
		if !slot.IsAvailable {
			continue
		}
		start, err := parseClock(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if nowMinutes >= start && nowMinutes < end {
			return StatusAvailable, nil
		}
	}
	return StatusRequested, nil
}
