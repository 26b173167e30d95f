package scheduling

import (
	"context"
	"time"

	"clinicbook/models"
)

// GenerateWindows slices the available slots of one day into
// fixed-duration, non-overlapping bookable windows. Cutting starts at
// each slot's start; a remainder shorter than windowMinutes is
// discarded, and windows never span two source slots. Pure: no I/O,
// fully deterministic.
func GenerateWindows(slots []models.SlotTime, windowMinutes int) ([]models.BookableWindow, error) {
	if windowMinutes <= 0 {
		return nil, NewValidationError("window duration must be positive, got %d", windowMinutes)
	}
	var windows []models.BookableWindow
	for _, slot := range slots {
		if !slot.IsAvailable {
			continue
		}
		start, err := parseClock(slot.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(slot.EndTime)
		if err != nil {
			return nil, err
		}
		for cursor := start; cursor+windowMinutes <= end; cursor += windowMinutes {
			windows = append(windows, models.BookableWindow{
				StartTime: formatClock(cursor),
				EndTime:   formatClock(cursor + windowMinutes),
			})
		}
	}
	return windows, nil
}

func (s *DefaultService) GetBookableWindows(ctx context.Context, orgID, resourceID string, durationMinutes int, date time.Time) ([]models.BookableWindow, error) {
	day, err := s.GetDayAvailability(ctx, orgID, resourceID, date)
	if err != nil {
		return nil, err
	}
	return GenerateWindows(day.Slots, durationMinutes)
}
