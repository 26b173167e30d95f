package scheduling

import (
	"context"
	"sort"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// GetAggregatedBookableWindows fans Resolver and Window Generator out
// across every resource qualified for the service, then merges windows
// with identical bounds into one offering annotated with every resource
// able to fulfil it. When the query date is today, windows starting at
// or before the current time are dropped.
func (s *DefaultService) GetAggregatedBookableWindows(ctx context.Context, orgID, serviceID string, durationMinutes int, date time.Time) ([]models.BookableWindow, error) {
	if durationMinutes <= 0 {
		return nil, NewValidationError("window duration must be positive, got %d", durationMinutes)
	}
	logger := utils.GetLogger()

	resourceIDs, err := s.Roster.ListQualifiedResources(ctx, orgID, serviceID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*models.BookableWindow)
	for _, resourceID := range resourceIDs {
		day, err := s.GetDayAvailability(ctx, orgID, resourceID, date)
		if err != nil {
			logger.Error("aggregator: failed to resolve day availability",
				zap.String("resourceID", resourceID), zap.Error(err))
			continue
		}
		windows, err := GenerateWindows(day.Slots, durationMinutes)
		if err != nil {
			logger.Error("aggregator: failed to generate windows",
				zap.String("resourceID", resourceID), zap.Error(err))
			continue
		}
		for _, window := range windows {
			key := window.StartTime + "-" + window.EndTime
			entry, ok := merged[key]
			if !ok {
				merged[key] = &models.BookableWindow{
					StartTime:   window.StartTime,
					EndTime:     window.EndTime,
					ResourceIDs: []string{resourceID},
				}
				continue
			}
			if !containsString(entry.ResourceIDs, resourceID) {
				entry.ResourceIDs = append(entry.ResourceIDs, resourceID)
			}
		}
	}

	now := s.clock().Now().UTC()
	filterPast := sameUTCDate(date, now)
	nowMinutes := minuteOfDay(now)

	out := make([]models.BookableWindow, 0, len(merged))
	for _, window := range merged {
		if filterPast {
			start, err := parseClock(window.StartTime)
			if err != nil || start <= nowMinutes {
				continue
			}
		}
		sort.Strings(window.ResourceIDs)
		out = append(out, *window)
	}
	// Zero-padded HH:MM strings sort chronologically.
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
