package scheduling

import (
	"context"
	"time"

	"clinicbook/models"
)

// resolveWeek merges base availability, the week's override document,
// and committed occupancy into the final open slots for every day of
// the Monday-anchored UTC week containing ref. The result maps weekday
// name to slots; days without open slots are absent. All slot lists are
// freshly built, never aliased into stored records.
func (s *DefaultService) resolveWeek(ctx context.Context, orgID, resourceID string, ref time.Time) (map[string][]models.SlotTime, time.Time, error) {
	weekStart := WeekStartUTC(ref)
	weekEnd := weekStart.AddDate(0, 0, 7)

	if cached, ok := s.cacheGet(ctx, orgID, resourceID, weekStart); ok {
		return cached, weekStart, nil
	}

	base, err := s.Repo.GetBaseAvailability(ctx, orgID, resourceID)
	if err != nil {
		return nil, weekStart, err
	}
	override, err := s.Repo.GetWeekOverride(ctx, orgID, resourceID, weekStart)
	if err != nil {
		return nil, weekStart, err
	}
	occupancy, err := s.Repo.GetOccupancyInRange(ctx, orgID, resourceID, weekStart, weekEnd)
	if err != nil {
		return nil, weekStart, err
	}

	days := make(map[string][]models.SlotTime, len(base))
	for _, entry := range base {
		days[entry.DayOfWeek] = append([]models.SlotTime(nil), entry.Slots...)
	}
	// An override day replaces the base slots wholesale; it never
	// merges element-wise. An empty override closes the day.
	if override != nil {
		for _, day := range override.Days {
			if len(day.Slots) == 0 {
				delete(days, day.DayOfWeek)
				continue
			}
			days[day.DayOfWeek] = append([]models.SlotTime(nil), day.Slots...)
		}
	}

	// Subtract occupancy day by day. Each occupancy is clipped to the
	// UTC day under consideration, so intervals spanning midnight block
	// every day they touch.
	for i := 0; i < 7; i++ {
		dayStart := weekStart.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		name := models.DayOfWeekFor(dayStart)

		slots := days[name]
		if len(slots) == 0 {
			continue
		}
		for _, occ := range occupancy {
			if !occ.Overlaps(dayStart, dayEnd) {
				continue
			}
			busyStart := minutesWithinDay(occ.StartTime.UTC(), dayStart)
			busyEnd := minutesWithinDay(occ.EndTime.UTC(), dayStart)
			slots = subtractInterval(slots, busyStart, busyEnd)
			if len(slots) == 0 {
				break
			}
		}
		if len(slots) == 0 {
			delete(days, name)
		} else {
			days[name] = slots
		}
	}

	s.cachePut(ctx, orgID, resourceID, weekStart, days)
	return days, weekStart, nil
}

// subtractInterval removes the busy minutes [busyStart, busyEnd) from
// every available slot, splitting or dropping slots as needed. A middle
// overlap yields two slots, an edge overlap one shortened slot, full
// containment none. The input list is left untouched.
func subtractInterval(slots []models.SlotTime, busyStart, busyEnd int) []models.SlotTime {
	if busyEnd <= busyStart {
		return slots
	}
	out := make([]models.SlotTime, 0, len(slots)+1)
	for _, slot := range slots {
		if !slot.IsAvailable {
			out = append(out, slot)
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
		if busyEnd <= start || busyStart >= end {
			out = append(out, slot)
			continue
		}
		if busyStart > start {
			out = append(out, models.SlotTime{
				StartTime:   formatClock(start),
				EndTime:     formatClock(busyStart),
				IsAvailable: true,
			})
		}
		if busyEnd < end {
			out = append(out, models.SlotTime{
				StartTime:   formatClock(busyEnd),
				EndTime:     formatClock(end),
				IsAvailable: true,
			})
		}
	}
	return out
}

func (s *DefaultService) GetDayAvailability(ctx context.Context, orgID, resourceID string, date time.Time) (models.DayAvailability, error) {
	days, _, err := s.resolveWeek(ctx, orgID, resourceID, date)
	if err != nil {
		return models.DayAvailability{}, err
	}

	date = date.UTC()
	name := models.DayOfWeekFor(date)
	slots := days[name]
	if slots == nil {
		slots = []models.SlotTime{}
	}
	return models.DayAvailability{
		Date:      date.Format(dateLayout),
		DayOfWeek: name,
		Slots:     slots,
	}, nil
}

func (s *DefaultService) GetWeekAvailability(ctx context.Context, orgID, resourceID string, ref time.Time) ([]models.DaySchedule, error) {
	days, _, err := s.resolveWeek(ctx, orgID, resourceID, ref)
	if err != nil {
		return nil, err
	}
	out := make([]models.DaySchedule, 0, len(days))
	for _, name := range models.DaysOfWeek {
		if slots, ok := days[name]; ok {
			out = append(out, models.DaySchedule{DayOfWeek: name, Slots: slots})
		}
	}
	return out, nil
}
