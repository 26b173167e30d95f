package scheduling_test

import (
	"context"
	"sync"
	"testing"
	"time"

	rosterRepo "clinicbook/database/repository/roster"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
	"clinicbook/services/scheduling"

	"github.com/stretchr/testify/require"
)

const testOrg = "org-1"

// monday is the anchor day used across the suite: 2026-03-02 is a Monday.
var monday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func newTestService(t *testing.T) (*scheduling.DefaultService, *scheduleRepo.InMemoryRepository, *rosterRepo.InMemoryRepository, *fakeClock) {
	t.Helper()
	repo := scheduleRepo.NewInMemoryRepository()
	roster := rosterRepo.NewInMemoryRepository()
	clock := &fakeClock{now: monday.Add(12 * time.Hour)}
	svc := &scheduling.DefaultService{
		Repo:   repo,
		Roster: roster,
		Clock:  clock,
	}
	return svc, repo, roster, clock
}

func slot(start, end string) models.SlotTime {
	return models.SlotTime{StartTime: start, EndTime: end, IsAvailable: true}
}

func daySchedule(dayOfWeek string, slots ...models.SlotTime) models.DaySchedule {
	return models.DaySchedule{DayOfWeek: dayOfWeek, Slots: slots}
}

// at returns day's midnight shifted by hours and minutes, in UTC.
func at(day time.Time, hours, minutes int) time.Time {
	return day.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}

func mustSetBase(t *testing.T, svc *scheduling.DefaultService, resourceID string, days ...models.DaySchedule) {
	t.Helper()
	require.NoError(t, svc.SetBaseAvailability(context.Background(), testOrg, resourceID, days))
}

func mustBlock(t *testing.T, svc *scheduling.DefaultService, resourceID string, start, end time.Time) {
	t.Helper()
	_, err := svc.BlockInterval(context.Background(), testOrg, resourceID, start, end, models.OccupancyBlocked, "admin block")
	require.NoError(t, err)
}
