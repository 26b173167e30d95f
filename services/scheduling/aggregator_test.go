package scheduling_test

import (
	"context"
	"testing"

	rosterRepo "clinicbook/database/repository/roster"
	"clinicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testService = "svc-cardiology"

func addQualifiedResource(roster *rosterRepo.InMemoryRepository, resourceID string) {
	roster.AddResource(models.Resource{
		ID:             resourceID,
		OrganisationID: testOrg,
		Name:           resourceID,
		ServiceIDs:     []string{testService},
		Active:         true,
	})
}

func TestAggregatedWindows_MergesIdenticalOfferings(t *testing.T) {
	svc, _, roster, _ := newTestService(t)
	ctx := context.Background()

	nextMonday := monday.AddDate(0, 0, 7)
	for _, id := range []string{"res-a", "res-b"} {
		addQualifiedResource(roster, id)
		mustSetBase(t, svc, id, daySchedule(models.Monday, slot("09:00", "10:00")))
	}

	windows, err := svc.GetAggregatedBookableWindows(ctx, testOrg, testService, 30, nextMonday)

	require.NoError(t, err)
	require.Len(t, windows, 2, "identical windows from two resources merge into one offering each")
	assert.Equal(t, "09:00", windows[0].StartTime)
	assert.Equal(t, []string{"res-a", "res-b"}, windows[0].ResourceIDs)
	assert.Equal(t, []string{"res-a", "res-b"}, windows[1].ResourceIDs)
}

func TestAggregatedWindows_DisjointSchedulesStaySeparate(t *testing.T) {
	svc, _, roster, _ := newTestService(t)
	ctx := context.Background()

	nextMonday := monday.AddDate(0, 0, 7)
	addQualifiedResource(roster, "res-a")
	mustSetBase(t, svc, "res-a", daySchedule(models.Monday, slot("09:00", "10:00")))
	addQualifiedResource(roster, "res-b")
	mustSetBase(t, svc, "res-b", daySchedule(models.Monday, slot("14:00", "15:00")))

	windows, err := svc.GetAggregatedBookableWindows(ctx, testOrg, testService, 30, nextMonday)

	require.NoError(t, err)
	require.Len(t, windows, 4)
	assert.Equal(t, []string{"res-a"}, windows[0].ResourceIDs)
	assert.Equal(t, []string{"res-b"}, windows[3].ResourceIDs)
	for i := 1; i < len(windows); i++ {
		assert.LessOrEqual(t, windows[i-1].StartTime, windows[i].StartTime, "windows sorted by start time")
	}
}

func TestAggregatedWindows_TodayDropsWindowsAtOrBeforeNow(t *testing.T) {
	svc, _, roster, clock := newTestService(t)
	ctx := context.Background()

	addQualifiedResource(roster, "res-a")
	mustSetBase(t, svc, "res-a", daySchedule(models.Monday, slot("09:00", "17:00")))
	clock.Set(at(monday, 12, 0))

	windows, err := svc.GetAggregatedBookableWindows(ctx, testOrg, testService, 60, monday)

	require.NoError(t, err)
	require.Len(t, windows, 4, "only 13:00 through 16:00 starts remain")
	assert.Equal(t, "13:00", windows[0].StartTime,
		"a window starting exactly at the current time is already gone")
}

func TestAggregatedWindows_FutureDateKeepsEveryWindow(t *testing.T) {
	svc, _, roster, clock := newTestService(t)
	ctx := context.Background()

	addQualifiedResource(roster, "res-a")
	mustSetBase(t, svc, "res-a", daySchedule(models.Monday, slot("09:00", "17:00")))
	clock.Set(at(monday, 12, 0))

	windows, err := svc.GetAggregatedBookableWindows(ctx, testOrg, testService, 60, monday.AddDate(0, 0, 7))

	require.NoError(t, err)
	assert.Len(t, windows, 8)
}

func TestAggregatedWindows_BookedResourceDropsOutOfWindow(t *testing.T) {
	svc, _, roster, _ := newTestService(t)
	ctx := context.Background()

	nextMonday := monday.AddDate(0, 0, 7)
	for _, id := range []string{"res-a", "res-b"} {
		addQualifiedResource(roster, id)
		mustSetBase(t, svc, id, daySchedule(models.Monday, slot("09:00", "11:00")))
	}
	mustBlock(t, svc, "res-b", at(nextMonday, 9, 0), at(nextMonday, 10, 0))

	windows, err := svc.GetAggregatedBookableWindows(ctx, testOrg, testService, 60, nextMonday)

	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, []string{"res-a"}, windows[0].ResourceIDs, "res-b is occupied 09:00-10:00")
	assert.Equal(t, []string{"res-a", "res-b"}, windows[1].ResourceIDs)
}

func TestAggregatedWindows_UnknownService_Empty(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	windows, err := svc.GetAggregatedBookableWindows(ctx, testOrg, "svc-nonexistent", 30, monday)

	require.NoError(t, err)
	assert.Empty(t, windows)
}
