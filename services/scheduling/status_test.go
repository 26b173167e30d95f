package scheduling_test

import (
	"context"
	"testing"

	"clinicbook/models"
	"clinicbook/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentStatus_ActiveOccupancy_Consulting(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	mustBlock(t, svc, "res-1", at(monday, 10, 0), at(monday, 11, 0))
	clock.Set(at(monday, 10, 30))

	status, err := svc.GetCurrentStatus(ctx, testOrg, "res-1")

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusConsulting, status)
}

func TestGetCurrentStatus_InsideOpenSlot_Available(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	clock.Set(at(monday, 10, 30))

	status, err := svc.GetCurrentStatus(ctx, testOrg, "res-1")

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusAvailable, status)
}

func TestGetCurrentStatus_NoScheduleToday_OffDuty(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Tuesday, slot("09:00", "17:00")))
	clock.Set(at(monday, 10, 30))

	status, err := svc.GetCurrentStatus(ctx, testOrg, "res-1")

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusOffDuty, status)
}

func TestGetCurrentStatus_OutsideSlots_Requested(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("14:00", "17:00")))
	clock.Set(at(monday, 12, 0))

	status, err := svc.GetCurrentStatus(ctx, testOrg, "res-1")

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusRequested, status)
}

func TestGetCurrentStatus_OccupancyWinsWithoutAnySchedule(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	ctx := context.Background()

	mustBlock(t, svc, "res-1", at(monday, 10, 0), at(monday, 11, 0))
	clock.Set(at(monday, 10, 30))

	status, err := svc.GetCurrentStatus(ctx, testOrg, "res-1")

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusConsulting, status,
		"an active occupancy outranks the empty-schedule classification")
}

func TestGetCurrentStatus_OccupancyEndIsExclusive(t *testing.T) {
	svc, _, _, clock := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	mustBlock(t, svc, "res-1", at(monday, 10, 0), at(monday, 11, 0))
	clock.Set(at(monday, 11, 0))

	status, err := svc.GetCurrentStatus(ctx, testOrg, "res-1")

	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusAvailable, status,
		"at the half-open boundary the occupancy no longer covers now")
}
