package scheduling_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinicbook/models"
	"clinicbook/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingReq(resourceID string, start, end time.Time) scheduling.BookingRequest {
	return scheduling.BookingRequest{
		OrganisationID: testOrg,
		ResourceID:     resourceID,
		ServiceID:      testService,
		PatientID:      "patient-1",
		StartTime:      start,
		EndTime:        end,
	}
}

func TestBookSlot_Succeeds_AndSplitsAvailability(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))

	appt, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))

	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)

	day, err := svc.GetDayAvailability(ctx, testOrg, "res-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "10:00"), slot("11:00", "17:00")}, day.Slots)
}

func TestBookSlot_OverlappingInterval_Conflict(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	_, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"exact repeat", at(monday, 10, 0), at(monday, 11, 0)},
		{"partial overlap", at(monday, 10, 30), at(monday, 11, 30)},
		{"containing interval", at(monday, 9, 30), at(monday, 11, 30)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookSlot(ctx, bookingReq("res-1", tc.start, tc.end))
			var conflict *scheduling.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, "res-1", conflict.ResourceID)
		})
	}
}

func TestBookSlot_AdjacentIntervals_NoConflict(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	_, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)

	// Half-open intervals: [09:00,10:00) and [11:00,12:00) touch the
	// booked [10:00,11:00) at its bounds without overlapping it.
	_, err = svc.BookSlot(ctx, bookingReq("res-1", at(monday, 9, 0), at(monday, 10, 0)))
	assert.NoError(t, err)
	_, err = svc.BookSlot(ctx, bookingReq("res-1", at(monday, 11, 0), at(monday, 12, 0)))
	assert.NoError(t, err)
}

func TestBookSlot_InvalidInterval_ValidationError(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 11, 0), at(monday, 10, 0)))

	var validationErr *scheduling.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReleaseSlot_RestoresAvailability_AndIsIdempotent(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	appt, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseSlot(ctx, testOrg, "res-1", appt.ID))

	day, err := svc.GetDayAvailability(ctx, testOrg, "res-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "17:00")}, day.Slots, "releasing restores the full slot")

	stored, err := repo.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.AppointmentCancelled, stored.Status)

	// A second release of the same reference is a no-op, not an error.
	require.NoError(t, svc.ReleaseSlot(ctx, testOrg, "res-1", appt.ID))
}

func TestReleaseSlot_UnknownReference_NoOp(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.ReleaseSlot(ctx, testOrg, "res-1", "ref-missing"))
}

func TestReassignSlot_MovesBookingBetweenResources(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-a", daySchedule(models.Monday, slot("09:00", "17:00")))
	mustSetBase(t, svc, "res-b", daySchedule(models.Monday, slot("09:00", "17:00")))
	appt, err := svc.BookSlot(ctx, bookingReq("res-a", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)

	err = svc.ReassignSlot(ctx, scheduling.ReassignRequest{
		OrganisationID: testOrg,
		AppointmentID:  appt.ID,
		NewResourceID:  "res-b",
		StartTime:      at(monday, 14, 0),
		EndTime:        at(monday, 15, 0),
	})
	require.NoError(t, err)

	dayA, err := svc.GetDayAvailability(ctx, testOrg, "res-a", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "17:00")}, dayA.Slots, "old resource is fully open again")

	dayB, err := svc.GetDayAvailability(ctx, testOrg, "res-b", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "14:00"), slot("15:00", "17:00")}, dayB.Slots)

	stored, err := repo.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "res-b", stored.ResourceID)
	assert.Equal(t, at(monday, 14, 0), stored.StartTime)
}

func TestRescheduleSlot_OverlappingOwnOriginal_Succeeds(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	appt, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)

	// The new interval overlaps the appointment's own occupancy; that
	// must not count as a conflict.
	err = svc.RescheduleSlot(ctx, testOrg, appt.ID, at(monday, 10, 30), at(monday, 11, 30))
	require.NoError(t, err)

	day, err := svc.GetDayAvailability(ctx, testOrg, "res-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "10:30"), slot("11:30", "17:00")}, day.Slots)
}

func TestReassignSlot_TargetOccupied_ConflictLeavesOldBookingIntact(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-a", daySchedule(models.Monday, slot("09:00", "17:00")))
	mustSetBase(t, svc, "res-b", daySchedule(models.Monday, slot("09:00", "17:00")))
	appt, err := svc.BookSlot(ctx, bookingReq("res-a", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)
	_, err = svc.BookSlot(ctx, bookingReq("res-b", at(monday, 14, 0), at(monday, 15, 0)))
	require.NoError(t, err)

	err = svc.ReassignSlot(ctx, scheduling.ReassignRequest{
		OrganisationID: testOrg,
		AppointmentID:  appt.ID,
		NewResourceID:  "res-b",
		StartTime:      at(monday, 14, 30),
		EndTime:        at(monday, 15, 30),
	})
	var conflict *scheduling.ConflictError
	require.ErrorAs(t, err, &conflict)

	dayA, err := svc.GetDayAvailability(ctx, testOrg, "res-a", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "10:00"), slot("11:00", "17:00")}, dayA.Slots,
		"the failed reassignment leaves the original booking in place")
}

func TestRescheduleSlot_UnknownAppointment_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	err := svc.RescheduleSlot(ctx, testOrg, "appt-missing", at(monday, 10, 0), at(monday, 11, 0))

	var notFound *scheduling.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestBlockInterval_UnknownSourceType_ValidationError(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.BlockInterval(ctx, testOrg, "res-1", at(monday, 10, 0), at(monday, 11, 0), "HOLIDAY", "")

	var validationErr *scheduling.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestBookSlot_ConcurrentIdenticalRequests_ExactlyOneWins(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))

	const attempts = 12
	results := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var conflict *scheduling.ConflictError
		require.ErrorAs(t, err, &conflict, "every loser must fail with a conflict, got %v", err)
	}
	assert.Equal(t, 1, successes, "exactly one of the racing requests may book the slot")
}

func TestBookingFlow_EndToEnd(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mustSetBase(t, svc, "res-1", daySchedule(models.Monday, slot("09:00", "17:00")))
	appt, err := svc.BookSlot(ctx, bookingReq("res-1", at(monday, 10, 0), at(monday, 11, 0)))
	require.NoError(t, err)

	day, err := svc.GetDayAvailability(ctx, testOrg, "res-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotTime{slot("09:00", "10:00"), slot("11:00", "17:00")}, day.Slots)

	windows, err := svc.GetBookableWindows(ctx, testOrg, "res-1", 30, monday)
	require.NoError(t, err)
	// [09:00,10:00) yields 2 half-hour windows, [11:00,17:00) yields 12.
	require.Len(t, windows, 14)
	for _, w := range windows {
		overlapsBooked := w.StartTime < "11:00" && w.EndTime > "10:00"
		assert.False(t, overlapsBooked, "window %s-%s overlaps the booked hour", w.StartTime, w.EndTime)
	}

	require.NoError(t, svc.ReleaseSlot(ctx, testOrg, "res-1", appt.ID))
	windows, err = svc.GetBookableWindows(ctx, testOrg, "res-1", 30, monday)
	require.NoError(t, err)
	assert.Len(t, windows, 16, "the released hour is bookable again")
}
