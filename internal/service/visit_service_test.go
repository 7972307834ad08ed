package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/repository"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(t *testing.T, start time.Time) (*VisitService, repository.VisitRepository, *testClock) {
	t.Helper()
	clock := &testClock{now: start}
	visits := repository.NewMemoryVisitRepository()
	svc := NewVisitService(VisitDependencies{VisitRepo: visits}).WithClock(clock.Now)
	return svc, visits, clock
}

func seedPending(t *testing.T, visits repository.VisitRepository, start time.Time) *domain.Visit {
	t.Helper()
	visit := &domain.Visit{
		Visitor:           domain.Visitor{VendorName: "TechCorp", ContactName: "John Doe"},
		Host:              domain.Host{EmployeeName: "Alice Smith"},
		VisitorCount:      1,
		ScheduleStartTime: start,
		ScheduleEndTime:   start.Add(time.Hour),
		Status:            domain.VisitStatusPending,
	}
	require.NoError(t, visits.Create(context.Background(), visit))
	return visit
}

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de
}

func TestCheckInFromPending(t *testing.T) {
	nineAM := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, clock := newTestService(t, nineAM)
	visit := seedPending(t, visits, nineAM)

	clock.Advance(5 * time.Minute)
	updated, err := svc.CheckIn(context.Background(), visit.ID, []byte("sigA"), []byte("sigB"))
	require.NoError(t, err)

	assert.Equal(t, domain.VisitStatusArrived, updated.Status)
	require.NotNil(t, updated.ActualEnterTime)
	assert.Equal(t, nineAM.Add(5*time.Minute), *updated.ActualEnterTime)
	assert.Nil(t, updated.ActualEndTime)
	assert.Equal(t, []byte("sigA"), updated.Signatures.VisitorCheckIn)
	assert.Equal(t, []byte("sigB"), updated.Signatures.GuardCheckIn)

	stored, err := visits.GetByID(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisitStatusArrived, stored.Status)
}

func TestCheckInRejectedOutsidePending(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, clock := newTestService(t, now)
	visit := seedPending(t, visits, now)

	_, err := svc.CheckIn(context.Background(), visit.ID, []byte("a"), []byte("b"))
	require.NoError(t, err)

	// Arrived: a second check-in must not change state.
	clock.Advance(time.Minute)
	_, err = svc.CheckIn(context.Background(), visit.ID, []byte("x"), []byte("y"))
	de := domainErr(t, err)
	assert.Equal(t, "CONFLICT", de.Code)

	stored, err := visits.GetByID(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), stored.Signatures.VisitorCheckIn)
	require.NotNil(t, stored.ActualEnterTime)
	assert.Equal(t, now, *stored.ActualEnterTime)

	// Completed is terminal too.
	_, err = svc.CheckOut(context.Background(), visit.ID, []byte("c"), []byte("d"))
	require.NoError(t, err)
	_, err = svc.CheckIn(context.Background(), visit.ID, []byte("x"), []byte("y"))
	assert.Equal(t, "CONFLICT", domainErr(t, err).Code)
}

func TestCheckInRequiresBothSignatures(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, _ := newTestService(t, now)
	visit := seedPending(t, visits, now)

	_, err := svc.CheckIn(context.Background(), visit.ID, nil, []byte("guard"))
	assert.Equal(t, "INVALID_SIGNATURE", domainErr(t, err).Code)

	_, err = svc.CheckIn(context.Background(), visit.ID, []byte("visitor"), nil)
	assert.Equal(t, "INVALID_SIGNATURE", domainErr(t, err).Code)

	stored, err := visits.GetByID(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisitStatusPending, stored.Status)
	assert.Nil(t, stored.ActualEnterTime)
}

func TestCheckInUnknownVisit(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	_, err := svc.CheckIn(context.Background(), 999, []byte("a"), []byte("b"))
	assert.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}

func TestCheckInThenCheckOutOrdersTimestamps(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, clock := newTestService(t, now)
	visit := seedPending(t, visits, now)

	_, err := svc.CheckIn(context.Background(), visit.ID, []byte("a"), []byte("b"))
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	updated, err := svc.CheckOut(context.Background(), visit.ID, []byte("c"), []byte("d"))
	require.NoError(t, err)

	assert.Equal(t, domain.VisitStatusCompleted, updated.Status)
	require.NotNil(t, updated.ActualEnterTime)
	require.NotNil(t, updated.ActualEndTime)
	assert.True(t, updated.ActualEnterTime.Before(*updated.ActualEndTime))
	assert.Equal(t, []byte("c"), updated.Signatures.VisitorCheckOut)
	assert.Equal(t, []byte("d"), updated.Signatures.GuardCheckOut)
}

func TestCheckOutOnlyFromArrived(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, _ := newTestService(t, now)
	visit := seedPending(t, visits, now)

	_, err := svc.CheckOut(context.Background(), visit.ID, []byte("a"), []byte("b"))
	assert.Equal(t, "CONFLICT", domainErr(t, err).Code)

	stored, err := visits.GetByID(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisitStatusPending, stored.Status)
	assert.Nil(t, stored.ActualEndTime)
}

func TestRegisterWalkInBypassesPending(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.Local)
	svc, _, _ := newTestService(t, now)

	visit, err := svc.RegisterWalkIn(context.Background(), WalkInInput{
		VendorName:   "CleanServices",
		VisitorName:  "Mike Brown",
		HostID:       3,
		VisitorCount: 2,
		Purpose:      "maintenance",
		Signature:    []byte("sig"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VisitStatusArrived, visit.Status)
	require.NotNil(t, visit.ActualEnterTime)
	assert.Equal(t, now, *visit.ActualEnterTime)
	assert.Equal(t, now, visit.ScheduleStartTime)
	assert.Nil(t, visit.ActualEndTime)
	assert.Equal(t, "Host #3", visit.Host.EmployeeName)
	assert.NotEmpty(t, visit.BadgeCode)
}

func TestRegisterWalkInValidation(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())

	_, err := svc.RegisterWalkIn(context.Background(), WalkInInput{
		VendorName:   "  ",
		VisitorName:  "",
		VisitorCount: 0,
		Purpose:      "",
	})
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Contains(t, de.Details, "vendorName")
	assert.Contains(t, de.Details, "visitorName")
	assert.Contains(t, de.Details, "visitorCount")
	assert.Contains(t, de.Details, "purpose")
}

func TestCreateAppointmentCollectsAllViolations(t *testing.T) {
	svc, visits, _ := newTestService(t, time.Now())

	_, err := svc.CreateAppointment(context.Background(), CreateAppointmentInput{
		VendorName:   "",
		VisitorName:  "",
		VisitorCount: 0,
		VisitDate:    "2024-05-15",
		StartTime:    "10:00",
		EndTime:      "09:00",
	})
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Contains(t, de.Details, "vendorName")
	assert.Contains(t, de.Details, "visitorName")
	assert.Contains(t, de.Details, "visitorCount")
	assert.Contains(t, de.Details, "endTime")

	all, err := visits.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateAppointmentEqualTimesRejected(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())

	_, err := svc.CreateAppointment(context.Background(), CreateAppointmentInput{
		VendorName:   "TechCorp",
		VisitorName:  "John Doe",
		VisitorCount: 1,
		VisitDate:    "2024-05-15",
		StartTime:    "09:00",
		EndTime:      "09:00",
	})
	de := domainErr(t, err)
	assert.Contains(t, de.Details, "endTime")
}

func TestCreateAppointmentSuccess(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())

	visit, err := svc.CreateAppointment(context.Background(), CreateAppointmentInput{
		HostID:       1,
		VendorName:   "TechCorp",
		VisitorName:  "John Doe",
		VisitorCount: 3,
		VisitDate:    "2024-05-15",
		StartTime:    "09:00",
		EndTime:      "10:30",
		RoomID:       2,
		Purpose:      "quarterly review",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VisitStatusPending, visit.Status)
	assert.Nil(t, visit.ActualEnterTime)
	assert.Nil(t, visit.ActualEndTime)
	assert.Equal(t, time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local), visit.ScheduleStartTime)
	assert.Equal(t, time.Date(2024, 5, 15, 10, 30, 0, 0, time.Local), visit.ScheduleEndTime)
	assert.NotZero(t, visit.ID)
}

func TestCancelFromPendingAndArrived(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, _ := newTestService(t, now)

	pending := seedPending(t, visits, now)
	cancelled, err := svc.Cancel(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisitStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.ActualEnterTime)

	arrived := seedPending(t, visits, now)
	_, err = svc.CheckIn(context.Background(), arrived.ID, []byte("a"), []byte("b"))
	require.NoError(t, err)
	cancelled, err = svc.Cancel(context.Background(), arrived.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisitStatusCancelled, cancelled.Status)
	// cancellation never touches recorded timestamps
	require.NotNil(t, cancelled.ActualEnterTime)
	assert.Nil(t, cancelled.ActualEndTime)
}

func TestCancelTerminalRejected(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, _ := newTestService(t, now)
	visit := seedPending(t, visits, now)

	_, err := svc.Cancel(context.Background(), visit.ID)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), visit.ID)
	assert.Equal(t, "CONFLICT", domainErr(t, err).Code)
}

// enter-time invariant: set exactly when status is Arrived or Completed.
func TestTimestampInvariantsAcrossLifecycle(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	svc, visits, clock := newTestService(t, now)
	visit := seedPending(t, visits, now)

	assertInvariants := func() {
		all, err := visits.ListAll(context.Background())
		require.NoError(t, err)
		for _, v := range all {
			enterSet := v.ActualEnterTime != nil
			endSet := v.ActualEndTime != nil
			arrivedOrDone := v.Status == domain.VisitStatusArrived || v.Status == domain.VisitStatusCompleted
			assert.Equal(t, arrivedOrDone, enterSet, "enter time vs status %s", v.Status)
			assert.Equal(t, v.Status == domain.VisitStatusCompleted, endSet, "end time vs status %s", v.Status)
		}
	}

	assertInvariants()
	_, err := svc.CheckIn(context.Background(), visit.ID, []byte("a"), []byte("b"))
	require.NoError(t, err)
	assertInvariants()
	clock.Advance(time.Hour)
	_, err = svc.CheckOut(context.Background(), visit.ID, []byte("c"), []byte("d"))
	require.NoError(t, err)
	assertInvariants()
}
