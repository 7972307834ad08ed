package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-entry/visitor-service/internal/domain"
)

func queueVisit(id int64, status domain.VisitStatus, start time.Time) domain.Visit {
	return domain.Visit{
		ID:                id,
		Visitor:           domain.Visitor{VendorName: "TechCorp", ContactName: fmt.Sprintf("Visitor %d", id)},
		Status:            status,
		ScheduleStartTime: start,
		ScheduleEndTime:   start.Add(time.Hour),
	}
}

func visitIDs(visits []domain.Visit) []int64 {
	ids := make([]int64, 0, len(visits))
	for _, v := range visits {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestCheckInQueueFiltersAndBuckets(t *testing.T) {
	today := time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local)
	at := func(hour, min int) time.Time {
		return time.Date(2024, 5, 15, hour, min, 0, 0, time.Local)
	}

	records := []domain.Visit{
		queueVisit(1, domain.VisitStatusPending, at(14, 0)),
		queueVisit(2, domain.VisitStatusPending, at(9, 0)),
		queueVisit(3, domain.VisitStatusArrived, at(10, 0)),               // wrong status
		queueVisit(4, domain.VisitStatusPending, at(9, 0).AddDate(0, 0, -1)), // yesterday
		queueVisit(5, domain.VisitStatusPending, at(11, 59)),
		queueVisit(6, domain.VisitStatusPending, at(12, 0)),
		queueVisit(7, domain.VisitStatusCancelled, at(9, 30)),
	}

	queue := CheckInQueue(records, today.Add(10*time.Hour))

	assert.Equal(t, []int64{2, 5}, visitIDs(queue.AM))
	assert.Equal(t, []int64{6, 1}, visitIDs(queue.PM))
}

func TestCheckInQueueStableTieBreak(t *testing.T) {
	start := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	records := []domain.Visit{
		queueVisit(7, domain.VisitStatusPending, start),
		queueVisit(3, domain.VisitStatusPending, start),
		queueVisit(5, domain.VisitStatusPending, start),
	}

	queue := CheckInQueue(records, start)
	assert.Equal(t, []int64{7, 3, 5}, visitIDs(queue.AM))
}

func TestCheckOutQueueOrdersByEnterTime(t *testing.T) {
	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local)
	enterAt := func(hour int) *time.Time {
		ts := day.Add(time.Duration(hour) * time.Hour)
		return &ts
	}

	early := queueVisit(1, domain.VisitStatusArrived, day.Add(8*time.Hour))
	early.ActualEnterTime = enterAt(13)
	late := queueVisit(2, domain.VisitStatusArrived, day.Add(16*time.Hour))
	late.ActualEnterTime = enterAt(9)
	pending := queueVisit(3, domain.VisitStatusPending, day.Add(9*time.Hour))

	queue := CheckOutQueue([]domain.Visit{early, late, pending})

	assert.Equal(t, []int64{2}, visitIDs(queue.AM))
	assert.Equal(t, []int64{1}, visitIDs(queue.PM))
}

func TestHistoryDescendingAndEmptyDay(t *testing.T) {
	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local)
	records := []domain.Visit{
		queueVisit(1, domain.VisitStatusCompleted, day.Add(9*time.Hour)),
		queueVisit(2, domain.VisitStatusCompleted, day.Add(15*time.Hour)),
		queueVisit(3, domain.VisitStatusCompleted, day.AddDate(0, 0, -2)),
		queueVisit(4, domain.VisitStatusArrived, day.Add(10*time.Hour)),
	}

	history := History(records, day)
	assert.Equal(t, []int64{2, 1}, visitIDs(history))

	empty := History(records, day.AddDate(0, 0, 5))
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReportSearchCaseInsensitive(t *testing.T) {
	day := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	a := queueVisit(1, domain.VisitStatusCompleted, day)
	a.Visitor = domain.Visitor{VendorName: "TechCorp", ContactName: "John Doe"}
	b := queueVisit(2, domain.VisitStatusPending, day)
	b.Visitor = domain.Visitor{VendorName: "CleanServices", ContactName: "Mike Brown"}

	matched := ReportSearch([]domain.Visit{a, b}, ReportFilter{SearchText: "techcorp"})
	assert.Equal(t, []int64{1}, visitIDs(matched))

	matched = ReportSearch([]domain.Visit{a, b}, ReportFilter{SearchText: "MIKE"})
	assert.Equal(t, []int64{2}, visitIDs(matched))

	matched = ReportSearch([]domain.Visit{a, b}, ReportFilter{SearchText: "  "})
	assert.Len(t, matched, 2)
}

func TestReportSearchStatusAndDateBounds(t *testing.T) {
	mid := time.Date(2024, 5, 15, 23, 30, 0, 0, time.Local)
	before := mid.AddDate(0, 0, -3)
	after := mid.AddDate(0, 0, 3)

	records := []domain.Visit{
		queueVisit(1, domain.VisitStatusCompleted, before),
		queueVisit(2, domain.VisitStatusCompleted, mid),
		queueVisit(3, domain.VisitStatusCancelled, mid),
		queueVisit(4, domain.VisitStatusCompleted, after),
	}

	completed := domain.VisitStatusCompleted
	from := time.Date(2024, 5, 14, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local)

	matched := ReportSearch(records, ReportFilter{
		Status:   &completed,
		DateFrom: &from,
		DateTo:   &to,
	})

	// the To bound is inclusive through end of day
	assert.Equal(t, []int64{2}, visitIDs(matched))
}

func TestPaginate(t *testing.T) {
	day := time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local)
	records := make([]domain.Visit, 0, 25)
	for i := 1; i <= 25; i++ {
		records = append(records, queueVisit(int64(i), domain.VisitStatusCompleted, day))
	}

	page := Paginate(records, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalItems)
	assert.Len(t, page.Items, ReportPageSize)
	assert.Equal(t, int64(1), page.Items[0].ID)

	page = Paginate(records, 3)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(21), page.Items[0].ID)

	// out-of-range pages clamp instead of erroring
	page = Paginate(records, 0)
	assert.Equal(t, 1, page.Page)
	page = Paginate(records, 99)
	assert.Equal(t, 3, page.Page)

	page = Paginate(nil, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
	assert.Empty(t, page.Items)
}
