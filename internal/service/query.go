package service

import (
	"sort"
	"strings"
	"time"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// Query/view derivations for the kiosk tabs and the admin report. All
// functions are pure: inputs are copied before sorting and never mutated, and
// sorts are stable so equal timestamps keep their original insertion order.

// VisitQueue splits a kiosk queue into morning and afternoon buckets.
type VisitQueue struct {
	AM []domain.Visit
	PM []domain.Visit
}

// CheckInQueue derives the pending check-in tab: today's Pending visits,
// ascending by scheduled start, bucketed on hour-of-day < 12.
func CheckInQueue(records []domain.Visit, today time.Time) VisitQueue {
	dayStart := startOfDay(today)
	dayEnd := dayStart.AddDate(0, 0, 1)

	filtered := make([]domain.Visit, 0)
	for _, visit := range records {
		if visit.Status != domain.VisitStatusPending {
			continue
		}
		if visit.ScheduleStartTime.Before(dayStart) || !visit.ScheduleStartTime.Before(dayEnd) {
			continue
		}
		filtered = append(filtered, visit)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ScheduleStartTime.Before(filtered[j].ScheduleStartTime)
	})

	return bucketByHour(filtered, func(visit domain.Visit) time.Time {
		return visit.ScheduleStartTime
	})
}

// CheckOutQueue derives the pending check-out tab: Arrived visits ascending
// by entry time. The schedule time fallback should not trigger once the
// enter-time invariant holds, but is kept defensively.
func CheckOutQueue(records []domain.Visit) VisitQueue {
	filtered := make([]domain.Visit, 0)
	for _, visit := range records {
		if visit.Status == domain.VisitStatusArrived {
			filtered = append(filtered, visit)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return enterOrSchedule(filtered[i]).Before(enterOrSchedule(filtered[j]))
	})

	return bucketByHour(filtered, enterOrSchedule)
}

// History derives the history tab: Completed visits whose scheduled start
// falls on the selected day, descending by scheduled start. A day with no
// completed visits yields an empty list.
func History(records []domain.Visit, selectedDay time.Time) []domain.Visit {
	dayStart := startOfDay(selectedDay)
	dayEnd := dayStart.AddDate(0, 0, 1)

	filtered := make([]domain.Visit, 0)
	for _, visit := range records {
		if visit.Status != domain.VisitStatusCompleted {
			continue
		}
		if visit.ScheduleStartTime.Before(dayStart) || !visit.ScheduleStartTime.Before(dayEnd) {
			continue
		}
		filtered = append(filtered, visit)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[j].ScheduleStartTime.Before(filtered[i].ScheduleStartTime)
	})
	return filtered
}

// ReportFilter captures the admin report search parameters. A nil Status
// means all statuses; nil dates leave that bound open.
type ReportFilter struct {
	SearchText string
	Status     *domain.VisitStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ReportSearch filters the record set for the admin report. Matching is a
// case-insensitive substring test against contact and vendor names; date
// bounds are day-granular (from at 00:00, to at 23:59:59.999). Input order is
// preserved.
func ReportSearch(records []domain.Visit, filter ReportFilter) []domain.Visit {
	search := strings.ToLower(strings.TrimSpace(filter.SearchText))

	var from, to time.Time
	if filter.DateFrom != nil {
		from = startOfDay(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		to = startOfDay(*filter.DateTo).AddDate(0, 0, 1).Add(-time.Millisecond)
	}

	filtered := make([]domain.Visit, 0)
	for _, visit := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(visit.Visitor.ContactName), search) &&
			!strings.Contains(strings.ToLower(visit.Visitor.VendorName), search) {
			continue
		}
		if filter.Status != nil && visit.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && visit.ScheduleStartTime.Before(from) {
			continue
		}
		if filter.DateTo != nil && visit.ScheduleStartTime.After(to) {
			continue
		}
		filtered = append(filtered, visit)
	}
	return filtered
}

// ReportPageSize is the fixed admin report page size.
const ReportPageSize = 10

// ReportPage is one page of a filtered report.
type ReportPage struct {
	Items      []domain.Visit
	Page       int
	TotalPages int
	TotalItems int
}

// Paginate slices a filtered set into 1-indexed pages of ReportPageSize.
// Out-of-range pages clamp to the nearest valid page; callers reset to page 1
// whenever a filter parameter changes.
func Paginate(records []domain.Visit, page int) ReportPage {
	totalItems := len(records)
	totalPages := (totalItems + ReportPageSize - 1) / ReportPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * ReportPageSize
	end := start + ReportPageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return ReportPage{
		Items:      records[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}

func bucketByHour(visits []domain.Visit, at func(domain.Visit) time.Time) VisitQueue {
	queue := VisitQueue{AM: []domain.Visit{}, PM: []domain.Visit{}}
	for _, visit := range visits {
		if at(visit).Hour() < 12 {
			queue.AM = append(queue.AM, visit)
		} else {
			queue.PM = append(queue.PM, visit)
		}
	}
	return queue
}

func enterOrSchedule(visit domain.Visit) time.Time {
	if visit.ActualEnterTime != nil {
		return *visit.ActualEnterTime
	}
	return visit.ScheduleStartTime
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
