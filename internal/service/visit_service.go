package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/events"
	"github.com/smart-entry/visitor-service/internal/persistence"
	"github.com/smart-entry/visitor-service/internal/repository"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// VisitService is the visit lifecycle engine. Every status and timestamp
// mutation goes through its transition functions; UI code never writes those
// fields directly, which is what keeps the signature/timestamp invariants
// intact as call sites multiply.
type VisitService struct {
	visits     repository.VisitRepository
	users      repository.UserRepository
	locker     persistence.VisitLocker
	dispatcher events.Dispatcher
	clock      func() time.Time
}

// VisitDependencies bundles collaborators for the lifecycle engine.
type VisitDependencies struct {
	VisitRepo  repository.VisitRepository
	UserRepo   repository.UserRepository
	Locker     persistence.VisitLocker
	Dispatcher events.Dispatcher
}

// NewVisitService constructs the service.
func NewVisitService(deps VisitDependencies) *VisitService {
	locker := deps.Locker
	if locker == nil {
		locker = persistence.NewLocalVisitLocker()
	}
	return &VisitService{
		visits:     deps.VisitRepo,
		users:      deps.UserRepo,
		locker:     locker,
		dispatcher: deps.Dispatcher,
		clock:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests to pin transition times.
func (s *VisitService) WithClock(clock func() time.Time) *VisitService {
	s.clock = clock
	return s
}

// CreateAppointmentInput describes a scheduled appointment payload.
type CreateAppointmentInput struct {
	HostID           int64
	HostDepartmentID int64
	VendorName       string
	VisitorName      string
	VisitorCount     int
	VisitDate        string // YYYY-MM-DD
	StartTime        string // HH:MM
	EndTime          string // HH:MM
	RoomID           int64
	Purpose          string
}

// WalkInInput describes an unscheduled registration at the kiosk.
type WalkInInput struct {
	VendorName   string
	VisitorName  string
	HostID       int64
	VisitorCount int
	Purpose      string
	Signature    []byte
}

var allowedTransitions = map[domain.VisitStatus][]domain.VisitStatus{
	domain.VisitStatusPending:   {domain.VisitStatusArrived, domain.VisitStatusCancelled},
	domain.VisitStatusArrived:   {domain.VisitStatusCompleted, domain.VisitStatusCancelled},
	domain.VisitStatusCompleted: {},
	domain.VisitStatusCancelled: {},
}

func isValidTransition(current, next domain.VisitStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CreateAppointment creates a visit in Pending state. All field violations
// are collected and returned together.
func (s *VisitService) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*domain.Visit, error) {
	v := newFieldValidator()
	v.requireText("vendorName", input.VendorName, "vendor name is required")
	v.requireText("visitorName", input.VisitorName, "visitor name is required")
	v.requireMin("visitorCount", input.VisitorCount, 1, "visitor count must be at least 1")
	v.requireText("visitDate", input.VisitDate, "visit date is required")
	v.requireText("startTime", input.StartTime, "start time is required")
	v.requireText("endTime", input.EndTime, "end time is required")

	var start, end time.Time
	if !v.has("visitDate") && !v.has("startTime") {
		parsed, err := parseVisitTime(input.VisitDate, input.StartTime)
		if err != nil {
			v.add("startTime", "start time is invalid")
		} else {
			start = parsed
		}
	}
	if !v.has("visitDate") && !v.has("endTime") {
		parsed, err := parseVisitTime(input.VisitDate, input.EndTime)
		if err != nil {
			v.add("endTime", "end time is invalid")
		} else {
			end = parsed
		}
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		v.add("endTime", "end time must be after start time")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	visit := &domain.Visit{
		BadgeCode: generateBadgeCode(),
		Visitor: domain.Visitor{
			VendorName:  strings.TrimSpace(input.VendorName),
			ContactName: strings.TrimSpace(input.VisitorName),
		},
		Host:              domain.Host{EmployeeName: s.hostName(ctx, input.HostID)},
		HostID:            input.HostID,
		RoomID:            input.RoomID,
		VisitorCount:      input.VisitorCount,
		Purpose:           strings.TrimSpace(input.Purpose),
		ScheduleStartTime: start,
		ScheduleEndTime:   end,
		Status:            domain.VisitStatusPending,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventVisitCreated,
		VisitID: visit.ID,
		Payload: events.VisitCreatedPayload{
			VendorName:  visit.Visitor.VendorName,
			ContactName: visit.Visitor.ContactName,
			HostName:    visit.Host.EmployeeName,
			Status:      visit.Status,
		},
	})
	return visit, nil
}

// RegisterWalkIn creates a visit directly in Arrived state, bypassing
// Pending. Both schedule times and the entry time default to now.
func (s *VisitService) RegisterWalkIn(ctx context.Context, input WalkInInput) (*domain.Visit, error) {
	v := newFieldValidator()
	v.requireText("vendorName", input.VendorName, "vendor name is required")
	v.requireText("visitorName", input.VisitorName, "visitor name is required")
	v.requireText("purpose", input.Purpose, "purpose is required")
	v.requireMin("visitorCount", input.VisitorCount, 1, "visitor count must be at least 1")
	if err := v.err(); err != nil {
		return nil, err
	}

	now := s.clock()
	visit := &domain.Visit{
		BadgeCode: generateBadgeCode(),
		Visitor: domain.Visitor{
			VendorName:  strings.TrimSpace(input.VendorName),
			ContactName: strings.TrimSpace(input.VisitorName),
		},
		Host:              domain.Host{EmployeeName: s.hostName(ctx, input.HostID)},
		HostID:            input.HostID,
		VisitorCount:      input.VisitorCount,
		Purpose:           strings.TrimSpace(input.Purpose),
		ScheduleStartTime: now,
		ScheduleEndTime:   now,
		ActualEnterTime:   &now,
		Status:            domain.VisitStatusArrived,
	}
	if len(input.Signature) > 0 {
		visit.Signatures.VisitorCheckIn = input.Signature
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventVisitCreated,
		VisitID: visit.ID,
		Payload: events.VisitCreatedPayload{
			VendorName:  visit.Visitor.VendorName,
			ContactName: visit.Visitor.ContactName,
			HostName:    visit.Host.EmployeeName,
			Status:      visit.Status,
			WalkIn:      true,
		},
	})
	return visit, nil
}

// CheckIn records a visitor's arrival. Valid only from Pending; requires both
// signatures. The per-id lock keeps the read-validate-write sequence from
// interleaving with a concurrent transition on the same visit.
func (s *VisitService) CheckIn(ctx context.Context, id int64, visitorSignature, guardSignature []byte) (*domain.Visit, error) {
	if len(visitorSignature) == 0 || len(guardSignature) == 0 {
		return nil, apperrors.NewInvalidSignature("both visitor and guard signatures are required")
	}

	return s.transition(ctx, id, domain.VisitStatusArrived, func(visit *domain.Visit, now time.Time) {
		visit.ActualEnterTime = &now
		visit.Signatures.VisitorCheckIn = visitorSignature
		visit.Signatures.GuardCheckIn = guardSignature
	})
}

// CheckOut records a visitor's departure. Valid only from Arrived; requires
// both signatures.
func (s *VisitService) CheckOut(ctx context.Context, id int64, visitorSignature, guardSignature []byte) (*domain.Visit, error) {
	if len(visitorSignature) == 0 || len(guardSignature) == 0 {
		return nil, apperrors.NewInvalidSignature("both visitor and guard signatures are required")
	}

	return s.transition(ctx, id, domain.VisitStatusCompleted, func(visit *domain.Visit, now time.Time) {
		visit.ActualEndTime = &now
		visit.Signatures.VisitorCheckOut = visitorSignature
		visit.Signatures.GuardCheckOut = guardSignature
	})
}

// Cancel marks the visit cancelled. Valid from Pending or Arrived; timestamps
// are left untouched.
func (s *VisitService) Cancel(ctx context.Context, id int64) (*domain.Visit, error) {
	return s.transition(ctx, id, domain.VisitStatusCancelled, func(*domain.Visit, time.Time) {})
}

// GetVisit fetches a single record.
func (s *VisitService) GetVisit(ctx context.Context, id int64) (*domain.Visit, error) {
	visit, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return visit, nil
}

// ListVisits returns the full record set for the query engine.
func (s *VisitService) ListVisits(ctx context.Context) ([]domain.Visit, error) {
	visits, err := s.visits.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return visits, nil
}

// transition runs a guarded read-validate-write for a single visit. The
// mutate callback applies the transition's side effects; failure leaves prior
// state unmodified since the write is a single atomic record replacement.
func (s *VisitService) transition(ctx context.Context, id int64, next domain.VisitStatus, mutate func(*domain.Visit, time.Time)) (*domain.Visit, error) {
	release, err := s.locker.Acquire(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	defer release()

	visit, err := s.visits.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !isValidTransition(visit.Status, next) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("visit cannot move from %s to %s", visit.Status, next),
			map[string]any{"status": string(visit.Status)},
		)
	}

	oldStatus := visit.Status
	visit.Status = next
	mutate(visit, s.clock())
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    transitionEventType(next),
		VisitID: visit.ID,
		Payload: events.VisitStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
			HostName:  visit.Host.EmployeeName,
		},
	})
	return visit, nil
}

func transitionEventType(next domain.VisitStatus) events.EventType {
	switch next {
	case domain.VisitStatusArrived:
		return events.EventVisitorCheckedIn
	case domain.VisitStatusCompleted:
		return events.EventVisitorCheckedOut
	default:
		return events.EventVisitCancelled
	}
}

func (s *VisitService) hostName(ctx context.Context, hostID int64) string {
	if s.users != nil {
		if host, err := s.users.GetByID(ctx, hostID); err == nil {
			return host.EmployeeName
		}
	}
	return fmt.Sprintf("Host #%d", hostID)
}

func (s *VisitService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func parseVisitTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}

func generateBadgeCode() string {
	return "VIS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
