package domain

import (
	"fmt"
	"time"
)

// VisitStatus enumerates lifecycle states for visits.
type VisitStatus string

const (
	VisitStatusPending   VisitStatus = "PENDING"
	VisitStatusArrived   VisitStatus = "ARRIVED"
	VisitStatusCompleted VisitStatus = "COMPLETED"
	VisitStatusCancelled VisitStatus = "CANCELLED"
)

// ParseVisitStatus validates a stored status label. Records read from storage
// must carry exactly one of the four known tags.
func ParseVisitStatus(raw string) (VisitStatus, error) {
	switch VisitStatus(raw) {
	case VisitStatusPending, VisitStatusArrived, VisitStatusCompleted, VisitStatusCancelled:
		return VisitStatus(raw), nil
	}
	return "", fmt.Errorf("unknown visit status %q", raw)
}

// IsTerminal reports whether no further transition is allowed.
func (s VisitStatus) IsTerminal() bool {
	return s == VisitStatusCompleted || s == VisitStatusCancelled
}

// DisplayLabel returns the legacy kiosk label used on exports.
func (s VisitStatus) DisplayLabel() string {
	switch s {
	case VisitStatusPending:
		return "未結案"
	case VisitStatusArrived:
		return "抵達"
	case VisitStatusCompleted:
		return "完成"
	case VisitStatusCancelled:
		return "取消"
	}
	return string(s)
}

// Visitor identifies the visiting party. Set at creation, immutable after.
type Visitor struct {
	VendorName  string
	ContactName string
}

// Host is the internal employee receiving the visitor.
type Host struct {
	EmployeeName string
}

// SignatureSet holds up to four signature image blobs, populated as lifecycle
// transitions occur. Entries are never removed.
type SignatureSet struct {
	VisitorCheckIn  []byte
	GuardCheckIn    []byte
	VisitorCheckOut []byte
	GuardCheckOut   []byte
}

// Visit is the aggregate for a scheduled or walk-in visitor appointment.
type Visit struct {
	ID                int64
	BadgeCode         string
	Visitor           Visitor
	Host              Host
	HostID            int64
	RoomID            int64
	VisitorCount      int
	Purpose           string
	ScheduleStartTime time.Time
	ScheduleEndTime   time.Time
	ActualEnterTime   *time.Time
	ActualEndTime     *time.Time
	Status            VisitStatus
	Signatures        SignatureSet
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
