package events

import (
	"time"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVisitCreated      EventType = "visit_created"
	EventVisitorCheckedIn  EventType = "visitor_checked_in"
	EventVisitorCheckedOut EventType = "visitor_checked_out"
	EventVisitCancelled    EventType = "visit_cancelled"
	EventRolesChanged      EventType = "roles_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	VisitID   int64       `json:"visit_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// VisitCreatedPayload payload.
type VisitCreatedPayload struct {
	VendorName  string             `json:"vendor_name"`
	ContactName string             `json:"contact_name"`
	HostName    string             `json:"host_name"`
	Status      domain.VisitStatus `json:"status"`
	WalkIn      bool               `json:"walk_in"`
}

// VisitStatusChangedPayload payload for check-in/out and cancellation.
type VisitStatusChangedPayload struct {
	OldStatus domain.VisitStatus `json:"old_status"`
	NewStatus domain.VisitStatus `json:"new_status"`
	HostName  string             `json:"host_name"`
}

// RolesChangedPayload payload.
type RolesChangedPayload struct {
	UserIDs []int64     `json:"user_ids"`
	Role    domain.Role `json:"role"`
	Added   bool        `json:"added"`
}
