package dto

import (
	"time"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// CreateVisitRequest payload for a scheduled appointment.
type CreateVisitRequest struct {
	HostID           int64  `json:"hostId"`
	HostDepartmentID int64  `json:"hostDepartmentId"`
	VendorName       string `json:"vendorName"`
	VisitorName      string `json:"visitorName"`
	VisitorCount     int    `json:"visitorCount"`
	VisitDate        string `json:"visitDate"`
	VisitTimeStart   string `json:"visitTimeStart"`
	VisitTimeEnd     string `json:"visitTimeEnd"`
	RoomID           int64  `json:"roomId"`
	Purpose          string `json:"purpose"`
}

// WalkInRequest payload for kiosk registration.
type WalkInRequest struct {
	VendorName   string `json:"vendorName"`
	VisitorName  string `json:"visitorName"`
	HostID       int64  `json:"hostId"`
	VisitorCount int    `json:"visitorCount"`
	Purpose      string `json:"purpose"`
	Signature    string `json:"signature"`
}

// SignTransitionRequest carries the two signature blobs (data URLs) captured
// at the kiosk for check-in or check-out.
type SignTransitionRequest struct {
	VisitorSignature string `json:"visitorSignature"`
	GuardSignature   string `json:"guardSignature"`
}

// VisitorPayload identifies the visiting party.
type VisitorPayload struct {
	VendorName  string `json:"vendorName"`
	ContactName string `json:"contactName"`
}

// HostPayload identifies the internal contact. The JSON key is "user" for
// compatibility with the kiosk front-end.
type HostPayload struct {
	EmployeeName string `json:"employeeName"`
}

// SignaturesPayload echoes which signature blobs are stored.
type SignaturesPayload struct {
	VisitorCheckIn  string `json:"visitorCheckIn,omitempty"`
	GuardCheckIn    string `json:"guardCheckIn,omitempty"`
	VisitorCheckOut string `json:"visitorCheckOut,omitempty"`
	GuardCheckOut   string `json:"guardCheckOut,omitempty"`
}

// VisitResponse is the wire form of a visit record.
type VisitResponse struct {
	ID                int64              `json:"id"`
	BadgeCode         string             `json:"badgeCode"`
	Visitor           VisitorPayload     `json:"visitor"`
	Host              HostPayload        `json:"user"`
	VisitorCount      int                `json:"visitorCount"`
	Purpose           string             `json:"purpose,omitempty"`
	ScheduleStartTime time.Time          `json:"scheduleStartTime"`
	ScheduleEndTime   time.Time          `json:"scheduleEndTime"`
	ActualEnterTime   *time.Time         `json:"actualEnterTime"`
	ActualEndTime     *time.Time         `json:"actualEndTime"`
	Status            domain.VisitStatus `json:"status"`
	StatusLabel       string             `json:"statusLabel"`
	Signatures        *SignaturesPayload `json:"signatures,omitempty"`
}

// QueueResponse is an AM/PM-bucketed kiosk queue.
type QueueResponse struct {
	AM []VisitResponse `json:"am"`
	PM []VisitResponse `json:"pm"`
}

// ReportResponse is one page of the admin report.
type ReportResponse struct {
	Items      []VisitResponse `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
}
