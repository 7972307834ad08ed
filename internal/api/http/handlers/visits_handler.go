package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smart-entry/visitor-service/internal/api/dto"
	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/service"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// VisitsHandler manages visit lifecycle and kiosk queue endpoints.
type VisitsHandler struct {
	visits *service.VisitService
}

// NewVisitsHandler constructs handler.
func NewVisitsHandler(visits *service.VisitService) *VisitsHandler {
	return &VisitsHandler{visits: visits}
}

// ListToday GET /visits/today — the kiosk dashboard feed.
func (h *VisitsHandler) ListToday(c *fiber.Ctx) error {
	visits, err := h.visits.ListVisits(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitResponses(visits, false)})
}

// GetVisit GET /visits/:id — detail view including stored signatures.
func (h *VisitsHandler) GetVisit(c *fiber.Ctx) error {
	id, err := parseVisitID(c)
	if err != nil {
		return err
	}
	visit, err := h.visits.GetVisit(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitResponse(visit, true)})
}

// CreateVisit POST /visits — scheduled appointment.
func (h *VisitsHandler) CreateVisit(c *fiber.Ctx) error {
	var req dto.CreateVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	visit, err := h.visits.CreateAppointment(c.Context(), service.CreateAppointmentInput{
		HostID:           req.HostID,
		HostDepartmentID: req.HostDepartmentID,
		VendorName:       req.VendorName,
		VisitorName:      req.VisitorName,
		VisitorCount:     req.VisitorCount,
		VisitDate:        req.VisitDate,
		StartTime:        req.VisitTimeStart,
		EndTime:          req.VisitTimeEnd,
		RoomID:           req.RoomID,
		Purpose:          req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": visitResponse(visit, false)})
}

// RegisterWalkIn POST /visits/walkin.
func (h *VisitsHandler) RegisterWalkIn(c *fiber.Ctx) error {
	var req dto.WalkInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	visit, err := h.visits.RegisterWalkIn(c.Context(), service.WalkInInput{
		VendorName:   req.VendorName,
		VisitorName:  req.VisitorName,
		HostID:       req.HostID,
		VisitorCount: req.VisitorCount,
		Purpose:      req.Purpose,
		Signature:    []byte(req.Signature),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": visitResponse(visit, false)})
}

// CheckIn PATCH /visits/:id/checkin.
func (h *VisitsHandler) CheckIn(c *fiber.Ctx) error {
	return h.signedTransition(c, h.visits.CheckIn)
}

// CheckOut PATCH /visits/:id/checkout.
func (h *VisitsHandler) CheckOut(c *fiber.Ctx) error {
	return h.signedTransition(c, h.visits.CheckOut)
}

// Cancel PATCH /visits/:id/cancel.
func (h *VisitsHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseVisitID(c)
	if err != nil {
		return err
	}
	visit, err := h.visits.Cancel(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitResponse(visit, false)})
}

// CheckInQueue GET /queues/checkin.
func (h *VisitsHandler) CheckInQueue(c *fiber.Ctx) error {
	visits, err := h.visits.ListVisits(c.Context())
	if err != nil {
		return err
	}
	queue := service.CheckInQueue(visits, time.Now())
	return c.JSON(fiber.Map{"data": queueResponse(queue)})
}

// CheckOutQueue GET /queues/checkout.
func (h *VisitsHandler) CheckOutQueue(c *fiber.Ctx) error {
	visits, err := h.visits.ListVisits(c.Context())
	if err != nil {
		return err
	}
	queue := service.CheckOutQueue(visits)
	return c.JSON(fiber.Map{"data": queueResponse(queue)})
}

// History GET /queues/history?date=YYYY-MM-DD.
func (h *VisitsHandler) History(c *fiber.Ctx) error {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return apperrors.NewValidationError("invalid date", map[string]any{"date": "expected YYYY-MM-DD"})
		}
		day = parsed
	}
	visits, err := h.visits.ListVisits(c.Context())
	if err != nil {
		return err
	}
	history := service.History(visits, day)
	return c.JSON(fiber.Map{"data": visitResponses(history, false)})
}

type signedTransitionFunc func(ctx context.Context, id int64, visitorSignature, guardSignature []byte) (*domain.Visit, error)

func (h *VisitsHandler) signedTransition(c *fiber.Ctx, transition signedTransitionFunc) error {
	id, err := parseVisitID(c)
	if err != nil {
		return err
	}
	var req dto.SignTransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	visit, err := transition(c.Context(), id, []byte(req.VisitorSignature), []byte(req.GuardSignature))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitResponse(visit, false)})
}

func parseVisitID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid visit id", nil)
	}
	return id, nil
}

func visitResponse(visit *domain.Visit, includeSignatures bool) dto.VisitResponse {
	resp := dto.VisitResponse{
		ID:                visit.ID,
		BadgeCode:         visit.BadgeCode,
		Visitor:           dto.VisitorPayload{VendorName: visit.Visitor.VendorName, ContactName: visit.Visitor.ContactName},
		Host:              dto.HostPayload{EmployeeName: visit.Host.EmployeeName},
		VisitorCount:      visit.VisitorCount,
		Purpose:           visit.Purpose,
		ScheduleStartTime: visit.ScheduleStartTime,
		ScheduleEndTime:   visit.ScheduleEndTime,
		ActualEnterTime:   visit.ActualEnterTime,
		ActualEndTime:     visit.ActualEndTime,
		Status:            visit.Status,
		StatusLabel:       visit.Status.DisplayLabel(),
	}
	if includeSignatures {
		resp.Signatures = &dto.SignaturesPayload{
			VisitorCheckIn:  string(visit.Signatures.VisitorCheckIn),
			GuardCheckIn:    string(visit.Signatures.GuardCheckIn),
			VisitorCheckOut: string(visit.Signatures.VisitorCheckOut),
			GuardCheckOut:   string(visit.Signatures.GuardCheckOut),
		}
	}
	return resp
}

func visitResponses(visits []domain.Visit, includeSignatures bool) []dto.VisitResponse {
	items := make([]dto.VisitResponse, 0, len(visits))
	for i := range visits {
		items = append(items, visitResponse(&visits[i], includeSignatures))
	}
	return items
}

func queueResponse(queue service.VisitQueue) dto.QueueResponse {
	return dto.QueueResponse{
		AM: visitResponses(queue.AM, false),
		PM: visitResponses(queue.PM, false),
	}
}
