package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smart-entry/visitor-service/internal/api/dto"
	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/service"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// ReportsHandler serves the admin report search and CSV export.
type ReportsHandler struct {
	visits   *service.VisitService
	exporter *service.Exporter
}

// NewReportsHandler constructs handler.
func NewReportsHandler(visits *service.VisitService, exporter *service.Exporter) *ReportsHandler {
	return &ReportsHandler{visits: visits, exporter: exporter}
}

// Search GET /reports/visits?search=&status=&from=&to=&page=.
func (h *ReportsHandler) Search(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}
	visits, err := h.visits.ListVisits(c.Context())
	if err != nil {
		return err
	}

	filtered := service.ReportSearch(visits, filter)
	page := service.Paginate(filtered, c.QueryInt("page", 1))
	return c.JSON(fiber.Map{"data": dto.ReportResponse{
		Items:      visitResponses(page.Items, false),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}})
}

// Export GET /reports/visits/export — same filter surface, CSV attachment.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}
	visits, err := h.visits.ListVisits(c.Context())
	if err != nil {
		return err
	}

	csv, err := h.exporter.Export(service.ReportSearch(visits, filter))
	if err != nil {
		return err
	}

	filename := service.ReportFilename(time.Now())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(csv)
}

func parseReportFilter(c *fiber.Ctx) (service.ReportFilter, error) {
	filter := service.ReportFilter{SearchText: c.Query("search")}

	if raw := c.Query("status"); raw != "" && raw != "all" {
		status, err := domain.ParseVisitStatus(raw)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid date", map[string]any{"from": "expected YYYY-MM-DD"})
		}
		filter.DateFrom = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid date", map[string]any{"to": "expected YYYY-MM-DD"})
		}
		filter.DateTo = &parsed
	}
	return filter, nil
}
