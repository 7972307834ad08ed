package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/smart-entry/visitor-service/internal/domain"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// utf8BOM keeps non-ASCII text intact when the export is opened in
// spreadsheet tools.
const utf8BOM = "\uFEFF"

var exportHeaders = []string{"ID", "日期", "時段", "單位", "訪客", "接待人", "狀態", "進入時間", "離開時間"}

// Exporter serializes filtered record sets into downloadable CSV reports.
type Exporter struct {
	includeBOM bool
}

// NewExporter constructs an exporter. includeBOM targets spreadsheet
// consumers; machine-only consumers can turn it off.
func NewExporter(includeBOM bool) *Exporter {
	return &Exporter{includeBOM: includeBOM}
}

// Export renders the records as CSV text: one header row plus one row per
// record, every data cell double-quoted. An empty set is rejected with
// NO_DATA rather than producing a header-only file.
func (e *Exporter) Export(records []domain.Visit) (string, error) {
	if len(records) == 0 {
		return "", apperrors.NewNoData("no records to export")
	}

	var b strings.Builder
	if e.includeBOM {
		b.WriteString(utf8BOM)
	}
	b.WriteString(strings.Join(exportHeaders, ","))

	for _, visit := range records {
		cells := []string{
			fmt.Sprintf("%d", visit.ID),
			visit.ScheduleStartTime.Format("2006/01/02"),
			visit.ScheduleStartTime.Format("15:04"),
			visit.Visitor.VendorName,
			visit.Visitor.ContactName,
			visit.Host.EmployeeName,
			visit.Status.DisplayLabel(),
			formatOptionalTime(visit.ActualEnterTime),
			formatOptionalTime(visit.ActualEndTime),
		}
		b.WriteByte('\n')
		b.WriteString(quoteRow(cells))
	}
	return b.String(), nil
}

// ReportFilename suggests the download name for an admin report export.
func ReportFilename(day time.Time) string {
	return fmt.Sprintf("visitor_report_%s.csv", day.Format("2006-01-02"))
}

// HistoryFilename suggests the download name for a kiosk history export.
func HistoryFilename(selectedDay time.Time) string {
	return fmt.Sprintf("appointments_%s.csv", selectedDay.Format("2006-01-02"))
}

func quoteRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006/01/02 15:04:05")
}
