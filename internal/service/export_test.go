package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-entry/visitor-service/internal/domain"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

func exportVisit() domain.Visit {
	enter := time.Date(2024, 5, 15, 9, 5, 0, 0, time.Local)
	end := time.Date(2024, 5, 15, 11, 0, 0, 0, time.Local)
	return domain.Visit{
		ID:                42,
		Visitor:           domain.Visitor{VendorName: "TechCorp", ContactName: "John Doe"},
		Host:              domain.Host{EmployeeName: "Alice Smith"},
		ScheduleStartTime: time.Date(2024, 5, 15, 9, 0, 0, 0, time.Local),
		ScheduleEndTime:   time.Date(2024, 5, 15, 10, 0, 0, 0, time.Local),
		ActualEnterTime:   &enter,
		ActualEndTime:     &end,
		Status:            domain.VisitStatusCompleted,
	}
}

func TestExportEmptySetRejected(t *testing.T) {
	_, err := NewExporter(false).Export(nil)

	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "NO_DATA", de.Code)
}

func TestExportRowShape(t *testing.T) {
	out, err := NewExporter(false).Export([]domain.Visit{exportVisit()})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	header := strings.Split(lines[0], ",")
	row := strings.Split(lines[1], ",")
	assert.Len(t, header, 9)
	assert.Len(t, row, len(header))

	// every data cell is double-quoted
	for _, cell := range row {
		assert.True(t, strings.HasPrefix(cell, `"`), "cell %q not quoted", cell)
		assert.True(t, strings.HasSuffix(cell, `"`), "cell %q not quoted", cell)
	}

	assert.Equal(t, `"42"`, row[0])
	assert.Equal(t, `"2024/05/15"`, row[1])
	assert.Equal(t, `"09:00"`, row[2])
	assert.Equal(t, `"TechCorp"`, row[3])
	assert.Equal(t, `"完成"`, row[6])
	assert.Equal(t, `"2024/05/15 09:05:00"`, row[7])
}

func TestExportBlankTimesForPending(t *testing.T) {
	visit := exportVisit()
	visit.Status = domain.VisitStatusPending
	visit.ActualEnterTime = nil
	visit.ActualEndTime = nil

	out, err := NewExporter(false).Export([]domain.Visit{visit})
	require.NoError(t, err)

	row := strings.Split(strings.Split(out, "\n")[1], ",")
	assert.Equal(t, `""`, row[7])
	assert.Equal(t, `""`, row[8])
	assert.Equal(t, `"未結案"`, row[6])
}

func TestExportQuotesAreDoubled(t *testing.T) {
	visit := exportVisit()
	visit.Visitor.VendorName = `Tech "Corp"`

	out, err := NewExporter(false).Export([]domain.Visit{visit})
	require.NoError(t, err)
	assert.Contains(t, out, `"Tech ""Corp"""`)
}

func TestExportBOMPrefix(t *testing.T) {
	with, err := NewExporter(true).Export([]domain.Visit{exportVisit()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(with, utf8BOM))

	without, err := NewExporter(false).Export([]domain.Visit{exportVisit()})
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(without, utf8BOM))
	assert.Equal(t, without, strings.TrimPrefix(with, utf8BOM))
}

func TestExportFilenames(t *testing.T) {
	day := time.Date(2024, 5, 15, 16, 30, 0, 0, time.Local)
	assert.Equal(t, "visitor_report_2024-05-15.csv", ReportFilename(day))
	assert.Equal(t, "appointments_2024-05-15.csv", HistoryFilename(day))
}
