package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisitStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "ARRIVED", "COMPLETED", "CANCELLED"} {
		status, err := ParseVisitStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, VisitStatus(raw), status)
	}

	_, err := ParseVisitStatus("pending")
	assert.Error(t, err)
	_, err = ParseVisitStatus("DELETED")
	assert.Error(t, err)
}

func TestVisitStatusIsTerminal(t *testing.T) {
	assert.False(t, VisitStatusPending.IsTerminal())
	assert.False(t, VisitStatusArrived.IsTerminal())
	assert.True(t, VisitStatusCompleted.IsTerminal())
	assert.True(t, VisitStatusCancelled.IsTerminal())
}

func TestVisitStatusDisplayLabel(t *testing.T) {
	assert.Equal(t, "未結案", VisitStatusPending.DisplayLabel())
	assert.Equal(t, "抵達", VisitStatusArrived.DisplayLabel())
	assert.Equal(t, "完成", VisitStatusCompleted.DisplayLabel())
	assert.Equal(t, "取消", VisitStatusCancelled.DisplayLabel())
}
