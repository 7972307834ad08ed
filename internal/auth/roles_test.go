package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smart-entry/visitor-service/internal/domain"
)

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability(domain.RoleAdmin, CapManageRoles))
	assert.True(t, HasCapability(domain.RoleAdmin, CapExportData))
	assert.False(t, HasCapability(domain.RoleAdmin, CapCheckInVisitors))

	assert.True(t, HasCapability(domain.RoleUser, CapCreateAppointments))
	assert.False(t, HasCapability(domain.RoleUser, CapManageUsers))
	assert.False(t, HasCapability(domain.RoleUser, CapViewAllVisits))

	assert.True(t, HasCapability(domain.RoleGuard, CapRegisterWalkIns))
	assert.True(t, HasCapability(domain.RoleGuard, CapCheckOutVisitors))
	assert.False(t, HasCapability(domain.RoleGuard, CapViewReports))

	assert.False(t, HasCapability(domain.Role("superuser"), CapViewReports))
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	caps := Capabilities(domain.RoleGuard)
	assert.Equal(t, []Capability{
		CapViewTodayVisits,
		CapCheckInVisitors,
		CapCheckOutVisitors,
		CapRegisterWalkIns,
	}, caps)

	caps[0] = Capability("tampered")
	assert.Equal(t, CapViewTodayVisits, Capabilities(domain.RoleGuard)[0])

	assert.Empty(t, Capabilities(domain.Role("superuser")))
}
