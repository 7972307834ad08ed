package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smart-entry/visitor-service/internal/domain"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// Capability is a labeled action a role is allowed to perform.
type Capability string

const (
	CapViewAllVisits      Capability = "View all appointments"
	CapViewOwnVisits      Capability = "View own appointments"
	CapViewTodayVisits    Capability = "View today appointments"
	CapCreateAppointments Capability = "Create appointments"
	CapEditAppointments   Capability = "Edit appointments"
	CapCancelAppointments Capability = "Cancel appointments"
	CapViewReports        Capability = "View reports"
	CapExportData         Capability = "Export data"
	CapManageUsers        Capability = "Manage users"
	CapManageRoles        Capability = "Manage roles"
	CapCheckInVisitors    Capability = "Check-in visitors"
	CapCheckOutVisitors   Capability = "Check-out visitors"
	CapRegisterWalkIns    Capability = "Register walk-ins"
)

// rolePermissions is the static role → capability table consulted by
// navigation and batch-operation gating.
var rolePermissions = map[domain.Role][]Capability{
	domain.RoleAdmin: {
		CapViewAllVisits,
		CapCreateAppointments,
		CapEditAppointments,
		CapCancelAppointments,
		CapViewReports,
		CapExportData,
		CapManageUsers,
		CapManageRoles,
	},
	domain.RoleUser: {
		CapViewOwnVisits,
		CapCreateAppointments,
		CapViewReports,
	},
	domain.RoleGuard: {
		CapViewTodayVisits,
		CapCheckInVisitors,
		CapCheckOutVisitors,
		CapRegisterWalkIns,
	},
}

// Capabilities returns the ordered capability list for a role.
func Capabilities(role domain.Role) []Capability {
	caps := rolePermissions[role]
	return append([]Capability(nil), caps...)
}

// HasCapability is a pure lookup into the permission table.
func HasCapability(role domain.Role, capability Capability) bool {
	for _, c := range rolePermissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// RequireCapability gates a route on any of the principal's roles granting
// the capability.
func RequireCapability(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, role := range principal.Roles {
			if HasCapability(role, capability) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
