package domain

import "time"

// Role is a named capability bundle assigned to a user.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
	RoleGuard Role = "Guard"
)

// KnownRoles lists the assignable roles in display order.
var KnownRoles = []Role{RoleAdmin, RoleUser, RoleGuard}

// IsKnownRole reports whether the tag belongs to the fixed role enumeration.
func IsKnownRole(r Role) bool {
	for _, known := range KnownRoles {
		if known == r {
			return true
		}
	}
	return false
}

// User is an internal employee who may host visitors or operate the kiosk.
type User struct {
	ID           int64
	EmployeeID   string
	EmployeeName string
	Department   string
	Phone        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports membership in the user's role set.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AddRole appends the role if absent. Duplicates are disallowed.
func (u *User) AddRole(role Role) {
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
}

// RemoveRole drops the role if present.
func (u *User) RemoveRole(role Role) {
	filtered := u.Roles[:0]
	for _, r := range u.Roles {
		if r != role {
			filtered = append(filtered, r)
		}
	}
	u.Roles = filtered
}
