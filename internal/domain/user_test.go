package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownRole(t *testing.T) {
	assert.True(t, IsKnownRole(RoleAdmin))
	assert.True(t, IsKnownRole(RoleUser))
	assert.True(t, IsKnownRole(RoleGuard))
	assert.False(t, IsKnownRole(Role("admin")))
	assert.False(t, IsKnownRole(Role("")))
}

func TestUserRoleSetSemantics(t *testing.T) {
	user := User{Roles: []Role{RoleUser}}

	user.AddRole(RoleAdmin)
	assert.Equal(t, []Role{RoleUser, RoleAdmin}, user.Roles)

	// adding a held role is a no-op
	user.AddRole(RoleAdmin)
	assert.Len(t, user.Roles, 2)

	user.RemoveRole(RoleUser)
	assert.Equal(t, []Role{RoleAdmin}, user.Roles)

	// removing an absent role is a no-op
	user.RemoveRole(RoleGuard)
	assert.Equal(t, []Role{RoleAdmin}, user.Roles)

	assert.True(t, user.HasRole(RoleAdmin))
	assert.False(t, user.HasRole(RoleUser))
}
