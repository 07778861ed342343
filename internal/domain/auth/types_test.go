package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleElevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.True(t, RoleSubadmin.Elevated())
	assert.False(t, RoleNone.Elevated())
	assert.False(t, Role("viewer").Elevated())
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleSubadmin, ParseRole("subadmin"))
	assert.Equal(t, RoleNone, ParseRole(""))
	assert.Equal(t, RoleNone, ParseRole("superuser"))
}
