package teams

import (
	"testing"

	"github.com/shootdeck/backend/internal/models"
)

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role, min string
		want      bool
	}{
		{models.TeamRoleOwner, models.TeamRoleOwner, true},
		{models.TeamRoleOwner, models.TeamRoleAdmin, true},
		{models.TeamRoleOwner, models.TeamRoleMember, true},
		{models.TeamRoleAdmin, models.TeamRoleOwner, false},
		{models.TeamRoleAdmin, models.TeamRoleAdmin, true},
		{models.TeamRoleAdmin, models.TeamRoleMember, true},
		{models.TeamRoleMember, models.TeamRoleAdmin, false},
		{models.TeamRoleMember, models.TeamRoleMember, true},
		{"", models.TeamRoleMember, false},
		{"superuser", models.TeamRoleMember, false},
	}
	for _, tc := range cases {
		if got := RoleAtLeast(tc.role, tc.min); got != tc.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tc.role, tc.min, got, tc.want)
		}
	}
}

func TestCanManageResources(t *testing.T) {
	if !CanManageResources(models.TeamRoleOwner) || !CanManageResources(models.TeamRoleAdmin) {
		t.Error("owner and admin must manage resources")
	}
	if CanManageResources(models.TeamRoleMember) {
		t.Error("member must not manage resources")
	}
}

func TestCanActOnMember(t *testing.T) {
	cases := []struct {
		actor, target string
		want          bool
	}{
		{models.TeamRoleOwner, models.TeamRoleOwner, true},
		{models.TeamRoleOwner, models.TeamRoleAdmin, true},
		{models.TeamRoleOwner, models.TeamRoleMember, true},
		{models.TeamRoleAdmin, models.TeamRoleMember, true},
		{models.TeamRoleAdmin, models.TeamRoleAdmin, false},
		{models.TeamRoleAdmin, models.TeamRoleOwner, false},
		{models.TeamRoleMember, models.TeamRoleMember, false},
	}
	for _, tc := range cases {
		if got := CanActOnMember(tc.actor, tc.target); got != tc.want {
			t.Errorf("CanActOnMember(%q, %q) = %v, want %v", tc.actor, tc.target, got, tc.want)
		}
	}
}

func TestCanGrantRole(t *testing.T) {
	cases := []struct {
		actor, newRole string
		want           bool
	}{
		{models.TeamRoleOwner, models.TeamRoleOwner, true},
		{models.TeamRoleOwner, models.TeamRoleAdmin, true},
		{models.TeamRoleOwner, models.TeamRoleMember, true},
		{models.TeamRoleAdmin, models.TeamRoleOwner, false},
		{models.TeamRoleAdmin, models.TeamRoleAdmin, false},
		{models.TeamRoleAdmin, models.TeamRoleMember, true},
		{models.TeamRoleMember, models.TeamRoleMember, false},
		{models.TeamRoleOwner, "superuser", false},
	}
	for _, tc := range cases {
		if got := CanGrantRole(tc.actor, tc.newRole); got != tc.want {
			t.Errorf("CanGrantRole(%q, %q) = %v, want %v", tc.actor, tc.newRole, got, tc.want)
		}
	}
}
