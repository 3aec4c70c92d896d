package teams

import (
	"github.com/shootdeck/backend/internal/models"
)

// Role ranks: owner > admin > member. Unknown roles rank below member.
var roleRank = map[string]int{
	models.TeamRoleOwner:  3,
	models.TeamRoleAdmin:  2,
	models.TeamRoleMember: 1,
}

// RoleAtLeast reports whether role meets the minimum required role.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// CanManageResources reports whether the role may create, update or delete
// team-owned resources (shoots, catalogs, participants, references).
func CanManageResources(role string) bool {
	return RoleAtLeast(role, models.TeamRoleAdmin)
}

// CanActOnMember reports whether an actor role may change or remove a member
// with the target role. Owners may act on anyone; admins only on plain
// members, never on admins or owners.
func CanActOnMember(actorRole, targetRole string) bool {
	switch actorRole {
	case models.TeamRoleOwner:
		return true
	case models.TeamRoleAdmin:
		return targetRole == models.TeamRoleMember
	}
	return false
}

// CanGrantRole reports whether an actor may assign newRole. Only owners hand
// out owner or admin.
func CanGrantRole(actorRole, newRole string) bool {
	if !models.ValidTeamRole(newRole) {
		return false
	}
	if newRole == models.TeamRoleMember {
		return RoleAtLeast(actorRole, models.TeamRoleAdmin)
	}
	return actorRole == models.TeamRoleOwner
}
