package service

import "galerie-server/internal/consts"

// galerieRoleRank orders galerie roles for policy checks. The creator is
// never a valid target of any action.
func galerieRoleRank(role consts.GalerieRole) int {
	switch role {
	case consts.GalerieRoleCreator:
		return 3
	case consts.GalerieRoleAdmin:
		return 2
	case consts.GalerieRoleModerator:
		return 1
	default:
		return 0
	}
}

// CanRemove reports whether a member with actorRole may remove a member
// with targetRole from a galerie. Moderators may remove plain users only;
// admins may also remove moderators; only the creator may remove an admin.
func CanRemove(actorRole, targetRole consts.GalerieRole) bool {
	if targetRole == consts.GalerieRoleCreator {
		return false
	}
	return galerieRoleRank(actorRole) > galerieRoleRank(targetRole)
}

// CanBlacklist follows the same ordering as CanRemove: an admin may not
// black-list another admin, only the creator can.
func CanBlacklist(actorRole, targetRole consts.GalerieRole) bool {
	return CanRemove(actorRole, targetRole)
}

// CanChangeRole reports whether actorRole may change targetRole. The
// creator role itself can neither be granted nor taken away.
func CanChangeRole(actorRole, targetRole consts.GalerieRole) bool {
	if targetRole == consts.GalerieRoleCreator {
		return false
	}
	return galerieRoleRank(actorRole) > galerieRoleRank(targetRole) &&
		galerieRoleRank(actorRole) >= galerieRoleRank(consts.GalerieRoleAdmin)
}

// CanInvite reports whether a member may create invitations for a galerie.
func CanInvite(actorRole consts.GalerieRole) bool {
	return galerieRoleRank(actorRole) >= galerieRoleRank(consts.GalerieRoleAdmin)
}
