package consts

// Role is the account-level role of a user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// GalerieRole is the role a user holds inside one galerie.
type GalerieRole string

const (
	GalerieRoleCreator   GalerieRole = "creator"
	GalerieRoleAdmin     GalerieRole = "admin"
	GalerieRoleModerator GalerieRole = "moderator"
	GalerieRoleUser      GalerieRole = "user"
)

// NotificationType identifies a grouped notification.
type NotificationType string

const (
	NotificationBetaKeyUsed       NotificationType = "BETA_KEY_USED"
	NotificationFrameLiked        NotificationType = "FRAME_LIKED"
	NotificationFramePosted       NotificationType = "FRAME_POSTED"
	NotificationUserSubscribe     NotificationType = "USER_SUBSCRIBE"
	NotificationRoleChange        NotificationType = "ROLE_CHANGE"
	NotificationGalerieRoleChange NotificationType = "GALERIE_ROLE_CHANGE"
)

// NotificationPreviewSize bounds how many contributors a grouped
// notification surfaces, newest first. Older join rows are retained for
// counting only.
const NotificationPreviewSize = 4
