package repository

import (
	"galerie-server/internal/consts"
	"galerie-server/internal/model"
)

// NotificationStore persists grouped notifications and their per-type
// contributor join tables. Every mutation that touches Num has a matching
// join-row mutation; keeping the two in step is the aggregator's job.
type NotificationStore interface {
	FindByID(id uint) (*model.Notification, error)
	FindByRecipient(userID uint) ([]model.Notification, error)
	// FindGrouped locates the open notification of typ for the recipient,
	// scoped by galerie and/or frame when the type calls for it.
	FindGrouped(userID uint, typ consts.NotificationType, galerieID, frameID *uint) (*model.Notification, error)
	Create(notification *model.Notification) error
	Delete(id uint) error
	AdjustNum(id uint, delta int64) error
	MarkSeen(id uint) error

	AddContributor(notificationID uint, typ consts.NotificationType, contributorID uint) error
	// RemoveContributor deletes exactly one matching join row. It reports
	// whether a row was actually removed.
	RemoveContributor(notificationID uint, typ consts.NotificationType, contributorID uint) (bool, error)
	ContributorIDs(notificationID uint, typ consts.NotificationType, limit int) ([]uint, error)

	// Cascade lookups: notifications containing a given contributor.
	FindByFramePostedContribution(frameID uint) ([]model.Notification, error)
	FindBySubscribeContribution(userID uint, galerieID *uint) ([]model.Notification, error)

	// Cascade deletions.
	DeleteByFrameScope(frameID uint) error
	DeleteByRecipient(userID uint) error
	DeleteByRecipientAndGalerie(userID, galerieID uint, types []consts.NotificationType) error
	DeleteByGalerie(galerieID uint, frameIDs []uint) error
}
