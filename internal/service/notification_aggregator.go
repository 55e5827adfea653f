package service

import (
	"errors"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"

	"gorm.io/gorm"
)

// Scope narrows a grouped notification to one galerie and/or frame.
type Scope struct {
	GalerieID *uint
	FrameID   *uint
}

func GalerieScope(galerieID uint) Scope {
	return Scope{GalerieID: &galerieID}
}

func FrameScope(galerieID, frameID uint) Scope {
	return Scope{GalerieID: &galerieID, FrameID: &frameID}
}

// NotificationAggregator keeps a Notification's num equal to the number of
// live contributor join rows. Construct it over a transaction-scoped store
// so its mutations commit with the surrounding cascade.
type NotificationAggregator struct {
	store repository.NotificationStore
}

func NewNotificationAggregator(store repository.NotificationStore) NotificationAggregator {
	return NotificationAggregator{store: store}
}

// Contribute records one more contributing actor or frame. An open
// notification of the same type and scope is incremented; otherwise a new
// one starts at num = 1.
func (a NotificationAggregator) Contribute(typ consts.NotificationType, recipientID uint, scope Scope, contributorID uint) error {
	notification, err := a.store.FindGrouped(recipientID, typ, scope.GalerieID, scope.FrameID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		notification = &model.Notification{
			UserID:    recipientID,
			Type:      typ,
			Num:       1,
			GalerieID: scope.GalerieID,
			FrameID:   scope.FrameID,
		}
		if err := a.store.Create(notification); err != nil {
			return err
		}
		return a.store.AddContributor(notification.ID, typ, contributorID)
	}

	if err := a.store.AddContributor(notification.ID, typ, contributorID); err != nil {
		return err
	}
	return a.store.AdjustNum(notification.ID, 1)
}

// Withdraw removes one contributing actor or frame. A notification down to
// its last contributor is destroyed outright, never left at num = 0.
func (a NotificationAggregator) Withdraw(typ consts.NotificationType, recipientID uint, scope Scope, contributorID uint) error {
	notification, err := a.store.FindGrouped(recipientID, typ, scope.GalerieID, scope.FrameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return a.WithdrawFrom(notification, contributorID)
}

// WithdrawFrom applies the destroy-vs-decrement rule to an already loaded
// notification.
func (a NotificationAggregator) WithdrawFrom(notification *model.Notification, contributorID uint) error {
	if notification.Num <= 1 {
		return a.store.Delete(notification.ID)
	}
	removed, err := a.store.RemoveContributor(notification.ID, notification.Type, contributorID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	return a.store.AdjustNum(notification.ID, -1)
}

// WithdrawFramePosted pulls a deleted frame out of every FRAME_POSTED
// notification it contributed to.
func (a NotificationAggregator) WithdrawFramePosted(frameID uint) error {
	notifications, err := a.store.FindByFramePostedContribution(frameID)
	if err != nil {
		return err
	}
	for i := range notifications {
		if err := a.WithdrawFrom(&notifications[i], frameID); err != nil {
			return err
		}
	}
	return nil
}

// WithdrawSubscriber pulls a departing member out of every USER_SUBSCRIBE
// notification they contributed to, optionally scoped to one galerie.
func (a NotificationAggregator) WithdrawSubscriber(userID uint, galerieID *uint) error {
	notifications, err := a.store.FindBySubscribeContribution(userID, galerieID)
	if err != nil {
		return err
	}
	for i := range notifications {
		if err := a.WithdrawFrom(&notifications[i], userID); err != nil {
			return err
		}
	}
	return nil
}
