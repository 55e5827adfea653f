package service

import (
	"context"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"
)

// NotificationView is one grouped notification with its newest
// contributors surfaced for preview.
type NotificationView struct {
	model.Notification
	Preview []uint `json:"preview"`
}

type NotificationService struct {
	stores repository.Stores
}

func NewNotificationService(stores repository.Stores) *NotificationService {
	return &NotificationService{stores: stores}
}

// List returns the actor's notifications, each carrying up to
// NotificationPreviewSize contributor ids, newest first.
func (s *NotificationService) List(ctx context.Context, actorID uint) ([]NotificationView, error) {
	notifications, err := s.stores.Notification.FindByRecipient(actorID)
	if err != nil {
		return nil, err
	}
	views := make([]NotificationView, 0, len(notifications))
	for i := range notifications {
		preview, err := s.stores.Notification.ContributorIDs(
			notifications[i].ID, notifications[i].Type, consts.NotificationPreviewSize)
		if err != nil {
			return nil, err
		}
		views = append(views, NotificationView{
			Notification: notifications[i],
			Preview:      preview,
		})
	}
	return views, nil
}

// MarkSeen flags one of the actor's own notifications as read.
func (s *NotificationService) MarkSeen(ctx context.Context, actorID, notificationID uint) error {
	notification, err := s.stores.Notification.FindByID(notificationID)
	if err != nil {
		return notFoundErr(err, "notification not found")
	}
	if notification.UserID != actorID {
		return NewNotFoundError("notification not found")
	}
	return s.stores.Notification.MarkSeen(notificationID)
}
