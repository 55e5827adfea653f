package repository

import (
	"fmt"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationStore {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) FindByRecipient(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_id = ?", userID).Order("updated_at desc").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) FindGrouped(userID uint, typ consts.NotificationType, galerieID, frameID *uint) (*model.Notification, error) {
	query := r.db.Where("user_id = ? AND type = ?", userID, typ)
	if galerieID != nil {
		query = query.Where("galerie_id = ?", *galerieID)
	}
	if frameID != nil {
		query = query.Where("frame_id = ?", *frameID)
	}
	var notification model.Notification
	if err := query.First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepository) Delete(id uint) error {
	if err := r.deleteJoinRows([]uint{id}); err != nil {
		return err
	}
	return r.db.Delete(&model.Notification{}, id).Error
}

func (r *NotificationRepository) AdjustNum(id uint, delta int64) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).
		UpdateColumn("num", gorm.Expr("num + ?", delta)).Error
}

func (r *NotificationRepository) MarkSeen(id uint) error {
	return r.db.Model(&model.Notification{}).Where("id = ?", id).
		Update("seen", true).Error
}

func (r *NotificationRepository) AddContributor(notificationID uint, typ consts.NotificationType, contributorID uint) error {
	switch typ {
	case consts.NotificationFrameLiked:
		return r.db.Create(&model.NotificationFrameLiked{
			NotificationID: notificationID, UserID: contributorID,
		}).Error
	case consts.NotificationFramePosted:
		return r.db.Create(&model.NotificationFramePosted{
			NotificationID: notificationID, FrameID: contributorID,
		}).Error
	case consts.NotificationUserSubscribe:
		return r.db.Create(&model.NotificationUserSubscribe{
			NotificationID: notificationID, UserID: contributorID,
		}).Error
	case consts.NotificationBetaKeyUsed:
		return r.db.Create(&model.NotificationBetaKeyUsed{
			NotificationID: notificationID, BetaKeyID: contributorID,
		}).Error
	default:
		return fmt.Errorf("notification type %q has no contributor table", typ)
	}
}

func (r *NotificationRepository) RemoveContributor(notificationID uint, typ consts.NotificationType, contributorID uint) (bool, error) {
	switch typ {
	case consts.NotificationFrameLiked:
		var row model.NotificationFrameLiked
		return r.removeOne(&row,
			r.db.Where("notification_id = ? AND user_id = ?", notificationID, contributorID))
	case consts.NotificationFramePosted:
		var row model.NotificationFramePosted
		return r.removeOne(&row,
			r.db.Where("notification_id = ? AND frame_id = ?", notificationID, contributorID))
	case consts.NotificationUserSubscribe:
		var row model.NotificationUserSubscribe
		return r.removeOne(&row,
			r.db.Where("notification_id = ? AND user_id = ?", notificationID, contributorID))
	case consts.NotificationBetaKeyUsed:
		var row model.NotificationBetaKeyUsed
		return r.removeOne(&row,
			r.db.Where("notification_id = ? AND beta_key_id = ?", notificationID, contributorID))
	default:
		return false, fmt.Errorf("notification type %q has no contributor table", typ)
	}
}

// removeOne deletes the first row matched by query, never more.
func (r *NotificationRepository) removeOne(row any, query *gorm.DB) (bool, error) {
	if err := query.First(row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if err := r.db.Delete(row).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *NotificationRepository) ContributorIDs(notificationID uint, typ consts.NotificationType, limit int) ([]uint, error) {
	var ids []uint
	query := r.db.Where("notification_id = ?", notificationID).Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var err error
	switch typ {
	case consts.NotificationFrameLiked:
		err = query.Model(&model.NotificationFrameLiked{}).Pluck("user_id", &ids).Error
	case consts.NotificationFramePosted:
		err = query.Model(&model.NotificationFramePosted{}).Pluck("frame_id", &ids).Error
	case consts.NotificationUserSubscribe:
		err = query.Model(&model.NotificationUserSubscribe{}).Pluck("user_id", &ids).Error
	case consts.NotificationBetaKeyUsed:
		err = query.Model(&model.NotificationBetaKeyUsed{}).Pluck("beta_key_id", &ids).Error
	default:
		err = fmt.Errorf("notification type %q has no contributor table", typ)
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *NotificationRepository) FindByFramePostedContribution(frameID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.
		Joins("JOIN notification_frame_posteds j ON j.notification_id = notifications.id").
		Where("j.frame_id = ?", frameID).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) FindBySubscribeContribution(userID uint, galerieID *uint) ([]model.Notification, error) {
	query := r.db.
		Joins("JOIN notification_user_subscribes j ON j.notification_id = notifications.id").
		Where("j.user_id = ?", userID)
	if galerieID != nil {
		query = query.Where("notifications.galerie_id = ?", *galerieID)
	}
	var notifications []model.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) DeleteByFrameScope(frameID uint) error {
	return r.deleteWhere("frame_id = ?", frameID)
}

func (r *NotificationRepository) DeleteByRecipient(userID uint) error {
	return r.deleteWhere("user_id = ?", userID)
}

func (r *NotificationRepository) DeleteByRecipientAndGalerie(userID, galerieID uint, types []consts.NotificationType) error {
	return r.deleteWhere("user_id = ? AND galerie_id = ? AND type IN ?", userID, galerieID, types)
}

func (r *NotificationRepository) DeleteByGalerie(galerieID uint, frameIDs []uint) error {
	if err := r.deleteWhere("galerie_id = ?", galerieID); err != nil {
		return err
	}
	if len(frameIDs) == 0 {
		return nil
	}
	return r.deleteWhere("frame_id IN ?", frameIDs)
}

func (r *NotificationRepository) deleteWhere(condition string, args ...any) error {
	var ids []uint
	if err := r.db.Model(&model.Notification{}).Where(condition, args...).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := r.deleteJoinRows(ids); err != nil {
		return err
	}
	return r.db.Where("id IN ?", ids).Delete(&model.Notification{}).Error
}

func (r *NotificationRepository) deleteJoinRows(notificationIDs []uint) error {
	if err := r.db.Where("notification_id IN ?", notificationIDs).
		Delete(&model.NotificationFrameLiked{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("notification_id IN ?", notificationIDs).
		Delete(&model.NotificationFramePosted{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("notification_id IN ?", notificationIDs).
		Delete(&model.NotificationUserSubscribe{}).Error; err != nil {
		return err
	}
	return r.db.Where("notification_id IN ?", notificationIDs).
		Delete(&model.NotificationBetaKeyUsed{}).Error
}
