package model

import (
	"time"

	"galerie-server/internal/consts"
)

// Notification is a grouped event addressed to one user. Num counts the
// distinct contributing actors or frames; the per-type join tables below
// hold the contributors themselves.
type Notification struct {
	ID        uint                    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint                    `json:"user_id" gorm:"not null;index"`
	Type      consts.NotificationType `json:"type" gorm:"not null;index"`
	Num       int64                   `json:"num" gorm:"not null;default:0"`
	GalerieID *uint                   `json:"galerie_id" gorm:"index"`
	FrameID   *uint                   `json:"frame_id" gorm:"index"`
	Role      string                  `json:"role"`
	Seen      bool                    `json:"seen" gorm:"default:false"`
}

type NotificationFrameLiked struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time
	NotificationID uint `json:"notification_id" gorm:"not null;index"`
	UserID         uint `json:"user_id" gorm:"not null;index"`
}

type NotificationFramePosted struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time
	NotificationID uint `json:"notification_id" gorm:"not null;index"`
	FrameID        uint `json:"frame_id" gorm:"not null;index"`
}

type NotificationUserSubscribe struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time
	NotificationID uint `json:"notification_id" gorm:"not null;index"`
	UserID         uint `json:"user_id" gorm:"not null;index"`
}

type NotificationBetaKeyUsed struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time
	NotificationID uint `json:"notification_id" gorm:"not null;index"`
	BetaKeyID      uint `json:"beta_key_id" gorm:"not null;index"`
}
