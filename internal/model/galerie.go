package model

import (
	"time"

	"galerie-server/internal/consts"
)

type Galerie struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Archived    bool   `json:"archived" gorm:"default:false"`
}

type GalerieUser struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint               `json:"user_id" gorm:"not null;uniqueIndex:idx_galerie_user"`
	GalerieID uint               `json:"galerie_id" gorm:"not null;uniqueIndex:idx_galerie_user"`
	Role      consts.GalerieRole `json:"role" gorm:"not null;default:user"`
}

type Invitation struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time
	GalerieID   uint   `json:"galerie_id" gorm:"not null;index"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Code        string `json:"code" gorm:"unique;not null"`
	NumOfInvits *int64 `json:"num_of_invits"`
	// Time is the validity window in nanoseconds since CreatedAt.
	// Nil means the invitation never times out.
	Time *int64 `json:"time"`
}
