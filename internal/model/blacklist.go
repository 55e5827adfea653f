package model

import "time"

// BlackList bans a user globally. The ban outlives the admin who imposed
// it, so CreatedByID is nullable and cleared on admin account deletion.
type BlackList struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Reason      string `json:"reason" gorm:"not null"`
	Time        *int64 `json:"time"`
	CreatedByID *uint  `json:"created_by_id" gorm:"index"`
	UpdatedByID *uint  `json:"updated_by_id"`
}

// GalerieBlackList bans a user from a single galerie.
type GalerieBlackList struct {
	ID          uint  `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time
	GalerieID   uint   `json:"galerie_id" gorm:"not null;uniqueIndex:idx_galerie_ban"`
	UserID      uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_galerie_ban"`
	Reason      string `json:"reason"`
	CreatedByID *uint  `json:"created_by_id" gorm:"index"`
}
