package model

import (
	"time"

	"galerie-server/internal/consts"

	"gorm.io/gorm"
)

type User struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	Pseudonym     string         `json:"pseudonym" gorm:"not null;index"`
	UserName      string         `json:"user_name" gorm:"unique;not null"`
	Email         string         `json:"email" gorm:"unique;index;size:255"`
	Password      string         `json:"-" gorm:"not null"`
	Role          consts.Role    `json:"role" gorm:"not null;default:user"`
	Confirmed     bool           `json:"confirmed" gorm:"default:false"`
	IsBlackListed bool           `json:"is_black_listed" gorm:"default:false"`
}

type ProfilePicture struct {
	ID              uint `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time
	UserID          uint  `json:"user_id" gorm:"not null;index"`
	Current         bool  `json:"current" gorm:"default:false"`
	OriginalImageID uint  `json:"original_image_id" gorm:"not null"`
	CroppedImageID  uint  `json:"cropped_image_id" gorm:"not null"`
	PendingImageID  uint  `json:"pending_image_id" gorm:"not null"`
	OriginalImage   Image `json:"original_image" gorm:"foreignKey:OriginalImageID"`
	CroppedImage    Image `json:"cropped_image" gorm:"foreignKey:CroppedImageID"`
	PendingImage    Image `json:"pending_image" gorm:"foreignKey:PendingImageID"`
}

type Ticket struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    *uint  `json:"user_id" gorm:"index"`
	Header    string `json:"header" gorm:"not null"`
	Body      string `json:"body" gorm:"not null"`
}

type BetaKey struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time
	Code        string `json:"code" gorm:"unique;not null"`
	Email       string `json:"email"`
	CreatedByID *uint  `json:"created_by_id" gorm:"index"`
	UsedByID    *uint  `json:"used_by_id" gorm:"index"`
}
