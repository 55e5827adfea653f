package model

import "time"

type Frame struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	GalerieID       uint   `json:"galerie_id" gorm:"not null;index"`
	UserID          uint   `json:"user_id" gorm:"not null;index"`
	Description     string `json:"description"`
	NumOfLikes      int64  `json:"num_of_likes" gorm:"not null;default:0"`
	GaleriePictures []GaleriePicture `json:"galerie_pictures"`
}

// GaleriePicture is one uploaded photo variant set within a frame. It
// always owns exactly three image rows: the untouched upload, the cropped
// rendition and the pending placeholder shown while processing.
type GaleriePicture struct {
	ID              uint  `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time
	FrameID         uint  `json:"frame_id" gorm:"not null;index"`
	Current         bool  `json:"current" gorm:"default:false"`
	Index           int   `json:"index" gorm:"default:0"`
	OriginalImageID uint  `json:"original_image_id" gorm:"not null"`
	CroppedImageID  uint  `json:"cropped_image_id" gorm:"not null"`
	PendingImageID  uint  `json:"pending_image_id" gorm:"not null"`
	OriginalImage   Image `json:"original_image" gorm:"foreignKey:OriginalImageID"`
	CroppedImage    Image `json:"cropped_image" gorm:"foreignKey:CroppedImageID"`
	PendingImage    Image `json:"pending_image" gorm:"foreignKey:PendingImageID"`
}

type Image struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time
	BucketName string `json:"bucket_name" gorm:"not null"`
	FileName   string `json:"file_name" gorm:"not null"`
	Format     string `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Size       int64  `json:"size"`
}

type Like struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_frame"`
	FrameID   uint `json:"frame_id" gorm:"not null;uniqueIndex:idx_like_user_frame"`
}
