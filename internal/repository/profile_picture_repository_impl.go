package repository

import (
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type ProfilePictureRepository struct {
	db *gorm.DB
}

func NewProfilePictureRepository(db *gorm.DB) ProfilePictureStore {
	return &ProfilePictureRepository{db: db}
}

func (r *ProfilePictureRepository) FindByID(id uint) (*model.ProfilePicture, error) {
	var picture model.ProfilePicture
	if err := r.db.
		Preload("OriginalImage").Preload("CroppedImage").Preload("PendingImage").
		First(&picture, id).Error; err != nil {
		return nil, err
	}
	return &picture, nil
}

func (r *ProfilePictureRepository) FindByUser(userID uint) ([]model.ProfilePicture, error) {
	var pictures []model.ProfilePicture
	if err := r.db.
		Preload("OriginalImage").Preload("CroppedImage").Preload("PendingImage").
		Where("user_id = ?", userID).Find(&pictures).Error; err != nil {
		return nil, err
	}
	return pictures, nil
}

func (r *ProfilePictureRepository) Create(picture *model.ProfilePicture) error {
	return r.db.Create(picture).Error
}

func (r *ProfilePictureRepository) Delete(id uint) error {
	return r.db.Delete(&model.ProfilePicture{}, id).Error
}

func (r *ProfilePictureRepository) ClearCurrent(userID uint) error {
	return r.db.Model(&model.ProfilePicture{}).Where("user_id = ? AND current = ?", userID, true).
		Update("current", false).Error
}

func (r *ProfilePictureRepository) SetCurrent(id uint) error {
	return r.db.Model(&model.ProfilePicture{}).Where("id = ?", id).
		Update("current", true).Error
}
