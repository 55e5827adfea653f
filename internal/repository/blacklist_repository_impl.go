package repository

import (
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type BlackListRepository struct {
	db *gorm.DB
}

func NewBlackListRepository(db *gorm.DB) BlackListStore {
	return &BlackListRepository{db: db}
}

func (r *BlackListRepository) CreateGlobalBan(ban *model.BlackList) error {
	return r.db.Create(ban).Error
}

func (r *BlackListRepository) ClearGlobalBanCreator(userID uint) error {
	if err := r.db.Model(&model.BlackList{}).Where("created_by_id = ?", userID).
		Update("created_by_id", nil).Error; err != nil {
		return err
	}
	return r.db.Model(&model.BlackList{}).Where("updated_by_id = ?", userID).
		Update("updated_by_id", nil).Error
}

func (r *BlackListRepository) FindGalerieBan(galerieID, userID uint) (*model.GalerieBlackList, error) {
	var ban model.GalerieBlackList
	if err := r.db.Where("galerie_id = ? AND user_id = ?", galerieID, userID).
		First(&ban).Error; err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *BlackListRepository) CreateGalerieBan(ban *model.GalerieBlackList) error {
	return r.db.Create(ban).Error
}

func (r *BlackListRepository) DeleteGalerieBansByGalerie(galerieID uint) error {
	return r.db.Where("galerie_id = ?", galerieID).Delete(&model.GalerieBlackList{}).Error
}

func (r *BlackListRepository) ClearGalerieBanCreator(galerieID, userID uint) error {
	return r.db.Model(&model.GalerieBlackList{}).
		Where("galerie_id = ? AND created_by_id = ?", galerieID, userID).
		Update("created_by_id", nil).Error
}

func (r *BlackListRepository) ClearGalerieBanCreators(userID uint) error {
	return r.db.Model(&model.GalerieBlackList{}).
		Where("created_by_id = ?", userID).
		Update("created_by_id", nil).Error
}
