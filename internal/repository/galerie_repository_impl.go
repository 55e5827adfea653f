package repository

import (
	"galerie-server/internal/consts"
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type GalerieRepository struct {
	db *gorm.DB
}

func NewGalerieRepository(db *gorm.DB) GalerieStore {
	return &GalerieRepository{db: db}
}

func (r *GalerieRepository) FindByID(id uint) (*model.Galerie, error) {
	var galerie model.Galerie
	if err := r.db.First(&galerie, id).Error; err != nil {
		return nil, err
	}
	return &galerie, nil
}

func (r *GalerieRepository) Create(galerie *model.Galerie) error {
	return r.db.Create(galerie).Error
}

func (r *GalerieRepository) Archive(id uint) error {
	return r.db.Model(&model.Galerie{}).Where("id = ?", id).
		Update("archived", true).Error
}

func (r *GalerieRepository) Delete(id uint) error {
	return r.db.Delete(&model.Galerie{}, id).Error
}

func (r *GalerieRepository) FindMembership(galerieID, userID uint) (*model.GalerieUser, error) {
	var membership model.GalerieUser
	if err := r.db.Where("galerie_id = ? AND user_id = ?", galerieID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *GalerieRepository) MembershipsByGalerie(galerieID uint) ([]model.GalerieUser, error) {
	var memberships []model.GalerieUser
	if err := r.db.Where("galerie_id = ?", galerieID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *GalerieRepository) MembershipsByUser(userID uint) ([]model.GalerieUser, error) {
	var memberships []model.GalerieUser
	if err := r.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *GalerieRepository) CountMemberships(galerieID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.GalerieUser{}).Where("galerie_id = ?", galerieID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GalerieRepository) CreateMembership(membership *model.GalerieUser) error {
	return r.db.Create(membership).Error
}

func (r *GalerieRepository) DeleteMembership(id uint) error {
	return r.db.Delete(&model.GalerieUser{}, id).Error
}

func (r *GalerieRepository) DeleteMembershipsByGalerie(galerieID uint) error {
	return r.db.Where("galerie_id = ?", galerieID).Delete(&model.GalerieUser{}).Error
}

func (r *GalerieRepository) UpdateMembershipRole(id uint, role consts.GalerieRole) error {
	return r.db.Model(&model.GalerieUser{}).Where("id = ?", id).
		Update("role", role).Error
}
