package repository

import (
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationStore {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) FindByID(id uint) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByCode(code string) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.Where("code = ?", code).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByGalerie(galerieID uint) ([]model.Invitation, error) {
	var invitations []model.Invitation
	if err := r.db.Where("galerie_id = ?", galerieID).Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *InvitationRepository) Create(invitation *model.Invitation) error {
	return r.db.Create(invitation).Error
}

func (r *InvitationRepository) Delete(id uint) error {
	return r.db.Delete(&model.Invitation{}, id).Error
}

func (r *InvitationRepository) DeleteByGalerie(galerieID uint) error {
	return r.db.Where("galerie_id = ?", galerieID).Delete(&model.Invitation{}).Error
}

func (r *InvitationRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Invitation{}).Error
}

func (r *InvitationRepository) DeleteByGalerieAndUser(galerieID, userID uint) error {
	return r.db.Where("galerie_id = ? AND user_id = ?", galerieID, userID).
		Delete(&model.Invitation{}).Error
}

func (r *InvitationRepository) DecrementUses(id uint) error {
	return r.db.Model(&model.Invitation{}).Where("id = ?", id).
		UpdateColumn("num_of_invits", gorm.Expr("num_of_invits - ?", 1)).Error
}
