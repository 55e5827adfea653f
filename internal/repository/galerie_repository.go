package repository

import (
	"galerie-server/internal/consts"
	"galerie-server/internal/model"
)

type GalerieStore interface {
	FindByID(id uint) (*model.Galerie, error)
	Create(galerie *model.Galerie) error
	Archive(id uint) error
	Delete(id uint) error

	FindMembership(galerieID, userID uint) (*model.GalerieUser, error)
	MembershipsByGalerie(galerieID uint) ([]model.GalerieUser, error)
	MembershipsByUser(userID uint) ([]model.GalerieUser, error)
	CountMemberships(galerieID uint) (int64, error)
	CreateMembership(membership *model.GalerieUser) error
	DeleteMembership(id uint) error
	DeleteMembershipsByGalerie(galerieID uint) error
	UpdateMembershipRole(id uint, role consts.GalerieRole) error
}

type InvitationStore interface {
	FindByID(id uint) (*model.Invitation, error)
	FindByCode(code string) (*model.Invitation, error)
	FindByGalerie(galerieID uint) ([]model.Invitation, error)
	Create(invitation *model.Invitation) error
	Delete(id uint) error
	DeleteByGalerie(galerieID uint) error
	DeleteByUser(userID uint) error
	DeleteByGalerieAndUser(galerieID, userID uint) error
	DecrementUses(id uint) error
}

type BlackListStore interface {
	CreateGlobalBan(ban *model.BlackList) error
	ClearGlobalBanCreator(userID uint) error

	FindGalerieBan(galerieID, userID uint) (*model.GalerieBlackList, error)
	CreateGalerieBan(ban *model.GalerieBlackList) error
	DeleteGalerieBansByGalerie(galerieID uint) error
	ClearGalerieBanCreator(galerieID, userID uint) error
	ClearGalerieBanCreators(userID uint) error
}
