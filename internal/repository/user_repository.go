package repository

import (
	"galerie-server/internal/consts"
	"galerie-server/internal/model"
)

type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByUserName(userName string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Delete(id uint) error
	SetBlackListed(id uint, blackListed bool) error
	UpdateRole(id uint, role consts.Role) error
}

type TicketStore interface {
	Create(ticket *model.Ticket) error
	ClearAuthor(userID uint) error
}

type BetaKeyStore interface {
	FindByCode(code string) (*model.BetaKey, error)
	Create(key *model.BetaKey) error
	MarkUsed(id uint, userID uint) error
	ClearCreator(userID uint) error
}

type ProfilePictureStore interface {
	FindByID(id uint) (*model.ProfilePicture, error)
	FindByUser(userID uint) ([]model.ProfilePicture, error)
	Create(picture *model.ProfilePicture) error
	Delete(id uint) error
	ClearCurrent(userID uint) error
	SetCurrent(id uint) error
}
