package repository

import (
	"galerie-server/internal/consts"
	"galerie-server/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUserName(userName string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}

func (r *UserRepository) SetBlackListed(id uint, blackListed bool) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("is_black_listed", blackListed).Error
}

func (r *UserRepository) UpdateRole(id uint, role consts.Role) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("role", role).Error
}

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketStore {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ticket *model.Ticket) error {
	return r.db.Create(ticket).Error
}

func (r *TicketRepository) ClearAuthor(userID uint) error {
	return r.db.Model(&model.Ticket{}).Where("user_id = ?", userID).
		Update("user_id", nil).Error
}

type BetaKeyRepository struct {
	db *gorm.DB
}

func NewBetaKeyRepository(db *gorm.DB) BetaKeyStore {
	return &BetaKeyRepository{db: db}
}

func (r *BetaKeyRepository) FindByCode(code string) (*model.BetaKey, error) {
	var key model.BetaKey
	if err := r.db.Where("code = ?", code).First(&key).Error; err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *BetaKeyRepository) Create(key *model.BetaKey) error {
	return r.db.Create(key).Error
}

func (r *BetaKeyRepository) MarkUsed(id uint, userID uint) error {
	return r.db.Model(&model.BetaKey{}).Where("id = ?", id).
		Update("used_by_id", userID).Error
}

func (r *BetaKeyRepository) ClearCreator(userID uint) error {
	return r.db.Model(&model.BetaKey{}).Where("created_by_id = ?", userID).
		Update("created_by_id", nil).Error
}
