package service

import (
	"context"
	"errors"

	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService holds the site-wide moderation operations: global
// black-listing, account roles and beta keys. Galerie-scoped moderation
// lives on LifecycleService.
type AdminService struct {
	stores repository.Stores
}

func NewAdminService(stores repository.Stores) *AdminService {
	return &AdminService{stores: stores}
}

func roleRank(role consts.Role) int {
	switch role {
	case consts.RoleSuperAdmin:
		return 2
	case consts.RoleAdmin:
		return 1
	default:
		return 0
	}
}

// BlacklistUser bans an account site-wide: the flag goes on the user row
// and a ban record keeps who imposed it. The ban record outlives the
// imposing admin's account.
func (s *AdminService) BlacklistUser(ctx context.Context, actorID, userID uint, reason string) error {
	if actorID == userID {
		return NewForbiddenError("cannot black-list yourself")
	}
	return s.stores.Transaction(func(tx repository.Stores) error {
		actor, err := tx.User.FindByID(actorID)
		if err != nil {
			return notFoundErr(err, "user not found")
		}
		target, err := tx.User.FindByID(userID)
		if err != nil {
			return notFoundErr(err, "user not found")
		}
		if roleRank(actor.Role) <= roleRank(target.Role) {
			return NewForbiddenError("insufficient role to black-list this user")
		}
		if target.IsBlackListed {
			return NewAlreadyInStateError("user is already black-listed")
		}

		createdBy := actorID
		if err := tx.BlackList.CreateGlobalBan(&model.BlackList{
			UserID:      userID,
			Reason:      reason,
			CreatedByID: &createdBy,
		}); err != nil {
			return err
		}
		return tx.User.SetBlackListed(userID, true)
	})
}

// UpdateUserRole changes an account-level role and leaves a ROLE_CHANGE
// notification. The notification is not aggregated: a later change
// replaces the earlier one.
func (s *AdminService) UpdateUserRole(ctx context.Context, actorID, userID uint, role consts.Role) error {
	if role == consts.RoleSuperAdmin {
		return NewValidationError("cannot grant the superAdmin role")
	}
	if actorID == userID {
		return NewForbiddenError("cannot change your own role")
	}
	return s.stores.Transaction(func(tx repository.Stores) error {
		actor, err := tx.User.FindByID(actorID)
		if err != nil {
			return notFoundErr(err, "user not found")
		}
		target, err := tx.User.FindByID(userID)
		if err != nil {
			return notFoundErr(err, "user not found")
		}
		if roleRank(actor.Role) <= roleRank(target.Role) {
			return NewForbiddenError("insufficient role to change this user's role")
		}
		if err := tx.User.UpdateRole(userID, role); err != nil {
			return err
		}

		if existing, err := tx.Notification.FindGrouped(userID,
			consts.NotificationRoleChange, nil, nil); err == nil {
			if err := tx.Notification.Delete(existing.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Notification.Create(&model.Notification{
			UserID: userID,
			Type:   consts.NotificationRoleChange,
			Num:    1,
			Role:   string(role),
		})
	})
}

// CreateBetaKey mints a registration key, optionally earmarked for an
// email address.
func (s *AdminService) CreateBetaKey(ctx context.Context, actorID uint, email string) (*model.BetaKey, error) {
	createdBy := actorID
	key := &model.BetaKey{
		Code:        uuid.NewString(),
		Email:       email,
		CreatedByID: &createdBy,
	}
	if err := s.stores.BetaKey.Create(key); err != nil {
		return nil, err
	}
	return key, nil
}
