package service

import (
	"context"
	"errors"
	"time"

	"galerie-server/internal/config"
	"galerie-server/internal/consts"
	"galerie-server/internal/model"
	"galerie-server/internal/repository"
	"galerie-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and password verification.
// Registration is invitation-only: every new account consumes a beta key.
type AuthService struct {
	stores repository.Stores
}

func NewAuthService(stores repository.Stores) *AuthService {
	return &AuthService{stores: stores}
}

type RegisterInput struct {
	Pseudonym string
	UserName  string
	Email     string
	Password  string
	BetaKey   string
}

// Register creates an account against a valid unused beta key and tells
// the key's creator about it through a BETA_KEY_USED notification.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.UserName == "" || input.Password == "" {
		return nil, NewValidationError("user name and password are required")
	}
	if len(input.Password) < 8 {
		return nil, NewValidationError("password must be at least 8 characters")
	}
	if input.Pseudonym == "" {
		input.Pseudonym = input.UserName
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError("password hashing failed")
	}

	user := &model.User{
		Pseudonym: input.Pseudonym,
		UserName:  input.UserName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      consts.RoleUser,
		Confirmed: true,
	}
	err = s.stores.Transaction(func(tx repository.Stores) error {
		if _, err := tx.User.FindByUserName(input.UserName); err == nil {
			return NewConflictError("user name already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if input.Email != "" {
			if _, err := tx.User.FindByEmail(input.Email); err == nil {
				return NewConflictError("email already registered")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		key, err := tx.BetaKey.FindByCode(input.BetaKey)
		if err != nil {
			return notFoundErr(err, "beta key not found")
		}
		if key.UsedByID != nil {
			return NewAlreadyInStateError("beta key already used")
		}

		if err := tx.User.Create(user); err != nil {
			return err
		}
		if err := tx.BetaKey.MarkUsed(key.ID, user.ID); err != nil {
			return err
		}

		if key.CreatedByID == nil {
			return nil
		}
		aggregator := NewNotificationAggregator(tx.Notification)
		return aggregator.Contribute(consts.NotificationBetaKeyUsed,
			*key.CreatedByID, Scope{}, key.ID)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a login token. Black-listed
// accounts authenticate fine but are refused here.
func (s *AuthService) Login(ctx context.Context, userName, password string) (string, error) {
	user, err := s.stores.User.FindByUserName(userName)
	if err != nil {
		return "", NewUnauthorizedError("invalid user name or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", NewUnauthorizedError("invalid user name or password")
	}
	if user.IsBlackListed {
		return "", NewForbiddenError("this account is black-listed")
	}

	cfg := config.Get()
	token, err := utils.GenerateLoginToken(user.ID, user.UserName, user.Role,
		time.Hour*time.Duration(cfg.JWT.ExpirationHours))
	if err != nil {
		return "", NewInternalError("login failed")
	}
	return token, nil
}

// VerifyDeletion gates account deletion: the caller must present their
// password and retype the exact confirmation sentence.
func (s *AuthService) VerifyDeletion(ctx context.Context, userID uint, password, confirmation string) error {
	const sentence = "delete my account permanently"
	if confirmation != sentence {
		return NewValidationError("confirmation sentence does not match")
	}
	user, err := s.stores.User.FindByID(userID)
	if err != nil {
		return notFoundErr(err, "user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return NewForbiddenError("invalid password")
	}
	return nil
}
