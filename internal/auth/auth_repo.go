package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/user"
)

// AuthRepository persists users and their refresh tokens. Lookups return
// (nil, nil) when the row does not exist.
type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByID(id uint) (*user.User, error)
	GetUserByEmail(email string) (*user.User, error)
	GetUserByUsername(username string) (*user.User, error)

	StoreRefreshToken(rt *user.RefreshToken) error
	GetRefreshToken(token string) (*user.RefreshToken, error)
	RevokeRefreshToken(token string) error
	RevokeAllForUser(userID uint) error
	DeleteExpiredTokens(before time.Time) error
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a gorm-backed AuthRepository.
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByUsername(username string) (*user.User, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) StoreRefreshToken(rt *user.RefreshToken) error {
	return r.db.Create(rt).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	var rt user.RefreshToken
	err := r.db.Where("token = ?", tokenString).First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) RevokeRefreshToken(tokenString string) error {
	return r.db.Model(&user.RefreshToken{}).
		Where("token = ?", tokenString).
		Update("revoked", true).Error
}

func (r *authRepository) RevokeAllForUser(userID uint) error {
	return r.db.Model(&user.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true).Error
}

func (r *authRepository) DeleteExpiredTokens(before time.Time) error {
	return r.db.Unscoped().
		Where("expires_at < ?", before).
		Delete(&user.RefreshToken{}).Error
}
