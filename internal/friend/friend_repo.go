package friend

import (
	"errors"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friendship data operations.
// Lookups return (nil, nil) when the row does not exist.
type FriendRepository interface {
	Create(f *Friendship) error
	GetByID(id uint) (*Friendship, error)
	GetByPair(fromUserID, toUserID uint) (*Friendship, error)
	GetAcceptedBetween(userA, userB uint) (*Friendship, error)
	ListFriends(userID uint) ([]Friendship, error)
	ListIncoming(userID uint) ([]Friendship, error)
	ListOutgoing(userID uint) ([]Friendship, error)
	Update(f *Friendship) error
	Delete(id uint) error

	UserExists(userID uint) (bool, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a gorm-backed FriendRepository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(f *Friendship) error {
	return r.db.Create(f).Error
}

func (r *friendRepository) GetByID(id uint) (*Friendship, error) {
	var f Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *friendRepository) GetByPair(fromUserID, toUserID uint) (*Friendship, error) {
	var f Friendship
	err := r.db.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *friendRepository) GetAcceptedBetween(userA, userB uint) (*Friendship, error) {
	var f Friendship
	err := r.db.Where(
		"((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND status = ?",
		userA, userB, userB, userA, FriendshipAccepted,
	).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *friendRepository) ListFriends(userID uint) ([]Friendship, error) {
	var friendships []Friendship
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", userID, userID, FriendshipAccepted).
		Order("updated_at desc").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *friendRepository) ListIncoming(userID uint) ([]Friendship, error) {
	var friendships []Friendship
	err := r.db.Preload("FromUser").
		Where("to_user_id = ? AND status = ?", userID, FriendshipPending).
		Order("created_at desc").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *friendRepository) ListOutgoing(userID uint) ([]Friendship, error) {
	var friendships []Friendship
	err := r.db.Preload("ToUser").
		Where("from_user_id = ? AND status = ?", userID, FriendshipPending).
		Order("created_at desc").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *friendRepository) Update(f *Friendship) error {
	return r.db.Save(f).Error
}

func (r *friendRepository) Delete(id uint) error {
	return r.db.Delete(&Friendship{}, id).Error
}

func (r *friendRepository) UserExists(userID uint) (bool, error) {
	var count int64
	err := r.db.Table("users").Where("id = ? AND deleted_at IS NULL", userID).Count(&count).Error
	return count > 0, err
}
