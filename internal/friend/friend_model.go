package friend

import (
	"gorm.io/gorm"

	"github.com/woorifc/kickmate/internal/user"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
	FriendshipRejected FriendshipStatus = "REJECTED"
)

// Friendship is a directed request from one user to another. One row per
// (from, to) pair; the reverse direction is checked before creation so two
// users never hold simultaneous pending requests at each other.
type Friendship struct {
	gorm.Model
	FromUserID uint             `json:"from_user_id" gorm:"not null;uniqueIndex:idx_friendship_pair"`
	FromUser   user.User        `json:"from_user" gorm:"foreignKey:FromUserID"`
	ToUserID   uint             `json:"to_user_id" gorm:"not null;uniqueIndex:idx_friendship_pair"`
	ToUser     user.User        `json:"to_user" gorm:"foreignKey:ToUserID"`
	Status     FriendshipStatus `json:"status" gorm:"type:varchar(10);default:'PENDING';index"`
}

// Involves reports whether the given user is either end of the friendship.
func (f *Friendship) Involves(userID uint) bool {
	return f.FromUserID == userID || f.ToUserID == userID
}

// OtherUser returns the opposite end of the friendship for the given user.
func (f *Friendship) OtherUser(userID uint) uint {
	if f.FromUserID == userID {
		return f.ToUserID
	}
	return f.FromUserID
}
