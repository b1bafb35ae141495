package user

import (
	"time"

	"gorm.io/gorm"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEG"
	SkillIntermediate SkillLevel = "INT"
	SkillAdvanced     SkillLevel = "ADV"
	SkillPro          SkillLevel = "PRO"
)

// User is a registered player. Rating and the match counters are aggregates
// written by other subsystems; nothing here recomputes them.
type User struct {
	gorm.Model
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Password     string     `json:"-" gorm:"not null"`
	Phone        string     `json:"phone"`
	BirthDate    *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	ProfileImage string     `json:"profile_image"`
	SkillLevel   SkillLevel `json:"skill_level" gorm:"type:varchar(3);default:'BEG'"`
	Rating       float64    `json:"rating" gorm:"default:1000"`

	MatchesPlayed int `json:"matches_played" gorm:"default:0"`
	Wins          int `json:"wins" gorm:"default:0"`
	Draws         int `json:"draws" gorm:"default:0"`
	Losses        int `json:"losses" gorm:"default:0"`

	Bio string `json:"bio" gorm:"type:text"`
}

// WinRate returns the user's win percentage over played matches.
func (u *User) WinRate() float64 {
	if u.MatchesPlayed == 0 {
		return 0
	}
	return float64(u.Wins) / float64(u.MatchesPlayed) * 100
}

// RefreshToken is a long-lived session token; revoked rows stay around for
// audit until cleaned up.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
}
